package report

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pdf-ocr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	sum := models.BatchSummary{
		ID:        "batch-1",
		Status:    models.BatchStatusFinished,
		Total:     2,
		Succeeded: 1,
		Failed:    1,
		Started:   time.Now(),
		Finished:  time.Now(),
	}
	files := []models.FileResult{
		{Path: "/in/a.pdf", OK: true, OutputPath: "/out/a_ocr.docx", Pages: 3},
		{Path: "/in/b.pdf", Err: errors.New("not a pdf")},
	}

	require.NoError(t, Write(path, sum, files))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	id, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "batch-1", id)

	firstFile, err := f.GetCellValue(sheetName, "A10")
	require.NoError(t, err)
	assert.Equal(t, "/in/a.pdf", firstFile)

	result, err := f.GetCellValue(sheetName, "B11")
	require.NoError(t, err)
	assert.Equal(t, "failed", result)

	errText, err := f.GetCellValue(sheetName, "E11")
	require.NoError(t, err)
	assert.Equal(t, "not a pdf", errText)
}
