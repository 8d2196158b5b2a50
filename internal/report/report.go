package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pdf-ocr/internal/models"
)

const sheetName = "Batch"

// Write exports a batch summary and its per-file outcomes as a spreadsheet.
func Write(path string, sum models.BatchSummary, files []models.FileResult) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	rows := [][]interface{}{
		{"Batch", sum.ID},
		{"Status", sum.Status.String()},
		{"Files", sum.Total},
		{"Succeeded", sum.Succeeded},
		{"Failed", sum.Failed},
		{"Started", sum.Started.Format(time.RFC3339)},
		{"Finished", sum.Finished.Format(time.RFC3339)},
		{},
		{"File", "Result", "Pages", "Output", "Error"},
	}
	for _, res := range files {
		result := "ok"
		errText := ""
		if !res.OK {
			result = "failed"
			if res.Err != nil {
				errText = res.Err.Error()
			}
		}
		rows = append(rows, []interface{}{res.Path, result, res.Pages, res.OutputPath, errText})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing report row %d: %w", i+1, err)
		}
	}

	return f.SaveAs(path)
}
