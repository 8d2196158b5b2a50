package document

import (
	"archive/zip"
	"path/filepath"
	"testing"

	"pdf-ocr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	assert.Equal(t, "report_ocr.docx", OutputName("/tmp/in/report.pdf"))
	assert.Equal(t, "scan.v2_ocr.docx", OutputName("scan.v2.pdf"))
	assert.Equal(t, "noext_ocr.docx", OutputName("noext"))
}

func TestParseBlocks_HeadingsAndParagraphs(t *testing.T) {
	blocks := parseBlocks("# Title\n\nSome text\nsecond line\n\n## Sub")

	require.Len(t, blocks, 3)
	assert.Equal(t, blockHeading, blocks[0].kind)
	assert.Equal(t, 1, blocks[0].level)
	assert.Equal(t, "Title", blocks[0].text)

	assert.Equal(t, blockParagraph, blocks[1].kind)
	assert.Equal(t, "Some text\nsecond line", blocks[1].text)

	assert.Equal(t, blockHeading, blocks[2].kind)
	assert.Equal(t, 2, blocks[2].level)
}

func TestParseBlocks_PageSeparatorBecomesRule(t *testing.T) {
	md := "page one" + models.PageSeparator + "page two"
	blocks := parseBlocks(md)

	require.Len(t, blocks, 3)
	assert.Equal(t, blockParagraph, blocks[0].kind)
	assert.Equal(t, blockRule, blocks[1].kind)
	assert.Equal(t, blockParagraph, blocks[2].kind)
	assert.Equal(t, "page two", blocks[2].text)
}

func TestParseBlocks_ListsDegradeToParagraphs(t *testing.T) {
	blocks := parseBlocks("- first\n- second\n")

	require.Len(t, blocks, 2)
	assert.Equal(t, "- first", blocks[0].text)
	assert.Equal(t, "- second", blocks[1].text)
}

func TestParseBlocks_CodeBlockKeptVerbatim(t *testing.T) {
	blocks := parseBlocks("```\nx = 1\ny = 2\n```\n")

	require.Len(t, blocks, 1)
	assert.Equal(t, blockParagraph, blocks[0].kind)
	assert.Equal(t, "x = 1\ny = 2", blocks[0].text)
}

func TestParseBlocks_Empty(t *testing.T) {
	assert.Empty(t, parseBlocks(""))
}

func TestWrite_ProducesValidDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.docx")
	md := "# Heading\n\nbody text" + models.PageSeparator + "second page"
	require.NoError(t, Write(md, path))

	// A .docx is a zip archive carrying word/document.xml.
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	found := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			found = true
		}
	}
	assert.True(t, found, "word/document.xml missing from archive")
}

func TestWrite_BadPath(t *testing.T) {
	err := Write("text", filepath.Join(t.TempDir(), "missing-dir", "out.docx"))
	assert.Error(t, err)
}
