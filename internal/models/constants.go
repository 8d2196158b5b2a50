package models

import "time"

const (
	// PageSeparator joins per-page OCR text in the combined markdown. It is
	// a markdown thematic break, so the output document renders it as a
	// horizontal-rule marker between pages.
	PageSeparator = "\n\n---\n\n"

	// OutputSuffix is appended to the input base name to form the output
	// document file name.
	OutputSuffix = "_ocr.docx"

	// MaxPageRetries is the number of attempts for a single page OCR call.
	MaxPageRetries = 3

	// PageRetryDelay is the fixed wait between page OCR attempts.
	PageRetryDelay = 2 * time.Second
)

var (
	OCRPromptTemplate = `Perform OCR on the following image and return the result as markdown. Keep all text exactly as it appears in the image, do not edit it. Write mathematical formulas in LaTeX. If the image contains a figure, put an [Image] note at the position where it appears. Do not analyze the content.`
)
