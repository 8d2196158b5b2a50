package models

import "time"

// FileResult reports the outcome of one input file in a batch.
type FileResult struct {
	Path       string
	OK         bool
	OutputPath string
	Pages      int
	Err        error
	Started    time.Time
	Finished   time.Time
}

// BatchSummary reports the outcome of a whole batch run.
type BatchSummary struct {
	ID        string
	Status    BatchStatus
	Total     int
	Succeeded int
	Failed    int
	// Outputs holds the paths of the generated documents, in the order the
	// input files were submitted.
	Outputs  []string
	Started  time.Time
	Finished time.Time
}
