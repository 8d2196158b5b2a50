package worker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"pdf-ocr/internal/config"
	"pdf-ocr/internal/document"
	"pdf-ocr/internal/models"
	"pdf-ocr/internal/ocr"
	"pdf-ocr/internal/raster"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Callbacks decouples the worker from its presentation layer. Nil members
// are skipped. All callbacks are invoked from the worker goroutine.
type Callbacks struct {
	Progress  func(msg string)
	FileDone  func(res models.FileResult)
	BatchDone func(sum models.BatchSummary)
}

// Worker processes a list of PDF files sequentially: rasterize pages, OCR
// each page with bounded retries, write one document per input file. A
// single Worker runs one batch; create a new one for the next run.
type Worker struct {
	id        string
	files     []string
	outputDir string
	rasterize raster.Rasterizer
	newEngine func() (ocr.Engine, error)
	writeDoc  func(markdown, path string) error

	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)

	callbacks Callbacks

	mu      sync.Mutex
	status  models.BatchStatus
	outputs []string
}

// New creates a worker for the given files using the application config.
func New(files []string, cfg *config.Config) *Worker {
	return &Worker{
		id:        uuid.NewString(),
		files:     files,
		outputDir: cfg.OutputDir,
		rasterize: raster.NewPopplerRasterizer(cfg.PopplerPath, cfg.RasterDPI),
		newEngine: func() (ocr.Engine, error) {
			llm, err := cfg.LLM()
			if err != nil {
				return nil, err
			}
			return ocr.NewEngine(llm)
		},
		writeDoc:   document.Write,
		maxRetries: models.MaxPageRetries,
		retryDelay: models.PageRetryDelay,
		sleep:      time.Sleep,
		status:     models.BatchStatusIdle,
	}
}

// SetCallbacks registers the notification callbacks. Must be called before
// Run.
func (w *Worker) SetCallbacks(cb Callbacks) {
	w.callbacks = cb
}

// ID returns the batch identifier, assigned at construction so callbacks
// can correlate notifications before the summary exists.
func (w *Worker) ID() string {
	return w.id
}

// Status returns the current batch status.
func (w *Worker) Status() models.BatchStatus {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Outputs returns the paths of successfully generated documents. Meaningful
// once the batch-done notification has fired.
func (w *Worker) Outputs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.outputs))
	copy(out, w.outputs)
	return out
}

// Stop requests cooperative cancellation. The request takes effect at the
// next file or page boundary; an in-flight OCR call is never interrupted.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == models.BatchStatusRunning {
		w.status = models.BatchStatusStopping
	}
}

func (w *Worker) stopRequested() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status == models.BatchStatusStopping
}

func (w *Worker) setStatus(s models.BatchStatus) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

// Run executes the batch and blocks until it reaches a terminal state. The
// batch-done callback fires exactly once, including on fatal configuration
// errors.
func (w *Worker) Run(ctx context.Context) models.BatchSummary {
	sum := models.BatchSummary{
		ID:      w.id,
		Total:   len(w.files),
		Started: time.Now(),
	}
	w.setStatus(models.BatchStatusRunning)

	engine, err := w.newEngine()
	if err != nil {
		log.Error().Err(err).Msg("OCR engine configuration failed")
		w.progress(fmt.Sprintf("Configuration error: %v. Check the API key settings.", err))
		w.setStatus(models.BatchStatusErrored)
		sum.Status = models.BatchStatusErrored
		sum.Finished = time.Now()
		w.batchDone(sum)
		return sum
	}

	for i, path := range w.files {
		if w.stopRequested() {
			w.progress("Batch stopped.")
			break
		}

		res, aborted := w.processFile(ctx, engine, path, i+1, len(w.files))
		if aborted {
			// Stop hit mid-file; the file produced no document and no
			// completion notification.
			continue
		}
		if res.OK {
			sum.Succeeded++
			w.mu.Lock()
			w.outputs = append(w.outputs, res.OutputPath)
			w.mu.Unlock()
		} else {
			sum.Failed++
		}
		w.fileDone(res)
	}

	if w.stopRequested() {
		w.setStatus(models.BatchStatusStopped)
		sum.Status = models.BatchStatusStopped
	} else {
		w.setStatus(models.BatchStatusFinished)
		sum.Status = models.BatchStatusFinished
		w.progress("All files in the list are done.")
	}
	sum.Outputs = w.Outputs()
	sum.Finished = time.Now()
	w.batchDone(sum)
	return sum
}

// processFile handles a single PDF. Any error aborts only this file; the
// returned aborted flag is true when a stop request interrupted the page
// loop, in which case no result is reported.
func (w *Worker) processFile(ctx context.Context, engine ocr.Engine, path string, index, total int) (models.FileResult, bool) {
	res := models.FileResult{Path: path, Started: time.Now()}
	name := filepath.Base(path)
	w.progress(fmt.Sprintf("--- Processing file %d/%d: %s ---", index, total, name))

	pages, err := w.rasterize.ConvertToImages(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("Rasterization failed")
		w.progress(fmt.Sprintf("Fatal error while processing %s: %v", name, err))
		res.Err = err
		res.Finished = time.Now()
		return res, false
	}
	w.progress(fmt.Sprintf("Converted %d pages.", len(pages)))

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		if w.stopRequested() {
			return res, true
		}
		texts = append(texts, w.processPage(ctx, engine, page.PNG, page.Index, len(pages)))
	}

	outPath := filepath.Join(w.outputDir, document.OutputName(path))
	if err := w.writeDoc(strings.Join(texts, models.PageSeparator), outPath); err != nil {
		log.Error().Err(err).Str("file", name).Msg("Writing document failed")
		w.progress(fmt.Sprintf("Fatal error while processing %s: %v", name, err))
		res.Err = err
		res.Finished = time.Now()
		return res, false
	}

	res.OK = true
	res.OutputPath = outPath
	res.Pages = len(pages)
	res.Finished = time.Now()
	w.progress(fmt.Sprintf("Finished file: %s", filepath.Base(outPath)))
	return res, false
}

// processPage runs one page OCR call with bounded retries. After the last
// failed attempt the page is degraded to an inline diagnostic string rather
// than failing the file.
func (w *Worker) processPage(ctx context.Context, engine ocr.Engine, image []byte, pageNum, totalPages int) string {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		w.progress(fmt.Sprintf("Processing page %d/%d (attempt %d)...", pageNum, totalPages, attempt))

		text, err := engine.Recognize(ctx, image)
		if err == nil {
			return text
		}
		lastErr = err

		if attempt == w.maxRetries {
			break
		}
		w.progress(fmt.Sprintf("Warning (page %d): %v. Retrying in %s.", pageNum, err, w.retryDelay))
		w.sleep(w.retryDelay)
	}

	w.progress(fmt.Sprintf("Error: skipping page %d after %d failed attempts.", pageNum, w.maxRetries))
	return fmt.Sprintf("\n\n--- Error: page %d could not be processed: %v ---\n\n", pageNum, lastErr)
}

func (w *Worker) progress(msg string) {
	if w.callbacks.Progress != nil {
		w.callbacks.Progress(msg)
	}
}

func (w *Worker) fileDone(res models.FileResult) {
	if w.callbacks.FileDone != nil {
		w.callbacks.FileDone(res)
	}
}

func (w *Worker) batchDone(sum models.BatchSummary) {
	if w.callbacks.BatchDone != nil {
		w.callbacks.BatchDone(sum)
	}
}
