package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"pdf-ocr/internal/models"
)

// Batch is one recorded batch run.
type Batch struct {
	bun.BaseModel `bun:"table:batches,alias:b"`
	ID            string    `bun:"id,pk"`
	Status        string    `bun:"status,notnull"`
	Total         int       `bun:"total,notnull"`
	Succeeded     int       `bun:"succeeded,notnull"`
	Failed        int       `bun:"failed,notnull"`
	StartedAt     time.Time `bun:"started_at,notnull"`
	FinishedAt    time.Time `bun:"finished_at"`
}

// FileRecord is the outcome of one input file within a batch.
type FileRecord struct {
	bun.BaseModel `bun:"table:files,alias:f"`
	ID            int64     `bun:"id,pk,autoincrement"`
	BatchID       string    `bun:"batch_id,notnull"`
	Path          string    `bun:"path,notnull"`
	OK            bool      `bun:"ok,notnull"`
	OutputPath    string    `bun:"output_path"`
	Pages         int       `bun:"pages"`
	Error         string    `bun:"error"`
	StartedAt     time.Time `bun:"started_at"`
	FinishedAt    time.Time `bun:"finished_at"`
}

// Store keeps the run ledger in a local SQLite database.
type Store struct {
	db *bun.DB
}

// Open opens or creates the history database at path and ensures the
// schema exists. With debug enabled every query is logged.
func Open(ctx context.Context, path string, debug bool) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	sqldb, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	s := &Store{db: db}
	if err := s.init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init(ctx context.Context) error {
	for _, model := range []interface{}{(*Batch)(nil), (*FileRecord)(nil)} {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// AddFile records the outcome of one file. File rows are written as they
// complete, before the batch row exists.
func (s *Store) AddFile(ctx context.Context, batchID string, res models.FileResult) error {
	rec := &FileRecord{
		BatchID:    batchID,
		Path:       res.Path,
		OK:         res.OK,
		OutputPath: res.OutputPath,
		Pages:      res.Pages,
		StartedAt:  res.Started,
		FinishedAt: res.Finished,
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	}
	_, err := s.db.NewInsert().Model(rec).Exec(ctx)
	return err
}

// AddBatch records the summary of a finished batch run.
func (s *Store) AddBatch(ctx context.Context, sum models.BatchSummary) error {
	rec := &Batch{
		ID:         sum.ID,
		Status:     sum.Status.String(),
		Total:      sum.Total,
		Succeeded:  sum.Succeeded,
		Failed:     sum.Failed,
		StartedAt:  sum.Started,
		FinishedAt: sum.Finished,
	}
	_, err := s.db.NewInsert().Model(rec).Exec(ctx)
	return err
}

// RecentBatches returns up to limit batch runs, newest first.
func (s *Store) RecentBatches(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	var batches []Batch
	err := s.db.NewSelect().
		Model(&batches).
		Order("started_at DESC").
		Limit(limit).
		Scan(ctx)
	return batches, err
}

// BatchFiles returns the file records of one batch in processing order.
func (s *Store) BatchFiles(ctx context.Context, batchID string) ([]FileRecord, error) {
	var files []FileRecord
	err := s.db.NewSelect().
		Model(&files).
		Where("batch_id = ?", batchID).
		Order("id ASC").
		Scan(ctx)
	return files, err
}
