package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pdf-ocr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(context.Background(), path, false)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestAddBatchAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := models.BatchSummary{
		ID: "batch-1", Status: models.BatchStatusFinished,
		Total: 2, Succeeded: 2,
		Started:  time.Now().Add(-time.Hour),
		Finished: time.Now().Add(-time.Hour + time.Minute),
	}
	newer := models.BatchSummary{
		ID: "batch-2", Status: models.BatchStatusStopped,
		Total: 3, Succeeded: 1, Failed: 1,
		Started:  time.Now(),
		Finished: time.Now(),
	}
	require.NoError(t, s.AddBatch(ctx, older))
	require.NoError(t, s.AddBatch(ctx, newer))

	batches, err := s.RecentBatches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, "batch-2", batches[0].ID, "newest first")
	assert.Equal(t, "Stopped", batches[0].Status)
	assert.Equal(t, "batch-1", batches[1].ID)
}

func TestRecentBatches_Limit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddBatch(ctx, models.BatchSummary{
			ID:      string(rune('a' + i)),
			Status:  models.BatchStatusFinished,
			Started: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	batches, err := s.RecentBatches(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}

func TestAddFileAndBatchFiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddFile(ctx, "batch-1", models.FileResult{
		Path: "/in/a.pdf", OK: true, OutputPath: "/out/a_ocr.docx", Pages: 4,
		Started: time.Now(), Finished: time.Now(),
	}))
	require.NoError(t, s.AddFile(ctx, "batch-1", models.FileResult{
		Path: "/in/b.pdf", Err: errors.New("not a pdf"),
	}))
	require.NoError(t, s.AddFile(ctx, "batch-2", models.FileResult{
		Path: "/in/other.pdf", OK: true,
	}))

	files, err := s.BatchFiles(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "/in/a.pdf", files[0].Path)
	assert.True(t, files[0].OK)
	assert.Equal(t, 4, files[0].Pages)
	assert.Equal(t, "/in/b.pdf", files[1].Path)
	assert.False(t, files[1].OK)
	assert.Equal(t, "not a pdf", files[1].Error)
}
