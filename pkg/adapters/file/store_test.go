package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsmith/flowsmith/pkg/adapters/file"
	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/ports/tests"
)

func TestStore_Contract(t *testing.T) {
	tests.RunStoreContract(t, file.NewStore(t.TempDir()))
}

func TestStore_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	run := domain.PendingRun{
		RunID:     "run-1",
		Input:     "translate support tickets",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, file.NewStore(dir).Save(ctx, run))

	// A fresh store over the same directory sees the parked run.
	reopened := file.NewStore(dir)
	loaded, err := reopened.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Input, loaded.Input)
}

func TestStore_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))

	ids, err := file.NewStore(dir).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
