package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// Store implements ports.RunStore using the local filesystem. Pending
// runs are stored as JSON files in a configured directory, one file per
// run, so parked clarifications survive process restarts without any
// external service.
type Store struct {
	BasePath string
}

// NewStore creates a file-backed run store. If basePath is empty, it
// defaults to ".flowsmith/runs".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".flowsmith", "runs")
	}
	return &Store{BasePath: basePath}
}

// Save persists the pending run to a JSON file.
func (f *Store) Save(ctx context.Context, run domain.PendingRun) error {
	if run.RunID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure run directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	if err := os.WriteFile(f.path(run.RunID), data, 0644); err != nil {
		return fmt.Errorf("failed to write run file: %w", err)
	}
	return nil
}

// Load retrieves a pending run from its JSON file.
func (f *Store) Load(ctx context.Context, runID string) (domain.PendingRun, error) {
	if runID == "" {
		return domain.PendingRun{}, fmt.Errorf("run ID cannot be empty")
	}

	data, err := os.ReadFile(f.path(runID))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.PendingRun{}, domain.ErrRunNotFound
		}
		return domain.PendingRun{}, fmt.Errorf("failed to read run file: %w", err)
	}

	var run domain.PendingRun
	if err := json.Unmarshal(data, &run); err != nil {
		return domain.PendingRun{}, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return run, nil
}

// Delete removes the run file. Deleting an absent run is not an error.
func (f *Store) Delete(ctx context.Context, runID string) error {
	if runID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}

	if err := os.Remove(f.path(runID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete run file: %w", err)
	}
	return nil
}

// List returns the IDs of all pending runs.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return ids, nil
}

func (f *Store) path(runID string) string {
	return filepath.Join(f.BasePath, runID+".json")
}
