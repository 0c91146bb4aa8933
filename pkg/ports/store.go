package ports

import (
	"context"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

// RunStore persists generation runs parked on clarification questions,
// so a caller can return with answers and resume the pipeline.
type RunStore interface {
	// Save persists a pending run under its run ID.
	Save(ctx context.Context, run domain.PendingRun) error

	// Load retrieves a pending run.
	// Returns domain.ErrRunNotFound if the run does not exist.
	Load(ctx context.Context, runID string) (domain.PendingRun, error)

	// Delete removes a pending run. Deleting an absent run is not an error.
	Delete(ctx context.Context, runID string) error

	// List returns the IDs of all pending runs.
	List(ctx context.Context) ([]string, error)
}
