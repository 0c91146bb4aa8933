package tests

import (
	"context"
	"testing"
	"time"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract verifies that a RunStore implementation adheres to the
// interface contract. Every adapter's test suite runs it.
func RunStoreContract(t *testing.T, store ports.RunStore) {
	ctx := context.Background()
	runID := "contract-run-" + time.Now().Format("20060102150405")

	pending := domain.PendingRun{
		RunID: runID,
		Input: "Summarize support emails",
		Profile: domain.RequirementProfile{
			Intent:     domain.IntentCustomerService,
			Complexity: domain.ComplexityModerate,
			Confidence: 0.4,
		},
		Questions: []domain.ClarificationQuestion{
			{ID: "output_specification", Question: "What should the workflow produce?"},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, pending))

		loaded, err := store.Load(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, pending.Input, loaded.Input)
		assert.Equal(t, pending.Profile.Intent, loaded.Profile.Intent)
		require.Len(t, loaded.Questions, 1)
		assert.Equal(t, "output_specification", loaded.Questions[0].ID)
	})

	t.Run("load absent", func(t *testing.T) {
		_, err := store.Load(ctx, "absent-"+runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, pending))
		require.NoError(t, store.Delete(ctx, runID))

		_, err := store.Load(ctx, runID)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)

		assert.NoError(t, store.Delete(ctx, runID), "deleting twice is not an error")
	})

	t.Run("list", func(t *testing.T) {
		first := pending
		first.RunID = runID + "-1"
		second := pending
		second.RunID = runID + "-2"
		require.NoError(t, store.Save(ctx, first))
		require.NoError(t, store.Save(ctx, second))
		defer func() {
			_ = store.Delete(ctx, first.RunID)
			_ = store.Delete(ctx, second.RunID)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, first.RunID)
		assert.Contains(t, ids, second.RunID)
	})
}
