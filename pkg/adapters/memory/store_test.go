package memory

import (
	"context"
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	tests.RunStoreContract(t, NewStore())
}

func TestStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	run := domain.PendingRun{
		RunID:   "run-1",
		Input:   "original",
		Answers: map[string]string{"q": "a"},
	}
	require.NoError(t, store.Save(ctx, run))

	loaded, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	loaded.Answers["q"] = "mutated"

	again, err := store.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "a", again.Answers["q"])
}
