package flowsmith

import (
	"context"
	"testing"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_GenerateDirect(t *testing.T) {
	engine := New()

	result, err := engine.Generate(context.Background(), pipeline.Request{
		UserInput: "Translate this paragraph to French",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.True(t, result.Success)
	require.NotNil(t, result.Document)
	assert.Equal(t, "Translation Workflow", result.Document.App.Name)

	// Nothing parked: the run completed in one pass.
	ids, err := engine.PendingRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEngine_ParkAndResume(t *testing.T) {
	engine := New()
	ctx := context.Background()

	parked, err := engine.Generate(ctx, pipeline.Request{
		UserInput: "do something with stuff",
	})
	require.NoError(t, err)
	require.NotNil(t, parked.Clarification)

	pending, err := engine.PendingRun(ctx, parked.RunID)
	require.NoError(t, err)
	assert.Equal(t, "do something with stuff", pending.Input)
	assert.NotEmpty(t, pending.Questions)

	answers := map[string]string{}
	for _, q := range parked.Clarification.Questions {
		answers[q.ID] = "Summarize incoming support emails into a daily report"
	}

	resumed, err := engine.Resume(ctx, parked.RunID, answers)
	require.NoError(t, err)
	assert.True(t, resumed.Success)
	require.NotNil(t, resumed.Document)

	// The finished run is removed from the store.
	_, err = engine.PendingRun(ctx, parked.RunID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEngine_ResumeUnknownRun(t *testing.T) {
	engine := New()

	_, err := engine.Resume(context.Background(), "no-such-run", nil)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEngine_Patterns(t *testing.T) {
	engine := New()

	archetypes := engine.Patterns()
	require.Len(t, archetypes, 5)
	assert.Equal(t, pattern.RAGRouting, archetypes[0].ID)
	for _, a := range archetypes {
		assert.NotEmpty(t, a.Label)
		assert.NotEmpty(t, a.NodeKinds)
	}
}
