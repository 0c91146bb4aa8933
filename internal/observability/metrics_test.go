package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/flowsmith/flowsmith/pkg/domain"
)

func TestHooks_CountStagesAndRepairs(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.EmitStageStart(ctx, &domain.StageEvent{RunID: "r", Stage: "analyze"})
	hooks.EmitStageEnd(ctx, &domain.StageEvent{RunID: "r", Stage: "analyze", DurationSeconds: 0.01})
	hooks.EmitStageEnd(ctx, &domain.StageEvent{RunID: "r", Stage: "synthesize", Err: errors.New("boom")})
	hooks.EmitRepair(ctx, &domain.RepairEvent{RunID: "r", Action: "add_terminal_edge"})
	hooks.EmitRepair(ctx, &domain.RepairEvent{RunID: "r", Action: "add_terminal_edge"})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.runs))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.stageFailures.WithLabelValues("synthesize")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.repairs.WithLabelValues("add_terminal_edge")))
}
