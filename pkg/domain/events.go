package domain

import "context"

// StageEvent describes a pipeline stage transition.
type StageEvent struct {
	RunID string
	Stage string
	// Err is set on stage end when the stage failed.
	Err error
	// DurationSeconds is set on stage end.
	DurationSeconds float64
}

// RepairEvent describes one structural correction applied by the repair
// engine. Repairs are not errors; they are logged and counted.
type RepairEvent struct {
	RunID  string
	Action string
	EdgeID string
}

// LifecycleHooks are optional observability callbacks. Nil hooks are
// skipped, so a zero value is safe to use.
type LifecycleHooks struct {
	OnStageStart func(ctx context.Context, e *StageEvent)
	OnStageEnd   func(ctx context.Context, e *StageEvent)
	OnRepair     func(ctx context.Context, e *RepairEvent)
}

// EmitStageStart invokes OnStageStart if set.
func (h LifecycleHooks) EmitStageStart(ctx context.Context, e *StageEvent) {
	if h.OnStageStart != nil {
		h.OnStageStart(ctx, e)
	}
}

// EmitStageEnd invokes OnStageEnd if set.
func (h LifecycleHooks) EmitStageEnd(ctx context.Context, e *StageEvent) {
	if h.OnStageEnd != nil {
		h.OnStageEnd(ctx, e)
	}
}

// EmitRepair invokes OnRepair if set.
func (h LifecycleHooks) EmitRepair(ctx context.Context, e *RepairEvent) {
	if h.OnRepair != nil {
		h.OnRepair(ctx, e)
	}
}
