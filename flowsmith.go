package flowsmith

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/flowsmith/flowsmith/internal/logging"
	"github.com/flowsmith/flowsmith/pkg/adapters/memory"
	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
	"github.com/flowsmith/flowsmith/pkg/ports"
)

// resumeLockTTL bounds how long a crashed resume can hold a run lock.
const resumeLockTTL = 30 * time.Second

// Engine is the high-level entry point of the library. It owns the pipeline
// coordinator and the store that parks runs awaiting clarification.
type Engine struct {
	coordinator *pipeline.Coordinator
	store       ports.RunStore
	locker      ports.RunLocker
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStore injects the store for pending runs. Defaults to an in-memory
// store, which is fine for a single process.
func WithStore(store ports.RunStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes resumes of the same run across replicas. Only
// needed when the store is shared.
func WithLocker(locker ports.RunLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}
	e.coordinator = pipeline.New(e.logger, e.hooks)
	return e
}

// RunResult is a pipeline result tagged with the run ID the caller needs
// to resume a clarification-parked run.
type RunResult struct {
	RunID string `json:"run_id"`
	pipeline.Result
}

// Generate runs the full pipeline for a request. When the analyzer needs
// clarification, the run is parked in the store and the result carries the
// open questions; pass the answers to Resume with the returned run ID.
func (e *Engine) Generate(ctx context.Context, req pipeline.Request) (RunResult, error) {
	runID := uuid.NewString()

	result, err := e.coordinator.Run(ctx, runID, req)
	out := RunResult{RunID: runID, Result: result}
	if err != nil {
		return out, err
	}

	if result.Clarification != nil {
		pending := domain.PendingRun{
			RunID:     runID,
			Input:     req.UserInput,
			Answers:   req.ClarificationAnswers,
			Profile:   result.Profile,
			Questions: result.Clarification.Questions,
			CreatedAt: time.Now().UTC(),
		}
		if err := e.store.Save(ctx, pending); err != nil {
			return out, fmt.Errorf("failed to park run %s: %w", runID, err)
		}
	}
	return out, nil
}

// Resume continues a parked run with newly collected answers. Answers
// accumulate across rounds; the run is deleted once generation succeeds.
func (e *Engine) Resume(ctx context.Context, runID string, answers map[string]string) (RunResult, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, runID, resumeLockTTL)
		if err != nil {
			return RunResult{RunID: runID}, fmt.Errorf("failed to lock run %s: %w", runID, err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				e.logger.Warn("failed to release run lock", "run", runID, "err", err)
			}
		}()
	}

	pending, err := e.store.Load(ctx, runID)
	if err != nil {
		return RunResult{RunID: runID}, err
	}

	merged := make(map[string]string, len(pending.Answers)+len(answers))
	for k, v := range pending.Answers {
		merged[k] = v
	}
	for k, v := range answers {
		merged[k] = v
	}

	result, err := e.coordinator.Run(ctx, runID, pipeline.Request{
		UserInput:            pending.Input,
		ClarificationAnswers: merged,
	})
	out := RunResult{RunID: runID, Result: result}
	if err != nil {
		return out, err
	}

	if result.Clarification != nil {
		pending.Answers = merged
		pending.Questions = result.Clarification.Questions
		pending.Profile = result.Profile
		if err := e.store.Save(ctx, pending); err != nil {
			return out, fmt.Errorf("failed to update run %s: %w", runID, err)
		}
		return out, nil
	}

	if err := e.store.Delete(ctx, runID); err != nil {
		e.logger.Warn("failed to delete finished run", "run", runID, "err", err)
	}
	return out, nil
}

// PendingRuns lists the IDs of runs parked on clarification.
func (e *Engine) PendingRuns(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// PendingRun loads one parked run.
func (e *Engine) PendingRun(ctx context.Context, runID string) (domain.PendingRun, error) {
	return e.store.Load(ctx, runID)
}

// Patterns returns the structural archetypes the synthesizer can build, in
// precedence order.
func (e *Engine) Patterns() []pattern.Archetype {
	return pattern.All()
}
