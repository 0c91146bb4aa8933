// Package pipeline coordinates the generation stages: analyze, pattern
// selection, synthesis, configuration, repair, and scoring. Stages run
// strictly in order; each stage's full output is a precondition of the
// next. The only designed short-circuit is the clarification outcome.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/flowsmith/flowsmith/pkg/configure"
	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/dsl"
	"github.com/flowsmith/flowsmith/pkg/pattern"
	"github.com/flowsmith/flowsmith/pkg/quality"
	"github.com/flowsmith/flowsmith/pkg/repair"
	"github.com/flowsmith/flowsmith/pkg/requirement"
	"github.com/flowsmith/flowsmith/pkg/synth"
	"github.com/mitchellh/mapstructure"
)

// Stage names, in execution order.
const (
	StageAnalyze       = "analyze"
	StageSelectPattern = "select_pattern"
	StageSynthesize    = "synthesize"
	StageConfigure     = "configure"
	StageRepair        = "repair"
	StageScore         = "score"
)

// Preferences are caller-supplied overrides, decoded from a loosely typed
// payload so transports can pass them through as-is.
type Preferences struct {
	Complexity  string `mapstructure:"complexity"`
	Pattern     string `mapstructure:"pattern"`
	Performance string `mapstructure:"performance"`
	Budget      string `mapstructure:"budget"`
}

// Request is one generation request.
type Request struct {
	UserInput            string            `json:"user_input"`
	ClarificationAnswers map[string]string `json:"clarification_answers,omitempty"`

	// Preferences is decoded into Preferences; unknown keys are ignored.
	Preferences map[string]any `json:"preferences,omitempty"`
}

// Clarification is the short-circuit outcome: the analyzer needs answers
// before generation can proceed.
type Clarification struct {
	Questions      []domain.ClarificationQuestion `json:"questions"`
	PartialProfile domain.RequirementProfile      `json:"partial_results"`
}

// StageRecord is the per-stage slice of the run metadata.
type StageRecord struct {
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"duration_seconds"`
	Success         bool    `json:"success"`
	Issues          int     `json:"issues"`
}

// RunMetadata describes a finished (or failed) run.
type RunMetadata struct {
	ElapsedSeconds  float64       `json:"elapsed_seconds"`
	EstimatedTokens int           `json:"estimated_tokens"`
	Stages          []StageRecord `json:"stages"`
}

// Result is the outcome of one run. Exactly one of Document or
// Clarification is set on success / short-circuit; on stage failure the
// returned error is a *StageError and Result carries only metadata.
type Result struct {
	Success       bool                      `json:"success"`
	Document      *dsl.Document             `json:"document,omitempty"`
	Assessment    *domain.QualityAssessment `json:"assessment,omitempty"`
	Profile       domain.RequirementProfile `json:"profile"`
	Archetype     string                    `json:"archetype,omitempty"`
	Clarification *Clarification            `json:"clarification_needed,omitempty"`
	Metadata      RunMetadata               `json:"metadata"`

	// Graph is the repaired workflow graph behind Document, kept for
	// renderers that want structure rather than serialized output.
	Graph *domain.WorkflowGraph `json:"-"`
}

// Coordinator drives the staged pipeline. The zero value is usable; Logger
// and Hooks default to no-ops.
type Coordinator struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

// New creates a coordinator. A nil logger disables logging.
func New(logger *slog.Logger, hooks domain.LifecycleHooks) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{logger: logger, hooks: hooks}
}

// Run executes the pipeline for one request. runID identifies the run in
// logs and events; the caller owns its generation.
func (c *Coordinator) Run(ctx context.Context, runID string, req Request) (Result, error) {
	started := time.Now()
	result := Result{}

	finish := func() {
		result.Metadata.ElapsedSeconds = time.Since(started).Seconds()
	}
	defer finish()

	prefs, err := decodePreferences(req.Preferences)
	if err != nil {
		return result, c.fail(ctx, &result, StageAnalyze, err)
	}

	// Stage 1: analyze.
	stageStart := c.stageStart(ctx, runID, StageAnalyze)
	analysis := requirement.Analyze(req.UserInput, req.ClarificationAnswers)
	profile := analysis.Profile
	if prefs.Complexity != "" {
		profile.Complexity = domain.ParseComplexity(prefs.Complexity)
	}
	result.Profile = profile
	c.stageEnd(ctx, runID, &result, stageStart, len(analysis.Questions), nil)

	if analysis.NeedsClarification && len(req.ClarificationAnswers) == 0 {
		c.logger.InfoContext(ctx, "clarification needed",
			"run", runID, "questions", len(analysis.Questions))
		result.Clarification = &Clarification{
			Questions:      analysis.Questions,
			PartialProfile: profile,
		}
		return result, nil
	}

	// Stage 2: select pattern.
	stageStart = c.stageStart(ctx, runID, StageSelectPattern)
	archetype := pattern.Select(profile)
	if prefs.Pattern != "" {
		if _, err := pattern.Get(prefs.Pattern); err != nil {
			c.stageEnd(ctx, runID, &result, stageStart, 0, err)
			return result, c.fail(ctx, &result, StageSelectPattern, err)
		}
		archetype = prefs.Pattern
	}
	result.Archetype = archetype
	c.stageEnd(ctx, runID, &result, stageStart, 0, nil)

	// Stage 3: synthesize.
	stageStart = c.stageStart(ctx, runID, StageSynthesize)
	graph, err := synth.Synthesize(profile, archetype)
	c.stageEnd(ctx, runID, &result, stageStart, 0, err)
	if err != nil {
		return result, c.fail(ctx, &result, StageSynthesize, err)
	}

	// Stage 4: configure.
	stageStart = c.stageStart(ctx, runID, StageConfigure)
	graph, meta, err := configure.Configure(graph, profile)
	c.stageEnd(ctx, runID, &result, stageStart, 0, err)
	if err != nil {
		return result, c.fail(ctx, &result, StageConfigure, err)
	}
	for _, m := range meta {
		result.Metadata.EstimatedTokens += m.EstimatedTokens
	}

	// Stage 5: repair. Structural problems are fixed, not surfaced.
	stageStart = c.stageStart(ctx, runID, StageRepair)
	graph, report := repair.Repair(graph)
	for _, action := range report.Actions {
		c.hooks.EmitRepair(ctx, &domain.RepairEvent{RunID: runID, Action: action.Kind, EdgeID: action.EdgeID})
		c.logger.DebugContext(ctx, "repair applied", "run", runID, "action", action.Kind, "detail", action.Detail)
	}
	c.stageEnd(ctx, runID, &result, stageStart, len(report.Issues), nil)

	// Stage 6: score and emit the document.
	stageStart = c.stageStart(ctx, runID, StageScore)
	assessment, doc := quality.Assess(graph, profile, meta, archetype)
	c.stageEnd(ctx, runID, &result, stageStart, len(assessment.Issues), nil)

	result.Success = true
	result.Document = &doc
	result.Assessment = &assessment
	result.Graph = &graph

	c.logger.InfoContext(ctx, "run complete",
		"run", runID,
		"archetype", archetype,
		"score", assessment.OverallScore,
		"grade", assessment.Grade,
		"readiness", assessment.Readiness)

	return result, nil
}

type stageTimer struct {
	name    string
	started time.Time
}

func (c *Coordinator) stageStart(ctx context.Context, runID, name string) stageTimer {
	c.hooks.EmitStageStart(ctx, &domain.StageEvent{RunID: runID, Stage: name})
	c.logger.DebugContext(ctx, "stage start", "run", runID, "stage", name)
	return stageTimer{name: name, started: time.Now()}
}

func (c *Coordinator) stageEnd(ctx context.Context, runID string, result *Result, timer stageTimer, issues int, err error) {
	duration := time.Since(timer.started).Seconds()
	c.hooks.EmitStageEnd(ctx, &domain.StageEvent{
		RunID:           runID,
		Stage:           timer.name,
		Err:             err,
		DurationSeconds: duration,
	})
	result.Metadata.Stages = append(result.Metadata.Stages, StageRecord{
		Name:            timer.name,
		DurationSeconds: duration,
		Success:         err == nil,
		Issues:          issues,
	})
}

func (c *Coordinator) fail(ctx context.Context, result *Result, stage string, err error) error {
	stageErr := newStageError(stage, err)
	c.logger.ErrorContext(ctx, "stage failed",
		"stage", stage, "recoverable", stageErr.Recoverable, "error", err)
	result.Success = false
	return stageErr
}

func decodePreferences(raw map[string]any) (Preferences, error) {
	var prefs Preferences
	if len(raw) == 0 {
		return prefs, nil
	}
	if err := mapstructure.Decode(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("invalid preferences: %w", err)
	}
	return prefs, nil
}
