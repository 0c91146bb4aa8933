// Package observability exposes pipeline metrics through Prometheus and
// bridges them into the lifecycle hooks the coordinator emits on.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/flowsmith/flowsmith/pkg/domain"
	"github.com/flowsmith/flowsmith/pkg/pipeline"
)

// Metrics holds the pipeline's Prometheus collectors.
type Metrics struct {
	stageDuration *prometheus.HistogramVec
	stageFailures *prometheus.CounterVec
	repairs       *prometheus.CounterVec
	runs          prometheus.Counter
}

// New registers the collectors on the given registerer. Pass
// prometheus.DefaultRegisterer outside of tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		stageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flowsmith",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		stageFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowsmith",
			Name:      "stage_failures_total",
			Help:      "Pipeline stage failures.",
		}, []string{"stage"}),
		repairs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flowsmith",
			Name:      "repairs_total",
			Help:      "Structural repairs applied to generated graphs.",
		}, []string{"action"}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "flowsmith",
			Name:      "runs_total",
			Help:      "Generation runs started.",
		}),
	}
}

// Hooks adapts the collectors into pipeline lifecycle hooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageStart: func(_ context.Context, e *domain.StageEvent) {
			if e.Stage == pipeline.StageAnalyze {
				m.runs.Inc()
			}
		},
		OnStageEnd: func(_ context.Context, e *domain.StageEvent) {
			m.stageDuration.WithLabelValues(e.Stage).Observe(e.DurationSeconds)
			if e.Err != nil {
				m.stageFailures.WithLabelValues(e.Stage).Inc()
			}
		},
		OnRepair: func(_ context.Context, e *domain.RepairEvent) {
			m.repairs.WithLabelValues(e.Action).Inc()
		},
	}
}
