package stategraph

import (
	"log/slog"

	"github.com/randalmurphal/stategraph/pkg/stategraph/observability"
)

// DefaultMaxSteps is the default step budget for Run.
// Each node invocation counts as one step. The budget is the only built-in
// guard against routing cycles that never reach END.
const DefaultMaxSteps = 25

// runConfig holds configuration for graph execution.
type runConfig struct {
	maxSteps       int
	runID          string
	logger         *slog.Logger
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
}

// defaultRunConfig returns the default execution configuration.
func defaultRunConfig() runConfig {
	return runConfig{
		maxSteps: DefaultMaxSteps,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption func(*runConfig)

// WithMaxSteps sets the maximum number of node executions.
// Default: DefaultMaxSteps (25).
//
// This prevents routing cycles from looping forever. If a run exceeds
// the budget, Run returns a MaxStepsError (errors.Is ErrMaxSteps).
//
// Example:
//
//	result, err := compiled.Run(ctx, state, stategraph.WithMaxSteps(100))
func WithMaxSteps(n int) RunOption {
	return func(c *runConfig) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// WithRunID sets the run identifier for this execution.
// Overrides the context's run ID for logging, metrics, and tracing.
func WithRunID(id string) RunOption {
	return func(c *runConfig) {
		c.runID = id
	}
}

// WithRunLogger sets the logger used for run- and node-level log events.
// When unset, run-level logging is disabled (node code still logs through
// the context's logger).
func WithRunLogger(logger *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for this run.
// Uses the global OTel meter provider; configure it before calling Run.
func WithMetrics(enabled bool) RunOption {
	return func(c *runConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing for this run.
// Uses the global OTel tracer provider; configure it before calling Run.
func WithTracing(enabled bool) RunOption {
	return func(c *runConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
