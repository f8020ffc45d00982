package pool

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a WorkQueue.
type Option func(*config)

type config struct {
	name            string
	logger          *slog.Logger
	registerer      prometheus.Registerer
	rateLimiter     *rate.Limiter
	cpuAffinity     bool
	beforeTaskStart func(index int64)
	onTaskEnd       func(index int64, err error)
}

const defaultName = "default"

func newConfig(opts []Option) *config {
	cfg := &config{
		name:   defaultName,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.logger = cfg.logger.With(slog.String("pool", cfg.name))
	return cfg
}

// WithName labels the pool in log records and metrics.
// If not specified, the name is "default".
func WithName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.name = name
		}
	}
}

// WithLogger sets the logger for worker lifecycle events (Debug), task
// faults (Warn) and completed tasks (Debug). The pool is silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMetrics registers the pool's Prometheus collectors with reg. Every
// collector carries a constant "pool" label taken from WithName, so two
// pools sharing a registry need distinct names.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *config) {
		cfg.registerer = reg
	}
}

// WithRateLimit caps how fast workers start tasks.
// tasksPerSecond specifies the maximum number of task starts per second and
// burst the number that may start back to back. A worker that has claimed a
// task waits for the limiter before running it; the task is never dropped.
// If not specified, no rate limiting is applied.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithCPUAffinity locks each worker to its own OS thread and pins that
// thread to CPU core (worker id mod number of CPUs). Pinning is best
// effort: on platforms without affinity support workers run unpinned.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.cpuAffinity = true
	}
}

// WithBeforeTaskStart registers a hook called on the worker goroutine
// right before a task runs. Hooks must not panic.
func WithBeforeTaskStart(hook func(index int64)) Option {
	return func(cfg *config) {
		cfg.beforeTaskStart = hook
	}
}

// WithOnTaskEnd registers a hook called on the worker goroutine after a
// task's outcome has been recorded. err is nil for a successful task.
// Hooks must not panic.
func WithOnTaskEnd(hook func(index int64, err error)) Option {
	return func(cfg *config) {
		cfg.onTaskEnd = hook
	}
}
