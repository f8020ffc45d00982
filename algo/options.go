package algo

import (
	"context"
	"io"
	"log/slog"

	"github.com/utkarsh5026/parex/internal/forkjoin"
	"github.com/utkarsh5026/parex/policy"
)

// Option configures a single algorithm call.
type Option func(*callConfig)

type callConfig struct {
	workers int
	logger  *slog.Logger
}

// WithWorkers fixes the number of chunks a parallel call splits its range
// into. Non-positive values keep the default of twice the available CPUs.
func WithWorkers(n int) Option {
	return func(cfg *callConfig) {
		if n > 0 {
			cfg.workers = n
		}
	}
}

// WithLogger emits one debug record per call describing how it executed.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *callConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newCallConfig(opts []Option) callConfig {
	cfg := callConfig{logger: discard}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (cfg callConfig) engine() forkjoin.Engine {
	return forkjoin.New(cfg.workers)
}

// trace records which path an algorithm took.
func (cfg callConfig) trace(name string, p policy.Policy, path string, n int) {
	if !cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []slog.Attr{
		slog.String("algorithm", name),
		slog.String("policy", p.String()),
		slog.String("path", path),
	}
	// Sequential-only ranges are not measured; Len may cost a traversal.
	if n >= 0 {
		attrs = append(attrs, slog.Int("len", n))
	}
	if path == pathForkJoin {
		attrs = append(attrs, slog.Int("workers", cfg.engine().Workers()))
	}
	cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "algorithm call", attrs...)
}

const (
	pathSequential     = "sequential"
	pathForkJoin       = "fork-join"
	pathLengthMismatch = "length-mismatch"
)
