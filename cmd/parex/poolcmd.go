package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/parex/internal/cpu"
	"github.com/utkarsh5026/parex/pool"
)

func newPoolCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Compute a batch of Fibonacci numbers on a work queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPool(cmd.Context(), a.cfg, a.logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.UintSliceVar(&a.flags.Fib, "fib", defaultFib, "Fibonacci indices to compute, one task each")
	f.Float64Var(&a.flags.RateLimit, "rate-limit", 0, "maximum task starts per second (0 = unlimited)")
	f.IntVar(&a.flags.Burst, "burst", 1, "rate limiter burst")
	f.BoolVar(&a.flags.Affinity, "affinity", false, "pin each worker to a CPU core")
	f.BoolVar(&a.flags.NoProgress, "no-progress", false, "disable the progress bar")
	return cmd
}

// maxFib is the largest index whose Fibonacci number fits in a uint64.
const maxFib = 93

var errFibOverflow = errors.New("fibonacci number overflows uint64")

func fib(n uint) uint64 {
	if n < 2 {
		return uint64(n)
	}
	return fib(n-1) + fib(n-2)
}

func fibTask(n uint) pool.Task[uint64] {
	return func() (uint64, error) {
		if n > maxFib {
			return 0, fmt.Errorf("fib(%d): %w", n, errFibOverflow)
		}
		return fib(n), nil
	}
}

func runPool(ctx context.Context, cfg Config, logger *slog.Logger, out, progressOut io.Writer) error {
	workers := cfg.Workers
	if workers == 0 {
		workers = cpu.Parallelism()
	}

	opts := []pool.Option{
		pool.WithName("fib"),
		pool.WithLogger(logger),
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, pool.WithRateLimit(cfg.RateLimit, max(cfg.Burst, 1)))
	}
	if cfg.Affinity {
		opts = append(opts, pool.WithCPUAffinity())
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		stop, err := serveMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer stop(ctx)
		opts = append(opts, pool.WithMetrics(reg))
	}

	var bar *progressbar.ProgressBar
	if !cfg.NoProgress {
		bar = progressbar.NewOptions(len(cfg.Fib),
			progressbar.OptionSetWriter(progressOut),
			progressbar.OptionSetDescription("Computing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionClearOnFinish(),
		)
		opts = append(opts, pool.WithOnTaskEnd(func(int64, error) { _ = bar.Add(1) }))
	}

	q, err := pool.New[uint64](workers, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	for _, n := range cfg.Fib {
		if _, err := q.Push(fibTask(n)); err != nil {
			q.Shutdown()
			return err
		}
	}
	q.Shutdown()
	elapsed := time.Since(start)
	if bar != nil {
		_ = bar.Finish()
	}

	if err := renderPool(out, cfg.Fib, q.SortedResults(), q.Faults()); err != nil {
		return err
	}
	stats := q.Stats()
	_, _ = bold.Fprintf(out, "%d tasks on %d workers in %v: %d completed, %d faulted\n",
		stats.Submitted, stats.Workers, elapsed.Round(time.Millisecond), stats.Completed, stats.Faulted)
	return nil
}

func renderPool(w io.Writer, inputs []uint, results []pool.Result[uint64], faults []pool.Fault) error {
	table := tablewriter.NewWriter(w)
	table.Header("Task", "n", "fib(n)")
	for _, r := range results {
		if err := table.Append(fmt.Sprint(r.Index), fmt.Sprint(inputs[r.Index]), fmt.Sprint(r.Value)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, f := range faults {
		_, _ = red.Fprintf(w, "fault: %v\n", f)
	}
	return nil
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}

// serveMetrics exposes reg on addr until the returned stop function is
// called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(context.Context), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}

	srv := &http.Server{
		Handler:           metricsHandler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
