package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/parex/policy"
)

// app carries the resolved configuration from the root command to its
// subcommands.
type app struct {
	cfg        Config
	flags      Config
	policies   policyList
	configPath string
	logger     *slog.Logger
}

func newApp() *app {
	return &app{
		flags:    defaultConfig(),
		policies: policyList{values: policy.All()},
	}
}

func newRootCmd() *cobra.Command {
	return newApp().command()
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:          "parex",
		Short:        "Run parallel algorithms and work queue batches",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file; flags override its values")
	pf.Var(&a.policies, "policy", "execution policy: seq, par or par_vec (repeatable)")
	pf.IntVar(&a.flags.Size, "size", a.flags.Size, "number of elements in the algorithm scenario")
	pf.IntVar(&a.flags.Workers, "workers", a.flags.Workers, "fork-join chunks for algo, worker goroutines for pool (0 = auto)")
	pf.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&a.flags.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while the pool runs")

	root.AddCommand(newAlgoCmd(a), newPoolCmd(a), newVersionCmd())
	return root
}

// resolve builds the effective configuration: defaults, then the config
// file, then explicitly set flags.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg := defaultConfig()
	if a.configPath != "" {
		if err := loadConfig(a.configPath, &cfg); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("policy") {
		cfg.Policies = a.policies.values
	}
	if flags.Changed("size") {
		cfg.Size = a.flags.Size
	}
	if flags.Changed("workers") {
		cfg.Workers = a.flags.Workers
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = a.flags.MetricsAddr
	}
	if flags.Lookup("fib") != nil && flags.Changed("fib") {
		cfg.Fib = a.flags.Fib
	}
	if flags.Lookup("rate-limit") != nil && flags.Changed("rate-limit") {
		cfg.RateLimit = a.flags.RateLimit
	}
	if flags.Lookup("burst") != nil && flags.Changed("burst") {
		cfg.Burst = a.flags.Burst
	}
	if flags.Lookup("affinity") != nil && flags.Changed("affinity") {
		cfg.Affinity = a.flags.Affinity
	}
	if flags.Lookup("no-progress") != nil && flags.Changed("no-progress") {
		cfg.NoProgress = a.flags.NoProgress
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	return nil
}
