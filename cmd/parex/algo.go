package main

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/parex/algo"
	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

func newAlgoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "algo",
		Short: "Run every algorithm over 0..size-1 under each selected policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = bold.Fprintf(out, "Scenario: %d integers, policies %v\n\n", a.cfg.Size, a.cfg.Policies)

			rows := runScenario(a.cfg.Size, a.cfg.Policies,
				algo.WithWorkers(a.cfg.Workers),
				algo.WithLogger(a.logger),
			)
			if err := renderScenario(out, rows); err != nil {
				return err
			}
			return scenarioErr(rows)
		},
	}
}

// scenarioCheck is one algorithm call in the scenario together with the
// answer it must produce for a range of n elements.
type scenarioCheck struct {
	name string
	run  func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any
	want func(n int) any
}

var scenarioChecks = []scenarioCheck{
	{
		name: "any_of(x >= 0)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.AnyOf(p, xs, func(x int) bool { return x >= 0 }, opts...)
		},
		want: func(n int) any { return n > 0 },
	},
	{
		name: "all_of(x >= 0)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.AllOf(p, xs, func(x int) bool { return x >= 0 }, opts...)
		},
		want: func(int) any { return true },
	},
	{
		name: "none_of(x < 0)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.NoneOf(p, xs, func(x int) bool { return x < 0 }, opts...)
		},
		want: func(int) any { return true },
	},
	{
		name: "count(5000)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.Count(p, xs, 5000, opts...)
		},
		want: func(n int) any {
			if n > 5000 {
				return 1
			}
			return 0
		},
	},
	{
		name: "count_if(even)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.CountIf(p, xs, func(x int) bool { return x%2 == 0 }, opts...)
		},
		want: func(n int) any { return (n + 1) / 2 },
	},
	{
		name: "equal(xs, xs)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			return algo.Equal(p, xs, xs, opts...)
		},
		want: func(int) any { return true },
	},
	{
		name: "for_each(sum)",
		run: func(p policy.Policy, xs ranges.Range[int], opts []algo.Option) any {
			var sum atomic.Int64
			algo.ForEach(p, xs, func(x int) { sum.Add(int64(x)) }, opts...)
			return sum.Load()
		},
		want: func(n int) any { return int64(n) * int64(n-1) / 2 },
	},
}

type scenarioRow struct {
	Algorithm string
	Policy    policy.Policy
	Got       any
	Want      any
	Elapsed   time.Duration
}

func (r scenarioRow) ok() bool { return r.Got == r.Want }

// runScenario runs every check under every policy over Iota(size).
func runScenario(size int, policies []policy.Policy, opts ...algo.Option) []scenarioRow {
	xs := ranges.Iota(size)
	rows := make([]scenarioRow, 0, len(scenarioChecks)*len(policies))
	for _, c := range scenarioChecks {
		for _, p := range policies {
			start := time.Now()
			got := c.run(p, xs, opts)
			rows = append(rows, scenarioRow{
				Algorithm: c.name,
				Policy:    p,
				Got:       got,
				Want:      c.want(size),
				Elapsed:   time.Since(start),
			})
		}
	}
	return rows
}

func renderScenario(w io.Writer, rows []scenarioRow) error {
	table := tablewriter.NewWriter(w)
	table.Header("Algorithm", "Policy", "Result", "Expected", "Time", "Status")
	for _, r := range rows {
		status := green.Sprint("PASS")
		if !r.ok() {
			status = red.Sprint("FAIL")
		}
		if err := table.Append(
			r.Algorithm,
			r.Policy.String(),
			fmt.Sprint(r.Got),
			fmt.Sprint(r.Want),
			r.Elapsed.Round(time.Microsecond).String(),
			status,
		); err != nil {
			return err
		}
	}
	return table.Render()
}

var errScenarioFailed = errors.New("scenario failed")

func scenarioErr(rows []scenarioRow) error {
	failed := 0
	for _, r := range rows {
		if !r.ok() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks disagree", errScenarioFailed, failed, len(rows))
	}
	return nil
}
