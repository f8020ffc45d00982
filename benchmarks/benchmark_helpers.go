// Package benchmarks measures the algorithms under each execution policy
// and the work queue under different worker counts and options.
package benchmarks

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/pool"
)

// runPolicyBenchmark runs benchFunc once per execution policy.
func runPolicyBenchmark(b *testing.B, benchFunc func(b *testing.B, p policy.Policy)) {
	for _, p := range policy.All() {
		b.Run(p.String(), func(b *testing.B) {
			benchFunc(b, p)
		})
	}
}

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive operation
func cpuBoundWork(iterations, task int) pool.Task[int] {
	return func() (int, error) {
		result := 0
		for i := range iterations {
			result += i * task
		}
		return result, nil
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration, task int) pool.Task[int] {
	return func() (int, error) {
		time.Sleep(delay)
		return task * 2, nil
	}
}

// mixedWork simulates a realistic workload with variable processing time
func mixedWork(task int) pool.Task[int] {
	return func() (int, error) {
		time.Sleep(time.Duration(task%10) * 100 * time.Microsecond)

		result := 0
		for i := range 1000 {
			result += i
		}
		return result + task, nil
	}
}

// expensivePredicate burns a few hundred nanoseconds per element so the
// fork-join overhead is amortised.
func expensivePredicate(x int) bool {
	h := uint64(x)
	for range 32 {
		h ^= h << 13
		h ^= h >> 7
		h ^= h << 17
	}
	return h%97 == 0
}

// runBatch pushes taskCount tasks built by mk and waits for all of them.
func runBatch(b *testing.B, q *pool.WorkQueue[int], taskCount int, mk func(i int) pool.Task[int]) {
	b.Helper()
	for i := range taskCount {
		if _, err := q.Push(mk(i)); err != nil {
			b.Fatal(err)
		}
	}
	q.Wait()
}

func reportThroughput(b *testing.B, tasksPerOp, workers int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	tasksPerSec := (float64(tasksPerOp) / nsPerOp) * 1e9

	b.ReportMetric(tasksPerSec, "tasks/sec")
	if workers > 0 {
		b.ReportMetric(tasksPerSec/float64(workers), "tasks/sec/worker")
	}
}

// percentile returns the nearest-rank percentile p (0..1) of latencies.
func percentile(latencies []time.Duration, p float64) time.Duration {
	if len(latencies) == 0 {
		return 0
	}

	sorted := slices.Clone(latencies)
	slices.Sort(sorted)

	// For p=0.50 with 100 elements, we want the 50th element (index 49)
	index := max(int(math.Round(p*float64(len(sorted)-1))), 0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
