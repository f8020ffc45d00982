package algo

import (
	"github.com/utkarsh5026/parex/internal/forkjoin"
	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

// Count returns the number of elements of r equal to value.
func Count[T comparable](p policy.Policy, r ranges.Range[T], value T, opts ...Option) int {
	return countIf("count", p, r, func(v T) bool { return v == value }, newCallConfig(opts))
}

// CountIf returns the number of elements of r for which pred returns true.
func CountIf[T any](p policy.Policy, r ranges.Range[T], pred func(T) bool, opts ...Option) int {
	return countIf("count_if", p, r, pred, newCallConfig(opts))
}

func countIf[T any](name string, p policy.Policy, r ranges.Range[T], pred func(T) bool, cfg callConfig) int {
	sequential := func() int {
		cfg.trace(name, p, pathSequential, -1)
		seen := 0
		for v := range r.All() {
			if pred(v) {
				seen++
			}
		}
		return seen
	}

	parallel := func() int {
		pr, ok := ranges.AsPositional(r)
		if !ok {
			return sequential()
		}
		n := pr.Len()
		cfg.trace(name, p, pathForkJoin, n)
		return cfg.engine().Sum(n, func(c forkjoin.Chunk) int {
			seen := 0
			for i := c.Start; i < c.End; i++ {
				if pred(pr.At(i)) {
					seen++
				}
			}
			return seen
		})
	}

	return policy.Dispatch(p, policy.Cases[int]{
		Sequential: sequential,
		Parallel:   parallel,
	})
}
