package algo

import (
	"github.com/utkarsh5026/parex/internal/forkjoin"
	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

// ForEach calls fn on every element of r exactly once.
func ForEach[T any](p policy.Policy, r ranges.Range[T], fn func(T), opts ...Option) {
	cfg := newCallConfig(opts)

	sequential := func() struct{} {
		cfg.trace("for_each", p, pathSequential, -1)
		for v := range r.All() {
			fn(v)
		}
		return struct{}{}
	}

	parallel := func() struct{} {
		pr, ok := ranges.AsPositional(r)
		if !ok {
			return sequential()
		}
		n := pr.Len()
		cfg.trace("for_each", p, pathForkJoin, n)
		cfg.engine().Each(n, func(c forkjoin.Chunk) {
			for i := c.Start; i < c.End; i++ {
				fn(pr.At(i))
			}
		})
		return struct{}{}
	}

	policy.Dispatch(p, policy.Cases[struct{}]{
		Sequential: sequential,
		Parallel:   parallel,
	})
}
