package algo

import (
	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

// AnyOf reports whether pred returns true for at least one element of r.
// It returns false for an empty range.
func AnyOf[T any](p policy.Policy, r ranges.Range[T], pred func(T) bool, opts ...Option) bool {
	return anyOf("any_of", p, r, pred, newCallConfig(opts))
}

// AllOf reports whether pred returns true for every element of r.
// It returns true for an empty range.
func AllOf[T any](p policy.Policy, r ranges.Range[T], pred func(T) bool, opts ...Option) bool {
	return !anyOf("all_of", p, r, func(v T) bool { return !pred(v) }, newCallConfig(opts))
}

// NoneOf reports whether pred returns false for every element of r.
// It returns true for an empty range.
func NoneOf[T any](p policy.Policy, r ranges.Range[T], pred func(T) bool, opts ...Option) bool {
	return !anyOf("none_of", p, r, pred, newCallConfig(opts))
}

func anyOf[T any](name string, p policy.Policy, r ranges.Range[T], pred func(T) bool, cfg callConfig) bool {
	sequential := func() bool {
		cfg.trace(name, p, pathSequential, -1)
		for v := range r.All() {
			if pred(v) {
				return true
			}
		}
		return false
	}

	parallel := func() bool {
		pr, ok := ranges.AsPositional(r)
		if !ok {
			return sequential()
		}
		n := pr.Len()
		cfg.trace(name, p, pathForkJoin, n)
		return cfg.engine().Search(n, func(i int) bool {
			return pred(pr.At(i))
		})
	}

	return policy.Dispatch(p, policy.Cases[bool]{
		Sequential: sequential,
		Parallel:   parallel,
	})
}
