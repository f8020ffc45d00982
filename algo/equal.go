package algo

import (
	"iter"

	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

// Equal reports whether a and b have the same length and equal elements at
// every position.
func Equal[T comparable](p policy.Policy, a, b ranges.Range[T], opts ...Option) bool {
	return equal("equal", p, a, b, func(x, y T) bool { return x == y }, newCallConfig(opts))
}

// EqualFunc is like Equal but compares elements with eq. Ranges of
// different lengths compare unequal without eq ever being called.
func EqualFunc[T, U any](p policy.Policy, a ranges.Range[T], b ranges.Range[U], eq func(T, U) bool, opts ...Option) bool {
	return equal("equal", p, a, b, eq, newCallConfig(opts))
}

func equal[T, U any](name string, p policy.Policy, a ranges.Range[T], b ranges.Range[U], eq func(T, U) bool, cfg callConfig) bool {
	n := a.Len()
	if n != b.Len() {
		cfg.trace(name, p, pathLengthMismatch, n)
		return false
	}

	sequential := func() bool {
		cfg.trace(name, p, pathSequential, n)
		return equalSequential(a, b, eq)
	}

	parallel := func() bool {
		pa, okA := ranges.AsPositional(a)
		pb, okB := ranges.AsPositional(b)
		if !okA || !okB {
			return sequential()
		}
		cfg.trace(name, p, pathForkJoin, n)
		mismatch := cfg.engine().Search(n, func(i int) bool {
			return !eq(pa.At(i), pb.At(i))
		})
		return !mismatch
	}

	return policy.Dispatch(p, policy.Cases[bool]{
		Sequential: sequential,
		Parallel:   parallel,
	})
}

// equalSequential walks both ranges in lock step. Lengths are already
// known to match.
func equalSequential[T, U any](a ranges.Range[T], b ranges.Range[U], eq func(T, U) bool) bool {
	if pb, ok := ranges.AsPositional(b); ok {
		i := 0
		for x := range a.All() {
			if !eq(x, pb.At(i)) {
				return false
			}
			i++
		}
		return true
	}

	next, stop := iter.Pull(b.All())
	defer stop()
	for x := range a.All() {
		y, ok := next()
		if !ok || !eq(x, y) {
			return false
		}
	}
	return true
}
