// Package algo provides data-parallel versions of a handful of standard
// sequence algorithms: existence and universality tests, equality,
// counting, and per-element application.
//
// Every entry point takes an execution policy, a range and the usual
// predicate, value or function:
//
//	xs := ranges.Iota(100_000)
//	algo.AnyOf(policy.Par, xs, func(x int) bool { return x >= 0 })      // true
//	algo.Count(policy.ParVec, xs, 5000)                                  // 1
//	algo.CountIf(policy.Seq, xs, func(x int) bool { return x%2 == 0 })   // 50000
//
// # Execution
//
// Under policy.Seq the algorithm runs on the calling goroutine. Under
// policy.Par and policy.ParVec a positional range is split into static
// chunks (twice the available CPUs by default, see WithWorkers), one
// goroutine per chunk, and the call returns only after every chunk has
// finished. Ranges without positional access fall back to the sequential
// pass whatever the policy.
//
// AnyOf, AllOf, NoneOf and Equal stop early: once one chunk finds an element
// that decides the result, the other chunks stop at their next element.
// Count, CountIf and ForEach always visit every element.
//
// Predicates and functions passed under a parallel policy are called from
// several goroutines at once and must be safe for that. ForEach visits the
// elements of one chunk in ascending order; the order across chunks is
// unspecified.
//
// # Panics
//
// A panic raised by a predicate or function on the fork-join path is
// recovered, the remaining chunks are joined, and the panic is re-raised on
// the caller's goroutine wrapped with the stack of the goroutine that
// panicked. This holds even when the range fits in a single chunk and runs
// inline.
package algo
