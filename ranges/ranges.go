// Package ranges describes the sequences the algorithm library operates on
// and classifies them by the access they support.
//
// Every Range can be traversed forwards and reports its length. A
// Positional range additionally offers constant-time access to its i-th
// element, which is what the fork-join engine needs to hand disjoint index
// intervals to concurrent tasks. Ranges without positional access are always
// processed in a single sequential pass, whatever policy was requested,
// because splitting them would itself cost a full traversal.
package ranges

import "iter"

// Range is an ordered, finite sequence of elements.
type Range[T any] interface {
	// Len returns the number of elements. Constant time for positional
	// ranges; may require a full traversal otherwise.
	Len() int

	// All yields the elements in ascending order.
	All() iter.Seq[T]
}

// Positional is a Range with constant-time indexed access.
type Positional[T any] interface {
	Range[T]

	// At returns the element at index i, 0 <= i < Len().
	At(i int) T
}

// IsPositional reports whether r supports constant-time indexed access.
// The answer is fixed for the lifetime of r.
func IsPositional[T any](r Range[T]) bool {
	_, ok := r.(Positional[T])
	return ok
}

// AsPositional returns r as a Positional range when it is one.
func AsPositional[T any](r Range[T]) (Positional[T], bool) {
	p, ok := r.(Positional[T])
	return p, ok
}
