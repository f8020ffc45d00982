package ranges

import "iter"

// SliceRange is the positional view of a slice.
type SliceRange[T any] []T

// Slice wraps s without copying it.
func Slice[T any](s []T) SliceRange[T] {
	return SliceRange[T](s)
}

func (s SliceRange[T]) Len() int { return len(s) }

func (s SliceRange[T]) At(i int) T { return s[i] }

func (s SliceRange[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

// IotaRange is the positional range 0, 1, ..., n-1.
type IotaRange int

// Iota returns the integers in [0, n) without materialising them.
// A negative n is treated as 0.
func Iota(n int) IotaRange {
	return IotaRange(max(n, 0))
}

func (r IotaRange) Len() int { return int(r) }

func (r IotaRange) At(i int) int { return i }

func (r IotaRange) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range int(r) {
			if !yield(i) {
				return
			}
		}
	}
}

// seqRange is a forward-only range over a re-iterable sequence.
type seqRange[T any] struct {
	seq iter.Seq[T]
}

// FromSeq wraps a sequence that can be iterated more than once. The result
// is not positional; Len walks the whole sequence.
func FromSeq[T any](seq iter.Seq[T]) Range[T] {
	return seqRange[T]{seq: seq}
}

func (r seqRange[T]) Len() int {
	n := 0
	for range r.seq {
		n++
	}
	return n
}

func (r seqRange[T]) All() iter.Seq[T] { return r.seq }

// sequentialOnly hides the positional capability of the wrapped range.
type sequentialOnly[T any] struct {
	inner Range[T]
}

// Sequential returns r restricted to forward traversal, keeping its
// constant-time length if it had one. Useful to force the single-pass path.
func Sequential[T any](r Range[T]) Range[T] {
	return sequentialOnly[T]{inner: r}
}

func (r sequentialOnly[T]) Len() int { return r.inner.Len() }

func (r sequentialOnly[T]) All() iter.Seq[T] { return r.inner.All() }
