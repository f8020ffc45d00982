package forkjoin

import (
	"fmt"

	"github.com/utkarsh5026/parex/internal/cpu"
)

// defaultWorkers is the fork-join width when parallelism is unknown.
const defaultWorkers = 2

// parallelism is sampled once at start-up, before any worker thread can be
// pinned to a single core.
var parallelism = cpu.Parallelism()

// Workers returns the default fork-join width: twice the number of CPUs
// available to the process, or 2 when that number cannot be detected.
func Workers() int {
	if parallelism > 0 {
		return 2 * parallelism
	}
	return defaultWorkers
}

// Chunk is the half-open index interval [Start, End).
type Chunk struct {
	Start int
	End   int
}

// Len returns the number of indices in c.
func (c Chunk) Len() int { return c.End - c.Start }

// Empty reports whether c contains no index.
func (c Chunk) Empty() bool { return c.End <= c.Start }

// Split divides [0, n) into exactly w chunks of n/w indices each, the last
// chunk absorbing the n%w remainder. The chunks are pairwise disjoint,
// ordered, and their union is [0, n). When n < w every chunk but the last
// is empty.
//
// Split panics if n < 0 or w < 1.
func Split(n, w int) []Chunk {
	if n < 0 {
		panic(fmt.Sprintf("invalid range length: %v", n))
	}
	if w < 1 {
		panic(fmt.Sprintf("invalid number of chunks: %v", w))
	}

	size := n / w
	chunks := make([]Chunk, w)
	for i := range chunks {
		chunks[i] = Chunk{Start: i * size, End: (i + 1) * size}
	}
	chunks[w-1].End = n
	return chunks
}
