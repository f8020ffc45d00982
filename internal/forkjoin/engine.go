// Package forkjoin runs one operation over an index range by splitting it
// into static chunks, running one goroutine per chunk and joining them all
// before returning. Nothing started by an Engine outlives the call that
// started it.
//
// Two operation shapes are supported. Search stops early: every chunk
// checks a shared Flag before each index and the first chunk to find a
// deciding index stops the others. Sum and Each scan every index of every
// chunk unconditionally.
package forkjoin

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/parex/internal/panics"
)

// Engine is a fork-join executor with a fixed width. The zero value uses
// Workers().
type Engine struct {
	workers int
}

// New returns an engine splitting ranges into workers chunks.
// A non-positive count selects Workers().
func New(workers int) Engine {
	return Engine{workers: workers}
}

// Workers returns the number of chunks e splits a range into.
func (e Engine) Workers() int {
	if e.workers > 0 {
		return e.workers
	}
	return Workers()
}

// Search reports whether hit returns true for some index in [0, n).
//
// Chunks scan in ascending index order and check the shared stop flag
// before every index, so once a hit is recorded each other chunk performs
// at most one more call to hit. Which hit wins is unspecified; all hits
// produce the same answer.
func (e Engine) Search(n int, hit func(i int) bool) bool {
	if n == 0 {
		return false
	}

	var (
		flag  Flag
		found atomic.Bool
	)
	e.run(n, &flag, func(_ int, c Chunk) {
		for i := c.Start; i < c.End; i++ {
			if flag.Stopped() {
				return
			}
			if hit(i) {
				found.Store(true)
				flag.Stop()
				return
			}
		}
	})
	return found.Load()
}

// Sum runs count once per chunk of [0, n) and returns the sum of the
// partial results.
func (e Engine) Sum(n int, count func(c Chunk) int) int {
	if n == 0 {
		return 0
	}

	partials := make([]int, e.Workers())
	e.run(n, nil, func(slot int, c Chunk) {
		partials[slot] = count(c)
	})

	total := 0
	for _, p := range partials {
		total += p
	}
	return total
}

// Each runs fn once per chunk of [0, n). Chunks run concurrently with no
// ordering between them.
func (e Engine) Each(n int, fn func(c Chunk)) {
	if n == 0 {
		return
	}
	e.run(n, nil, func(_ int, c Chunk) {
		fn(c)
	})
}

// run executes body for every non-empty chunk and joins them. slot is the
// chunk's position in the split. A panic in any chunk stops flag (when
// non-nil) and is re-raised on the caller once every chunk has returned;
// the panic of the lowest chunk wins.
func (e Engine) run(n int, flag *Flag, body func(slot int, c Chunk)) {
	chunks := Split(n, e.Workers())

	live := 0
	last := 0
	for i, c := range chunks {
		if !c.Empty() {
			live++
			last = i
		}
	}
	if live == 1 {
		func() {
			defer func() {
				if p := panics.Wrap(recover()); p != nil {
					panic(p)
				}
			}()
			body(last, chunks[last])
		}()
		return
	}

	recovered := make([]*panics.Error, len(chunks))
	var g errgroup.Group
	for i, c := range chunks {
		if c.Empty() {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if p := panics.Wrap(recover()); p != nil {
					recovered[i] = p
					if flag != nil {
						flag.Stop()
					}
					err = p
				}
			}()
			body(i, c)
			return nil
		})
	}

	if err := g.Wait(); err == nil {
		return
	}
	for _, p := range recovered {
		if p != nil {
			panic(p)
		}
	}
}
