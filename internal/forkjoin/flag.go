package forkjoin

import "sync/atomic"

// Flag is the stop signal shared by the chunk tasks of one search. It only
// ever moves from running to stopped; a new search uses a new Flag.
type Flag struct {
	stopped atomic.Bool
}

// Stop asks every task observing f to return at its next check.
func (f *Flag) Stop() { f.stopped.Store(true) }

// Stopped reports whether Stop has been called.
func (f *Flag) Stopped() bool { return f.stopped.Load() }
