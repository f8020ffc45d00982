package pool

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// WorkQueue is a fixed-size pool of persistent workers consuming one FIFO
// task queue.
//
// Type parameters:
//   - R: The result type produced by tasks (struct{} for NewVoid pools)
type WorkQueue[R any] struct {
	core *queueCore[R]
	done chan struct{} // Closed when all workers have exited
}

// New creates a WorkQueue and starts its workers immediately.
//
// Parameters:
//   - workers: Number of worker goroutines; must be positive
//   - opts: Variadic set of Option values (logger, metrics, rate limit, hooks)
//
// Returns:
//   - *WorkQueue: A running pool; call Shutdown or Close to stop it
//   - error: ErrInvalidWorkerCount if workers <= 0
//
// Example:
//
//	q, err := pool.New[string](4, pool.WithName("fetch"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer q.Close()
func New[R any](workers int, opts ...Option) (*WorkQueue[R], error) {
	return start[R](workers, false, opts)
}

// NewVoid creates a WorkQueue for tasks whose values are not kept. Only
// faults are recorded; Results always returns nil.
func NewVoid(workers int, opts ...Option) (*WorkQueue[struct{}], error) {
	return start[struct{}](workers, true, opts)
}

func start[R any](workers int, void bool, opts []Option) (*WorkQueue[R], error) {
	if workers <= 0 {
		return nil, ErrInvalidWorkerCount
	}

	cfg := newConfig(opts)
	core := newQueueCore[R](workers, void, cfg)
	q := &WorkQueue[R]{
		core: core,
		done: make(chan struct{}),
	}

	var g errgroup.Group
	for i := range workers {
		g.Go(func() error {
			return worker(core, i)
		})
	}

	go func() {
		_ = g.Wait()
		close(q.done)
	}()

	cfg.logger.Debug("pool started", slog.Int("workers", workers), slog.Bool("void", void))
	return q, nil
}

// Push appends task to the queue and wakes one idle worker. It never waits
// for the task to run.
//
// Returns:
//   - index: The task's submission index, counting from 0 in Push order
//   - error: ErrShutdown once Shutdown was requested, ErrNilTask for a nil task
func (q *WorkQueue[R]) Push(task Task[R]) (int64, error) {
	if task == nil {
		return 0, ErrNilTask
	}
	return q.core.enqueue(task)
}

// Wait blocks until the queue is empty and no worker is running a task.
// Submissions stay open, so the pool is usable after Wait returns. Tasks
// pushed concurrently with Wait may or may not be waited for.
// A task must not call Wait on its own pool: the calling task counts as
// running, so Wait would never return.
func (q *WorkQueue[R]) Wait() {
	q.core.waitIdle()
}

// Shutdown stops accepting submissions, lets the workers drain every task
// still queued and returns once all of them have exited. It is idempotent
// and safe for concurrent use; every caller returns after the workers exit.
//
// A task must not call Shutdown on its own pool, since its worker cannot
// exit while the task waits. Tasks use RequestShutdown instead.
func (q *WorkQueue[R]) Shutdown() {
	_ = q.ShutdownTimeout(0)
}

// RequestShutdown stops accepting submissions and returns without waiting.
// The workers drain the queue and exit in the background; Done is closed
// once they have. It is the form of Shutdown that is safe to call from a task.
func (q *WorkQueue[R]) RequestShutdown() {
	if q.core.requestShutdown() {
		q.core.cfg.logger.Debug("pool shutting down", slog.Int("queued", q.core.stats().Queued))
	}
}

// ShutdownTimeout is like Shutdown but gives up waiting after timeout.
// The workers keep draining in the background after a timeout.
// Like Shutdown, it must not be called from a task of the same pool.
//
// Returns:
//   - error: ErrShutdownTimeout if the workers were still running at the deadline
//
// Example:
//
//	if err := q.ShutdownTimeout(5 * time.Second); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
func (q *WorkQueue[R]) ShutdownTimeout(timeout time.Duration) error {
	q.RequestShutdown()
	return waitUntil(q.done, timeout)
}

// Close implements io.Closer. It is Shutdown and always returns nil.
func (q *WorkQueue[R]) Close() error {
	q.Shutdown()
	return nil
}

// Done returns a channel closed once every worker has exited.
func (q *WorkQueue[R]) Done() <-chan struct{} {
	return q.done
}

// Results returns a copy of the values of successful tasks in completion
// order. It is safe to call at any time; a pool built with NewVoid always
// returns nil.
func (q *WorkQueue[R]) Results() []Result[R] {
	q.core.resultsMu.Lock()
	defer q.core.resultsMu.Unlock()
	return slices.Clone(q.core.results)
}

// SortedResults is like Results but ordered by submission index.
func (q *WorkQueue[R]) SortedResults() []Result[R] {
	results := q.Results()
	slices.SortFunc(results, func(a, b Result[R]) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return results
}

// HasFaults reports whether any task has failed so far.
func (q *WorkQueue[R]) HasFaults() bool {
	q.core.faultsMu.Lock()
	defer q.core.faultsMu.Unlock()
	return len(q.core.faults) > 0
}

// Faults returns a copy of the recorded faults in the order they occurred.
func (q *WorkQueue[R]) Faults() []Fault {
	q.core.faultsMu.Lock()
	defer q.core.faultsMu.Unlock()
	return slices.Clone(q.core.faults)
}

// States returns the current state of every worker, indexed by worker id.
func (q *WorkQueue[R]) States() []WorkerState {
	states := make([]WorkerState, len(q.core.states))
	for i := range q.core.states {
		states[i] = WorkerState(q.core.states[i].Load())
	}
	return states
}

// Stats returns a snapshot of the pool's counters.
func (q *WorkQueue[R]) Stats() Stats {
	return q.core.stats()
}

// Workers returns the number of workers the pool was created with.
func (q *WorkQueue[R]) Workers() int {
	return len(q.core.states)
}

// IsShutdown reports whether Shutdown has been requested.
func (q *WorkQueue[R]) IsShutdown() bool {
	return q.core.isShutdown()
}
