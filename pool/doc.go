// Package pool provides WorkQueue, a persistent pool of worker goroutines
// fed from a single FIFO queue of heterogeneous tasks.
//
// A WorkQueue is created with a fixed number of workers, all started
// immediately. Tasks are zero-argument functions; each one is claimed by
// exactly one worker and its outcome is recorded either as a Result or as
// a Fault. A failing task (one that returns an error or panics) never
// stops its worker or the pool.
//
// # Basic Usage
//
//	q, err := pool.New[int](4)
//	if err != nil {
//	    return err
//	}
//	defer q.Close()
//
//	for i := range 10 {
//	    q.Push(func() (int, error) { return i * i, nil })
//	}
//	q.Wait()
//	for _, r := range q.SortedResults() {
//	    fmt.Println(r.Index, r.Value)
//	}
//
// # Wait and Shutdown
//
// Wait blocks until the queue is empty and no worker is running a task.
// The pool stays usable afterwards, so a caller can submit a batch, wait
// for it, then submit another.
//
// Shutdown stops accepting submissions, lets the workers drain whatever
// is still queued and returns once every worker has exited. It is
// idempotent and safe to call from several goroutines.
//
// # Tasks Without Results
//
// NewVoid builds a pool that keeps no results, only faults:
//
//	q, _ := pool.NewVoid(2)
//	q.Push(pool.Thunk(func() error { return os.Remove(path) }))
//	q.Shutdown()
//	if q.HasFaults() {
//	    for _, f := range q.Faults() {
//	        log.Println(f)
//	    }
//	}
//
// # Observability
//
// WithLogger reports worker lifecycle and task outcomes through log/slog.
// WithMetrics registers Prometheus collectors for submissions, completions,
// faults, queue depth and task duration. WithBeforeTaskStart and
// WithOnTaskEnd hook into every execution.
//
// # Throughput Control
//
//	q, _ := pool.New[Response](8,
//	    pool.WithRateLimit(5, 10), // 5 tasks/sec, burst of 10
//	    pool.WithCPUAffinity(),
//	)
package pool
