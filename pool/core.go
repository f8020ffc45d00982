package pool

import (
	"sync"
	"sync/atomic"
)

type job[R any] struct {
	index int64
	task  Task[R]
}

// queueCore is the state shared between a WorkQueue and its workers.
// Workers only ever hold a *queueCore, never the WorkQueue itself.
//
// The task queue, the results and the faults each have their own lock so
// that submitting, completing and failing do not contend with each other.
type queueCore[R any] struct {
	cfg     *config
	metrics *metrics
	void    bool

	mu        sync.Mutex
	available *sync.Cond // a task was queued or shutdown was requested
	idle      *sync.Cond // the queue is empty and nothing is running
	tasks     fifo[job[R]]
	running   int
	shutdown  bool
	next      int64

	resultsMu sync.Mutex
	results   []Result[R]

	faultsMu sync.Mutex
	faults   []Fault

	states    []atomic.Int32
	completed atomic.Int64
	faulted   atomic.Int64
}

func newQueueCore[R any](workers int, void bool, cfg *config) *queueCore[R] {
	q := &queueCore[R]{
		cfg:     cfg,
		metrics: newMetrics(cfg.registerer, cfg.name),
		void:    void,
		states:  make([]atomic.Int32, workers),
	}
	q.available = sync.NewCond(&q.mu)
	q.idle = sync.NewCond(&q.mu)
	return q
}

// enqueue appends task and wakes one waiting worker.
func (q *queueCore[R]) enqueue(task Task[R]) (int64, error) {
	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		return 0, ErrShutdown
	}
	index := q.next
	q.next++
	q.tasks.push(job[R]{index: index, task: task})
	q.metrics.taskSubmitted()
	q.mu.Unlock()

	q.available.Signal()
	debugLog("pushed task %d", index)
	return index, nil
}

// claim blocks until a task is available or shutdown was requested with an
// empty queue. ok is false only in the latter case, telling the worker to
// exit. Queued tasks are always handed out before workers exit.
func (q *queueCore[R]) claim() (j job[R], ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.tasks.len() == 0 && !q.shutdown {
		q.available.Wait()
	}
	j, ok = q.tasks.pop()
	if !ok {
		return j, false
	}
	q.running++
	q.metrics.taskClaimed()
	return j, true
}

// release marks a claimed task as done.
func (q *queueCore[R]) release() {
	q.mu.Lock()
	q.running--
	if q.running == 0 && q.tasks.len() == 0 {
		q.idle.Broadcast()
	}
	q.mu.Unlock()
}

// waitIdle blocks until the queue is empty and no task is running.
func (q *queueCore[R]) waitIdle() {
	q.mu.Lock()
	for q.tasks.len() > 0 || q.running > 0 {
		q.idle.Wait()
	}
	q.mu.Unlock()
}

// requestShutdown sets the shutdown flag and wakes every worker. It
// reports whether this call was the one that set the flag.
func (q *queueCore[R]) requestShutdown() bool {
	q.mu.Lock()
	first := !q.shutdown
	q.shutdown = true
	q.mu.Unlock()

	q.available.Broadcast()
	return first
}

func (q *queueCore[R]) isShutdown() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shutdown
}

func (q *queueCore[R]) recordResult(index int64, value R) {
	q.completed.Add(1)
	if q.void {
		return
	}
	q.resultsMu.Lock()
	q.results = append(q.results, Result[R]{Index: index, Value: value})
	q.resultsMu.Unlock()
}

func (q *queueCore[R]) recordFault(index int64, err error) {
	q.faulted.Add(1)
	q.faultsMu.Lock()
	q.faults = append(q.faults, Fault{Index: index, Err: err})
	q.faultsMu.Unlock()
}

func (q *queueCore[R]) setState(worker int, s WorkerState) {
	q.states[worker].Store(int32(s))
}

func (q *queueCore[R]) stats() Stats {
	q.mu.Lock()
	s := Stats{
		Workers:   len(q.states),
		Queued:    q.tasks.len(),
		Running:   q.running,
		Submitted: q.next,
	}
	q.mu.Unlock()

	s.Completed = q.completed.Load()
	s.Faulted = q.faulted.Load()
	return s
}
