package pool

import "fmt"

// Task is a unit of work submitted to a WorkQueue. A task fails by
// returning a non-nil error or by panicking.
type Task[R any] func() (R, error)

// Thunk adapts a function without a result to a Task for a pool built
// with NewVoid.
func Thunk(fn func() error) Task[struct{}] {
	return func() (struct{}, error) {
		return struct{}{}, fn()
	}
}

// Result is the value produced by a successful task, tagged with the
// submission index Push returned for it.
type Result[R any] struct {
	Index int64
	Value R
}

// WorkerState is the position of a worker in its lifecycle.
//
//	Idle -> Running -> Idle -> ... -> Exited
type WorkerState int32

const (
	// Idle workers are blocked waiting for a task.
	Idle WorkerState = iota
	// Running workers are executing a task.
	Running
	// Exited workers observed shutdown with an empty queue and returned.
	Exited
)

func (s WorkerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("WorkerState(%d)", int32(s))
	}
}

// Stats is a point-in-time snapshot of a WorkQueue.
type Stats struct {
	Workers   int
	Queued    int
	Running   int
	Submitted int64
	Completed int64
	Faulted   int64
}
