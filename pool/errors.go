package pool

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/parex/internal/panics"
)

var (
	// ErrInvalidWorkerCount is returned by New when the worker count is not positive.
	ErrInvalidWorkerCount = errors.New("pool: worker count must be positive")

	// ErrShutdown is returned by Push once Shutdown has been requested.
	ErrShutdown = errors.New("pool: shut down")

	// ErrNilTask is returned by Push for a nil task.
	ErrNilTask = errors.New("pool: nil task")

	// ErrShutdownTimeout is returned by ShutdownTimeout when the workers
	// did not exit in time.
	ErrShutdownTimeout = errors.New("pool: timed out waiting for workers to exit")
)

// PanicError is the error recorded for a task that panicked. It carries
// the recovered value and the stack of the panicking goroutine.
type PanicError = panics.Error

// Fault records a task that failed, either by returning an error or by
// panicking.
type Fault struct {
	// Index is the submission index returned by Push.
	Index int64
	Err   error
}

func (f Fault) Error() string {
	return fmt.Sprintf("task %d: %v", f.Index, f.Err)
}

func (f Fault) Unwrap() error {
	return f.Err
}
