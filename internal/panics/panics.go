// Package panics converts recovered panic values into errors that keep the
// stack of the goroutine that panicked.
package panics

import (
	"fmt"
	"runtime/debug"
)

// Error is a recovered panic.
type Error struct {
	// Value is the argument originally passed to panic.
	Value any
	// Stack is the stack trace of the panicking goroutine.
	Stack []byte
}

// Wrap must be called from the deferred function that recovered p.
// It returns nil when p is nil.
func Wrap(p any) *Error {
	if p == nil {
		return nil
	}
	if e, ok := p.(*Error); ok {
		return e
	}
	return &Error{Value: p, Stack: debug.Stack()}
}

func (e *Error) Error() string {
	return fmt.Sprintf("panic: %v\nstack trace:\n%s", e.Value, e.Stack)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *Error) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
