//go:build darwin

package cpu

import "runtime"

// Parallelism returns the logical CPU count; macOS has no affinity mask.
func Parallelism() int {
	return fallbackParallelism()
}

// PinWorker locks the goroutine to an OS thread.
// CPU pinning is not available on macOS, so no error is ever returned.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}, nil
}
