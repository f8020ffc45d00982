//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// Parallelism returns the logical CPU count.
func Parallelism() int {
	return fallbackParallelism()
}

// PinWorker only locks the goroutine to its OS thread on this platform.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()

	return func() {
		runtime.UnlockOSThread()
	}, nil
}
