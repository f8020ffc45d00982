//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Parallelism returns the number of CPUs in the calling thread's affinity
// mask. Containers and taskset restrictions are therefore honoured, unlike
// a plain core count. Returns 0 when nothing can be detected.
func Parallelism() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err == nil {
		if n := mask.Count(); n > 0 {
			return n
		}
	}
	return fallbackParallelism()
}

// pinToCore pins the current OS thread to a single CPU.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) error {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	return unix.SchedSetaffinity(0, &mask) // 0 = current thread
}

// PinWorker locks the calling goroutine to its OS thread and pins that
// thread to core workerID mod NumCPU. The returned cleanup restores the
// thread's previous affinity mask before unlocking it and must be deferred
// by the worker. When the previous mask cannot be read or restored the
// thread is left locked, so the runtime discards it once the goroutine
// exits instead of reusing a pinned thread.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()

	var saved unix.CPUSet
	if err := unix.SchedGetaffinity(0, &saved); err != nil {
		return func() {}, err
	}
	if err := pinToCore(workerID); err != nil {
		return runtime.UnlockOSThread, err
	}

	return func() {
		if err := unix.SchedSetaffinity(0, &saved); err != nil {
			return
		}
		runtime.UnlockOSThread()
	}, nil
}
