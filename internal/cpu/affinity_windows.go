//go:build windows

package cpu

import (
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	kernel32              = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
)

// Parallelism returns the logical CPU count.
func Parallelism() int {
	return fallbackParallelism()
}

// pinToCore pins the current OS thread to a specific CPU core and returns
// the thread's previous affinity mask.
// Must be called after runtime.LockOSThread().
func pinToCore(cpuID int) (uintptr, error) {
	numCPU := runtime.NumCPU()
	if cpuID < 0 || cpuID >= numCPU {
		cpuID = ((cpuID % numCPU) + numCPU) % numCPU
	}

	// Bit N = CPU N.
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if prevMask == 0 {
		return 0, err
	}
	return prevMask, nil
}

// PinWorker locks the goroutine to an OS thread and pins it to core
// workerID mod NumCPU. The returned cleanup restores the previous mask
// before unlocking and must be deferred. If the mask cannot be restored
// the thread stays locked and the runtime discards it with the goroutine.
func PinWorker(workerID int) (func(), error) {
	runtime.LockOSThread()
	prevMask, err := pinToCore(workerID)
	if err != nil {
		return runtime.UnlockOSThread, err
	}

	return func() {
		restored, _, _ := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), prevMask)
		if restored == 0 {
			return
		}
		runtime.UnlockOSThread()
	}, nil
}
