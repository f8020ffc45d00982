//go:build linux

package pool

import (
	"runtime"
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

func threadAffinity(t *testing.T) unix.CPUSet {
	t.Helper()
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		t.Skipf("affinity query unavailable: %v", err)
	}
	return set
}

func TestWithCPUAffinity_ThreadsUnpinnedAfterShutdown(t *testing.T) {
	runtime.LockOSThread()
	want := threadAffinity(t)
	runtime.UnlockOSThread()

	q, _ := New[int](runtime.NumCPU()+1, WithCPUAffinity())
	for i := range 100 {
		q.Push(func() (int, error) { return i, nil })
	}
	q.Shutdown()

	// Sample every thread the scheduler hands out afterwards; none of them
	// may still carry a worker's single-core mask.
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		bad int
	)
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()

			var got unix.CPUSet
			if err := unix.SchedGetaffinity(0, &got); err != nil {
				return
			}
			if got != want {
				mu.Lock()
				bad++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if bad > 0 {
		t.Errorf("%d goroutines ran on threads whose affinity differs from the process mask", bad)
	}
}
