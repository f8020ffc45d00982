// Package cpu answers the two hardware questions the rest of the module
// asks: how many CPUs the process may use, and how to pin a worker
// goroutine to one of them.
package cpu

import "runtime"

// fallbackParallelism is used by platforms without an affinity query.
func fallbackParallelism() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 0
}
