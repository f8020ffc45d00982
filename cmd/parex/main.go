// Command parex drives the parex algorithms and work queue from the
// command line.
//
//	parex algo --policy seq --policy par --size 1000000
//	parex pool --workers 4 --metrics-addr :9090
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
