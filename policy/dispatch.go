package policy

import (
	"context"
	"log/slog"
	"os"
)

// Cases holds one implementation branch per strategy. ParallelVector may be
// nil, in which case the Parallel branch serves ParVec as well.
type Cases[R any] struct {
	Sequential     func() R
	Parallel       func() R
	ParallelVector func() R
}

// exit terminates the process; replaced only by tests in this package.
var exit = os.Exit

// Dispatch invokes exactly the branch of c matching p and returns its
// result.
//
// A discriminant outside the closed set means memory was corrupted or the
// type was forged; the process is terminated rather than allowed to
// continue with an undefined strategy.
func Dispatch[R any](p Policy, c Cases[R]) R {
	switch p.kind {
	case sequential:
		return c.Sequential()
	case parallel:
		return c.Parallel()
	case parallelVector:
		if c.ParallelVector != nil {
			return c.ParallelVector()
		}
		return c.Parallel()
	}

	slog.Default().LogAttrs(context.Background(), slog.LevelError,
		"unrecognised execution policy discriminant",
		slog.Int("kind", int(p.kind)),
	)
	exit(2)

	var zero R
	return zero
}
