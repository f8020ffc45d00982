// Package policy defines the closed set of execution strategies accepted by
// the algorithm library and the dispatcher that selects an implementation
// branch for a strategy.
//
// The three strategies are available as package-level values (Seq, Par and
// ParVec) for call sites that fix the strategy in code, and can be decoded
// from configuration with Parse or through the encoding.TextUnmarshaler
// implementation for call sites that pick it at runtime:
//
//	p, err := policy.Parse("par")
//	if err != nil {
//	    return err
//	}
//	found := algo.AnyOf(p, ranges.Slice(xs), isNegative)
package policy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned when a policy name cannot be decoded.
var ErrUnknownPolicy = errors.New("unknown execution policy")

type kind uint8

const (
	sequential kind = iota
	parallel
	parallelVector
)

// Policy is an execution strategy. The zero value is the sequential
// strategy; no other values can be constructed outside this package, so a
// Policy always denotes exactly one of Seq, Par or ParVec.
type Policy struct {
	kind kind
}

var (
	// Seq runs an algorithm on the calling goroutine.
	Seq = Policy{kind: sequential}

	// Par splits positional ranges into chunks processed concurrently.
	Par = Policy{kind: parallel}

	// ParVec is reserved for a vectorised fast path. It currently executes
	// through the same fork-join path as Par and produces identical results.
	ParVec = Policy{kind: parallelVector}
)

// All returns the three strategies in declaration order.
func All() []Policy {
	return []Policy{Seq, Par, ParVec}
}

// IsParallel reports whether p may use the fork-join engine.
func (p Policy) IsParallel() bool {
	return p.kind == parallel || p.kind == parallelVector
}

// String returns the canonical name of the strategy.
func (p Policy) String() string {
	switch p.kind {
	case sequential:
		return "seq"
	case parallel:
		return "par"
	case parallelVector:
		return "par_vec"
	}
	return fmt.Sprintf("policy(%d)", p.kind)
}

// Parse decodes a strategy name. Accepted names, case-insensitive:
// "seq"/"sequential", "par"/"parallel", "par_vec"/"parallel_vector"/"vec".
func Parse(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seq", "sequential":
		return Seq, nil
	case "par", "parallel":
		return Par, nil
	case "par_vec", "par-vec", "parallel_vector", "parallel-vector", "vec":
		return ParVec, nil
	}
	return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Set implements the flag value interface used by flag and pflag.
func (p *Policy) Set(value string) error {
	return p.UnmarshalText([]byte(value))
}

// Type names the flag value type for pflag help output.
func (p *Policy) Type() string {
	return "policy"
}
