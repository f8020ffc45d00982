package algo

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/utkarsh5026/parex/internal/forkjoin"
	"github.com/utkarsh5026/parex/internal/panics"
	"github.com/utkarsh5026/parex/policy"
	"github.com/utkarsh5026/parex/ranges"
)

// testLengths returns the lengths that exercise chunk boundaries for w
// chunks: empty, single, one short of, exactly, one past, and multiples.
func testLengths(w int) []int {
	return []int{0, 1, w - 1, w, w + 1, 4 * w, 4*w + 1}
}

// widths are the fork-join widths every parity test runs under.
func widths() []int {
	return []int{3, 8, forkjoin.Workers()}
}

func rangeCases(xs []int) []struct {
	name string
	r    ranges.Range[int]
} {
	return []struct {
		name string
		r    ranges.Range[int]
	}{
		{name: "positional", r: ranges.Slice(xs)},
		{name: "sequential-only", r: ranges.FromSeq(slices.Values(xs))},
	}
}

func TestPredicates_MatchSequential(t *testing.T) {
	preds := map[string]func(int) bool{
		"even":     func(x int) bool { return x%2 == 0 },
		"negative": func(x int) bool { return x < 0 },
		"last":     func(x int) bool { return x == 999_999 },
		"always":   func(int) bool { return true },
	}

	for _, w := range widths() {
		for _, n := range testLengths(w) {
			xs := make([]int, n)
			for i := range xs {
				xs[i] = i
			}
			if n > 0 {
				// Put a distinctive element at the very end, inside the
				// remainder of an uneven split.
				xs[n-1] = 999_999
			}

			for _, rc := range rangeCases(xs) {
				for predName, pred := range preds {
					wantAny := AnyOf(policy.Seq, rc.r, pred)
					wantAll := AllOf(policy.Seq, rc.r, pred)
					wantNone := NoneOf(policy.Seq, rc.r, pred)

					for _, p := range []policy.Policy{policy.Par, policy.ParVec} {
						opt := WithWorkers(w)
						if got := AnyOf(p, rc.r, pred, opt); got != wantAny {
							t.Errorf("w=%d n=%d %s %s AnyOf(%v) = %v, want %v", w, n, rc.name, predName, p, got, wantAny)
						}
						if got := AllOf(p, rc.r, pred, opt); got != wantAll {
							t.Errorf("w=%d n=%d %s %s AllOf(%v) = %v, want %v", w, n, rc.name, predName, p, got, wantAll)
						}
						if got := NoneOf(p, rc.r, pred, opt); got != wantNone {
							t.Errorf("w=%d n=%d %s %s NoneOf(%v) = %v, want %v", w, n, rc.name, predName, p, got, wantNone)
						}
					}
				}
			}
		}
	}
}

func TestPredicates_EmptyRange(t *testing.T) {
	empty := ranges.Slice[int](nil)
	never := func(int) bool { t.Error("predicate called on empty range"); return false }

	for _, p := range policy.All() {
		t.Run(p.String(), func(t *testing.T) {
			if AnyOf(p, empty, never) {
				t.Error("AnyOf on empty range should be false")
			}
			if !AllOf(p, empty, never) {
				t.Error("AllOf on empty range should be true")
			}
			if !NoneOf(p, empty, never) {
				t.Error("NoneOf on empty range should be true")
			}
		})
	}
}

func TestCount_MatchSequential(t *testing.T) {
	for _, w := range widths() {
		for _, n := range testLengths(w) {
			xs := make([]int, n)
			for i := range xs {
				xs[i] = i % 5
			}
			for _, rc := range rangeCases(xs) {
				wantCount := Count(policy.Seq, rc.r, 3)
				wantIf := CountIf(policy.Seq, rc.r, func(x int) bool { return x > 1 })

				for _, p := range []policy.Policy{policy.Par, policy.ParVec} {
					if got := Count(p, rc.r, 3, WithWorkers(w)); got != wantCount {
						t.Errorf("w=%d n=%d %s Count(%v) = %d, want %d", w, n, rc.name, p, got, wantCount)
					}
					got := CountIf(p, rc.r, func(x int) bool { return x > 1 }, WithWorkers(w))
					if got != wantIf {
						t.Errorf("w=%d n=%d %s CountIf(%v) = %d, want %d", w, n, rc.name, p, got, wantIf)
					}
				}
			}
		}
	}
}

func TestEqual_MatchSequential(t *testing.T) {
	for _, w := range widths() {
		for _, n := range testLengths(w) {
			a := make([]int, n)
			for i := range a {
				a[i] = i * 7
			}

			variants := map[string][]int{
				"identical": slices.Clone(a),
				"shorter":   a[:max(n-1, 0)],
				"longer":    append(slices.Clone(a), 1),
			}
			if n > 0 {
				first := slices.Clone(a)
				first[0]++
				last := slices.Clone(a)
				last[n-1]++
				variants["first differs"] = first
				variants["last differs"] = last
			}

			for name, b := range variants {
				want := Equal(policy.Seq, ranges.Slice(a), ranges.Slice(b))
				if want != slices.Equal(a, b) {
					t.Fatalf("sequential Equal disagrees with slices.Equal for %s", name)
				}
				for _, p := range []policy.Policy{policy.Par, policy.ParVec} {
					got := Equal(p, ranges.Slice(a), ranges.Slice(b), WithWorkers(w))
					if got != want {
						t.Errorf("w=%d n=%d %s Equal(%v) = %v, want %v", w, n, name, p, got, want)
					}
					mixed := Equal(p, ranges.Slice(a), ranges.FromSeq(slices.Values(b)), WithWorkers(w))
					if mixed != want {
						t.Errorf("w=%d n=%d %s Equal(%v) with sequential-only b = %v, want %v", w, n, name, p, mixed, want)
					}
				}
			}
		}
	}
}

func TestEqualFunc_LengthMismatchSkipsComparison(t *testing.T) {
	var calls atomic.Int32
	eq := func(a int, b string) bool {
		calls.Add(1)
		return true
	}

	a := ranges.Iota(10)
	b := ranges.Slice([]string{"x", "y"})
	for _, p := range policy.All() {
		if EqualFunc(p, a, b, eq) {
			t.Errorf("%v: ranges of different length compared equal", p)
		}
	}
	if calls.Load() != 0 {
		t.Errorf("comparison called %d times", calls.Load())
	}
}

func TestEqualFunc_CustomComparison(t *testing.T) {
	words := ranges.Slice([]string{"a", "bb", "ccc", "dddd"})
	lengths := ranges.Slice([]int{1, 2, 3, 4})
	sameLen := func(s string, n int) bool { return len(s) == n }

	for _, p := range policy.All() {
		if !EqualFunc(p, words, lengths, sameLen, WithWorkers(3)) {
			t.Errorf("%v: expected equal under custom comparison", p)
		}
		if EqualFunc(p, words, ranges.Slice([]int{1, 2, 3, 5}), sameLen, WithWorkers(3)) {
			t.Errorf("%v: expected mismatch on the last element", p)
		}
	}
}

func TestEqual_BothSequentialOnly(t *testing.T) {
	a := ranges.FromSeq(slices.Values([]string{"p", "q", "r"}))
	b := ranges.Sequential[string](ranges.Slice([]string{"p", "q", "r"}))
	c := ranges.Sequential[string](ranges.Slice([]string{"p", "q", "s"}))
	for _, p := range policy.All() {
		if !Equal(p, a, b) {
			t.Errorf("%v: expected equal", p)
		}
		if Equal(p, a, c) {
			t.Errorf("%v: expected not equal", p)
		}
	}
}

func TestForEach_VisitsEveryIndexOnce(t *testing.T) {
	for _, w := range widths() {
		for _, n := range testLengths(w) {
			for _, p := range policy.All() {
				visits := make([]int32, n)
				ForEach(p, ranges.Iota(n), func(i int) {
					atomic.AddInt32(&visits[i], 1)
				}, WithWorkers(w))

				for i, v := range visits {
					if v != 1 {
						t.Fatalf("w=%d n=%d %v: index %d visited %d times", w, n, p, i, v)
					}
				}
			}
		}
	}
}

func TestForEach_AscendingWithinChunk(t *testing.T) {
	const n, w = 1000, 4
	var mu sync.Mutex
	perChunk := make(map[int][]int)
	chunks := forkjoin.Split(n, w)
	chunkOf := func(i int) int {
		for k, c := range chunks {
			if i >= c.Start && i < c.End {
				return k
			}
		}
		return -1
	}

	ForEach(policy.Par, ranges.Iota(n), func(i int) {
		mu.Lock()
		k := chunkOf(i)
		perChunk[k] = append(perChunk[k], i)
		mu.Unlock()
	}, WithWorkers(w))

	for k, seen := range perChunk {
		if !slices.IsSorted(seen) {
			t.Errorf("chunk %d visited out of order", k)
		}
	}
}

func TestForEach_SequentialOrder(t *testing.T) {
	var seen []int
	ForEach(policy.Seq, ranges.Iota(6), func(i int) { seen = append(seen, i) })
	if !slices.Equal(seen, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("got %v", seen)
	}
}

func TestAnyOf_ShortCircuits(t *testing.T) {
	const n = 2_000_000
	for _, p := range []policy.Policy{policy.Par, policy.ParVec} {
		var calls atomic.Int64
		found := AnyOf(p, ranges.Iota(n), func(x int) bool {
			calls.Add(1)
			return x == 0
		}, WithWorkers(8))
		if !found {
			t.Fatalf("%v: expected true", p)
		}
		if c := calls.Load(); c > n/2 {
			t.Errorf("%v: predicate ran %d times over %d elements", p, c, n)
		}
	}
}

func TestNonPositionalRangeRunsOnCaller(t *testing.T) {
	// A sequential-only range must not be split, so the predicate always
	// runs on a single goroutine in element order.
	var order []int
	CountIf(policy.Par, ranges.FromSeq(ranges.Iota(50).All()), func(x int) bool {
		order = append(order, x)
		return true
	}, WithWorkers(8))
	if !slices.IsSorted(order) || len(order) != 50 {
		t.Errorf("unexpected visit order %v", order)
	}
}

func TestScenario_HundredThousandIntegers(t *testing.T) {
	xs := ranges.Iota(100_000)
	even := func(x int) bool { return x%2 == 0 }

	for _, p := range policy.All() {
		t.Run(p.String(), func(t *testing.T) {
			if !AnyOf(p, xs, func(x int) bool { return x >= 0 }) {
				t.Error("any_of(x >= 0) should be true")
			}
			if !AllOf(p, xs, func(x int) bool { return x >= 0 }) {
				t.Error("all_of(x >= 0) should be true")
			}
			if !NoneOf(p, xs, func(x int) bool { return x < 0 }) {
				t.Error("none_of(x < 0) should be true")
			}
			if got := Count(p, xs, 5000); got != 1 {
				t.Errorf("count(5000) = %d, want 1", got)
			}
			if got := CountIf(p, xs, even); got != 50_000 {
				t.Errorf("count_if(even) = %d, want 50000", got)
			}
		})
	}
}

func TestPanicInPredicatePropagates(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{name: "fan out", workers: 4},
		{name: "single chunk", workers: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				p := recover()
				if p == nil {
					t.Fatal("expected panic")
				}
				if _, ok := p.(*panics.Error); !ok {
					t.Errorf("expected *panics.Error, got %T", p)
				}
			}()
			AnyOf(policy.Par, ranges.Iota(1000), func(x int) bool {
				if x == 900 {
					panic("bad element")
				}
				return false
			}, WithWorkers(tt.workers))
		})
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Count(policy.Par, ranges.Iota(100), 3, WithLogger(logger), WithWorkers(4))
	CountIf(policy.Par, ranges.FromSeq(ranges.Iota(10).All()), func(int) bool { return true }, WithLogger(logger))
	EqualFunc(policy.Seq, ranges.Iota(2), ranges.Iota(3), func(a, b int) bool { return true }, WithLogger(logger))

	out := buf.String()
	for _, want := range []string{
		"algorithm=count policy=par path=fork-join len=100 workers=4",
		"algorithm=count_if policy=par path=sequential",
		"algorithm=equal policy=seq path=length-mismatch",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestWithWorkers_IgnoresNonPositive(t *testing.T) {
	cfg := newCallConfig([]Option{WithWorkers(-1), WithWorkers(0)})
	if cfg.workers != 0 {
		t.Errorf("workers = %d, want default", cfg.workers)
	}
	if cfg.engine().Workers() != forkjoin.Workers() {
		t.Errorf("engine width = %d, want %d", cfg.engine().Workers(), forkjoin.Workers())
	}
}
