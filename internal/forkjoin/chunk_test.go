package forkjoin

import "testing"

func TestSplit_Coverage(t *testing.T) {
	for _, w := range []int{1, 2, 3, 4, 7, 16} {
		for _, n := range []int{0, 1, w - 1, w, w + 1, 4 * w, 4*w + 1, 1000, 1003} {
			if n < 0 {
				continue
			}
			chunks := Split(n, w)
			if len(chunks) != w {
				t.Fatalf("Split(%d, %d) returned %d chunks", n, w, len(chunks))
			}

			next := 0
			for i, c := range chunks {
				if c.Start != next {
					t.Fatalf("Split(%d, %d): chunk %d starts at %d, want %d", n, w, i, c.Start, next)
				}
				if c.End < c.Start {
					t.Fatalf("Split(%d, %d): chunk %d is inverted: %+v", n, w, i, c)
				}
				next = c.End
			}
			if next != n {
				t.Errorf("Split(%d, %d) covers [0, %d), want [0, %d)", n, w, next, n)
			}
		}
	}
}

func TestSplit_RemainderGoesToLastChunk(t *testing.T) {
	chunks := Split(10, 4)
	want := []Chunk{{0, 2}, {2, 4}, {4, 6}, {6, 10}}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
	if chunks[3].Len() != 4 {
		t.Errorf("last chunk length = %d, want 4", chunks[3].Len())
	}
}

func TestSplit_FewerIndicesThanChunks(t *testing.T) {
	chunks := Split(3, 8)
	for i, c := range chunks[:7] {
		if !c.Empty() {
			t.Errorf("chunk %d = %+v, want empty", i, c)
		}
	}
	if chunks[7] != (Chunk{0, 3}) {
		t.Errorf("last chunk = %+v, want {0 3}", chunks[7])
	}
}

func TestSplit_PanicsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		n, w int
	}{
		{name: "negative length", n: -1, w: 2},
		{name: "zero chunks", n: 5, w: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			Split(tt.n, tt.w)
		})
	}
}

func TestWorkers(t *testing.T) {
	w := Workers()
	if w < defaultWorkers || w%2 != 0 {
		t.Errorf("Workers() = %d, want an even number >= %d", w, defaultWorkers)
	}
}

func TestFlag(t *testing.T) {
	var f Flag
	if f.Stopped() {
		t.Fatal("new flag should not be stopped")
	}
	f.Stop()
	f.Stop()
	if !f.Stopped() {
		t.Error("flag should be stopped")
	}
}
