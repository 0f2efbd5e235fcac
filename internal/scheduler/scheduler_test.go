package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestTileGroupsCoversImageExactly(t *testing.T) {
	groups := TileGroups(600, 300, 256)
	if len(groups) != 3*2 {
		t.Fatalf("got %d groups, want 6", len(groups))
	}
	covered := make([]bool, 600*300)
	for _, g := range groups {
		for y := g.Y; y < g.Y+g.H; y++ {
			for x := g.X; x < g.X+g.W; x++ {
				idx := y*600 + x
				if covered[idx] {
					t.Fatalf("pixel (%d,%d) covered twice", x, y)
				}
				covered[idx] = true
			}
		}
	}
	for i, c := range covered {
		if !c {
			t.Fatalf("pixel index %d not covered", i)
		}
	}
}

func TestRunExecutesAllGroups(t *testing.T) {
	groups := TileGroups(1024, 1024, ACGroupSize)
	var count int64
	err := Run(groups, func(g Group) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if int(count) != len(groups) {
		t.Fatalf("ran %d groups, want %d", count, len(groups))
	}
}

func TestRunPropagatesError(t *testing.T) {
	groups := TileGroups(512, 512, ACGroupSize)
	wantErr := errors.New("boom")
	err := Run(groups, func(g Group) error {
		if g.Index == 1 {
			return wantErr
		}
		return nil
	})
	if err != wantErr {
		t.Fatalf("Run() error = %v, want %v", err, wantErr)
	}
}

func TestAggregateDC(t *testing.T) {
	dc := DCGroups(4096, 2048)
	ac := ACGroups(4096, 2048)
	owner := AggregateDC(ac, dc)
	var total int
	for _, acIdxs := range owner {
		total += len(acIdxs)
	}
	if total != len(ac) {
		t.Fatalf("aggregated %d AC groups, want %d", total, len(ac))
	}
}
