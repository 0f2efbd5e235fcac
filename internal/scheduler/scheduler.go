// Package scheduler tiles an image into DC groups (2048x2048 pixels) and
// AC groups (256x256 pixels) and drives per-group work in parallel. The
// only cross-group sharing is read-only (quantization tables, color
// matrices, metadata); within a group, work is single-threaded and fully
// synchronous. Grounded on the worker-pool-with-semaphore pattern in
// ha1tch/unz's pkg/ans CompressParallel/DecompressParallel
// (sync.WaitGroup plus a buffered channel semaphore sized to
// runtime.GOMAXPROCS) and on the same combinator used by deepteams/webp's
// lossless encoder predictor search.
package scheduler

import (
	"runtime"
	"sync"
)

// ACGroupSize is the fixed AC group side length in pixels.
const ACGroupSize = 256

// DCGroupSize is the fixed DC group side length in pixels.
const DCGroupSize = 2048

// Group is a rectangular tile at a fixed grid origin.
type Group struct {
	// Index is the group's raster order index (row-major by origin).
	Index int
	// X, Y are the pixel-space origin of the group.
	X, Y int
	// W, H are the group's pixel dimensions; the last row/column of
	// groups may be smaller than the nominal group size.
	W, H int
}

// TileGroups partitions a w x h image into groups of the given nominal
// size, raster order by origin, with the last row/column possibly smaller.
func TileGroups(w, h, size int) []Group {
	var groups []Group
	idx := 0
	for y := 0; y < h; y += size {
		gh := size
		if y+gh > h {
			gh = h - y
		}
		for x := 0; x < w; x += size {
			gw := size
			if x+gw > w {
				gw = w - x
			}
			groups = append(groups, Group{Index: idx, X: x, Y: y, W: gw, H: gh})
			idx++
		}
	}
	return groups
}

// ACGroups tiles an image into 256x256 AC groups.
func ACGroups(w, h int) []Group { return TileGroups(w, h, ACGroupSize) }

// DCGroups tiles an image into 2048x2048 DC groups, a coarser partition
// used only when a separate DC pass is emitted.
func DCGroups(w, h int) []Group { return TileGroups(w, h, DCGroupSize) }

// Run executes fn for every group in groups, one goroutine per group, with
// a semaphore limiting the calls running at once to GOMAXPROCS and a
// WaitGroup waiting for all of them: results are written back
// independently per group (fn is responsible for writing only to its own
// group's output), so there is no shared mutable state to synchronize
// beyond completion. Once every call has finished, Run returns the error
// of the lowest-index group that failed, if any; it
// does not cancel in-flight work on error, since the core's stages (DCT,
// quantization, zig-zag, entropy coding) are non-blocking and safe to let
// run to completion.
func Run(groups []Group, fn func(g Group) error) error {
	workers := runtime.GOMAXPROCS(0)
	if workers > len(groups) && len(groups) > 0 {
		workers = len(groups)
	}
	if workers < 1 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	errs := make([]error, len(groups))

	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(i int, g Group) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			errs[i] = fn(g)
		}(i, g)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// AggregateDC maps each 256x256 AC group to the DC group that owns it
// (the DC group whose pixel-space rectangle contains the AC group's
// origin), so a separate DC pass can aggregate the DC coefficients of its
// constituent AC groups.
func AggregateDC(acGroups []Group, dcGroups []Group) map[int][]int {
	owner := make(map[int][]int, len(dcGroups))
	for _, dc := range dcGroups {
		owner[dc.Index] = nil
	}
	dcIndexAt := func(x, y int) int {
		for _, dc := range dcGroups {
			if x >= dc.X && x < dc.X+dc.W && y >= dc.Y && y < dc.Y+dc.H {
				return dc.Index
			}
		}
		return -1
	}
	for _, ac := range acGroups {
		idx := dcIndexAt(ac.X, ac.Y)
		if idx >= 0 {
			owner[idx] = append(owner[idx], ac.Index)
		}
	}
	return owner
}
