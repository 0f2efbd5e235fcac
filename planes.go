package jxl

import (
	"github.com/mewkiz/jxl/internal/pool"
	"github.com/mewkiz/jxl/internal/scheduler"
)

// extractSubPlaneF64 copies the rectangle g out of a full w x h float64
// plane into a pooled g.W*g.H buffer. The caller releases the buffer back
// to pl once done with it.
func extractSubPlaneF64(plane []float64, w int, g scheduler.Group, pl *pool.Pool) []float64 {
	sub := pl.AcquireChannelF64(g.W * g.H)
	for y := 0; y < g.H; y++ {
		src := (g.Y+y)*w + g.X
		copy(sub[y*g.W:(y+1)*g.W], plane[src:src+g.W])
	}
	return sub
}

// writeSubPlaneF64 writes a g.W*g.H buffer back into its rectangle of a
// full w x h float64 plane.
func writeSubPlaneF64(plane []float64, w int, g scheduler.Group, sub []float64) {
	for y := 0; y < g.H; y++ {
		dst := (g.Y+y)*w + g.X
		copy(plane[dst:dst+g.W], sub[y*g.W:(y+1)*g.W])
	}
}

// extractSubPlaneI32 copies the rectangle g out of a full w x h int32
// plane into a pooled g.W*g.H buffer. The caller releases the buffer back
// to pl once done with it.
func extractSubPlaneI32(plane []int32, w int, g scheduler.Group, pl *pool.Pool) []int32 {
	sub := pl.AcquireChannelI32(g.W * g.H)
	for y := 0; y < g.H; y++ {
		src := (g.Y+y)*w + g.X
		copy(sub[y*g.W:(y+1)*g.W], plane[src:src+g.W])
	}
	return sub
}

// writeSubPlaneI32 writes a g.W*g.H buffer back into its rectangle of a
// full w x h int32 plane.
func writeSubPlaneI32(plane []int32, w int, g scheduler.Group, sub []int32) {
	for y := 0; y < g.H; y++ {
		dst := (g.Y+y)*w + g.X
		copy(plane[dst:dst+g.W], sub[y*g.W:(y+1)*g.W])
	}
}
