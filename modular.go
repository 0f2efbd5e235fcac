package jxl

import "github.com/mewkiz/jxl/internal/predictive"

// modularKind is the single predictor this codec's modular path uses.
// The spec leaves the richer per-block predictor selection as future
// work; Gradient (a MED/JPEG-LS-style predictor) is a reasonable
// universal default that needs no side channel to describe its choice.
const modularKind = predictive.Gradient

// residualEncode predicts every sample of a w x h plane (row-major) from
// its already-encoded Left/Top/TopLeft neighbors (zero at the image
// edges) and returns the prediction residuals.
func residualEncode(plane []int32, w, h int) []int32 {
	out := make([]int32, len(plane))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			n := causalNeighbors(plane, w, x, y)
			out[idx] = plane[idx] - predictive.Predict(modularKind, n)
		}
	}
	return out
}

// residualDecode inverts residualEncode.
func residualDecode(residual []int32, w, h int) []int32 {
	plane := make([]int32, len(residual))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			n := causalNeighbors(plane, w, x, y)
			plane[idx] = residual[idx] + predictive.Predict(modularKind, n)
		}
	}
	return plane
}

func causalNeighbors(plane []int32, w, x, y int) predictive.Neighbors {
	var n predictive.Neighbors
	idx := y*w + x
	if x > 0 {
		n.L = plane[idx-1]
	}
	if y > 0 {
		n.T = plane[idx-w]
	}
	if x > 0 && y > 0 {
		n.TL = plane[idx-w-1]
	}
	return n
}
