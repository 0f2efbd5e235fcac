// Package transform implements the separable 8x8 forward/inverse DCT and
// the fixed zig-zag scan order, plus DC/AC split and merge. Grounded on the
// per-block transform-and-write-back loop in
// cocosip-go-dicom-codec's jpeg/baseline encoder (common.DCT over
// raster-order 8x8 blocks, with zig-zag reorder on the way out), narrowed
// here to the fixed 8x8-only block size this codec specifies.
package transform

import "math"

// BlockSize is the side length of a transform block.
const BlockSize = 8

// BlockLen is the number of samples in a block.
const BlockLen = BlockSize * BlockSize

var cosTable [BlockSize][BlockSize]float64 // cosTable[x][u]
var scale1D [BlockSize]float64

func init() {
	for x := 0; x < BlockSize; x++ {
		for u := 0; u < BlockSize; u++ {
			cosTable[x][u] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
	norm := math.Sqrt(2.0 / BlockSize)
	for u := 0; u < BlockSize; u++ {
		s := norm
		if u == 0 {
			s *= 1 / math.Sqrt2
		}
		scale1D[u] = s
	}
}

// dct1D applies a forward type-II DCT to an 8-sample vector.
func dct1D(in [BlockSize]float64) [BlockSize]float64 {
	var out [BlockSize]float64
	for u := 0; u < BlockSize; u++ {
		var sum float64
		for x := 0; x < BlockSize; x++ {
			sum += in[x] * cosTable[x][u]
		}
		out[u] = sum * scale1D[u]
	}
	return out
}

// idct1D applies an inverse type-II (i.e. type-III) DCT to an 8-coefficient
// vector.
func idct1D(in [BlockSize]float64) [BlockSize]float64 {
	var out [BlockSize]float64
	for x := 0; x < BlockSize; x++ {
		var sum float64
		for u := 0; u < BlockSize; u++ {
			sum += in[u] * scale1D[u] * cosTable[x][u]
		}
		out[x] = sum
	}
	return out
}

// ForwardDCT applies the separable 8x8 forward DCT to block (row-major
// spatial order in, row-major frequency order out).
func ForwardDCT(block *[BlockLen]float64) {
	var rows [BlockSize][BlockSize]float64
	for y := 0; y < BlockSize; y++ {
		var row [BlockSize]float64
		for x := 0; x < BlockSize; x++ {
			row[x] = block[y*BlockSize+x]
		}
		rows[y] = dct1D(row)
	}
	for x := 0; x < BlockSize; x++ {
		var col [BlockSize]float64
		for y := 0; y < BlockSize; y++ {
			col[y] = rows[y][x]
		}
		col = dct1D(col)
		for y := 0; y < BlockSize; y++ {
			block[y*BlockSize+x] = col[y]
		}
	}
}

// InverseDCT applies the separable 8x8 inverse DCT to block (row-major
// frequency order in, row-major spatial order out).
func InverseDCT(block *[BlockLen]float64) {
	var cols [BlockSize][BlockSize]float64
	for x := 0; x < BlockSize; x++ {
		var col [BlockSize]float64
		for y := 0; y < BlockSize; y++ {
			col[y] = block[y*BlockSize+x]
		}
		cols[x] = idct1D(col)
	}
	for y := 0; y < BlockSize; y++ {
		var row [BlockSize]float64
		for x := 0; x < BlockSize; x++ {
			row[x] = cols[x][y]
		}
		row = idct1D(row)
		for x := 0; x < BlockSize; x++ {
			block[y*BlockSize+x] = row[x]
		}
	}
}
