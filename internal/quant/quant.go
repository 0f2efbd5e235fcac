// Package quant implements per-channel XYB quantization matrices and the
// adaptive per-block scale map. The quantize/dequantize shift-and-bias
// pattern is grounded on quantizeCoeffsGo/dequantCoeffsGo in
// deepteams/webp's internal/lossy encode_quant.go, adapted here from
// WebP's 4x4/QFIX=17 segment quantizer to this codec's 8x8 per-channel
// matrix scheme.
package quant

import (
	"math"

	"github.com/mewkiz/jxl/internal/transform"
	"github.com/mewkiz/jxl/jxlerr"
)

// Channel identifies one of the three XYB-derived coding channels.
type Channel int

// Channels used by the VarDCT quantizer.
const (
	ChannelX Channel = iota
	ChannelY
	ChannelBY
	numChannels
)

// NumChannels is the number of quantization channels.
const NumChannels = int(numChannels)

// baseTable holds the per-channel base quantization weights (a simple
// low-frequency-favoring ramp in zig-zag order); this codec does not claim
// bit-exact parity with any reference table, per spec non-goals.
var baseTable = [NumChannels][transform.BlockLen]float64{}

func init() {
	for c := 0; c < NumChannels; c++ {
		mul := 1.0 + float64(c)*0.5
		for i := 0; i < transform.BlockLen; i++ {
			baseTable[c][i] = mul * (1 + float64(i))
		}
	}
}

// Scale computes the quantization scale factor s(Q) for quality Q in
// [0,100]: 5000/max(Q,1) for Q<50, 200-2Q otherwise.
func Scale(q float32) float64 {
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	if q < 50 {
		return 5000 / math.Max(float64(q), 1)
	}
	return 200 - 2*float64(q)
}

// Matrix is a per-channel 64-entry quantization table.
type Matrix [transform.BlockLen]int

// BuildMatrices derives the three X/Y/B-Y quantization matrices from a
// single quality parameter: each entry is max(1, round(base[i]*s/100)),
// clipped to 255.
func BuildMatrices(quality float32) [NumChannels]Matrix {
	s := Scale(quality)
	var out [NumChannels]Matrix
	for c := 0; c < NumChannels; c++ {
		for i := 0; i < transform.BlockLen; i++ {
			v := math.Round(baseTable[c][i] * s / 100)
			if v < 1 {
				v = 1
			}
			if v > 255 {
				v = 255
			}
			out[c][i] = int(v)
		}
	}
	return out
}

// Quantize rounds coeff[i] / (matrix[i] * adaptiveScale) to a clamped
// signed 16-bit integer.
func Quantize(coeff *[transform.BlockLen]float64, m *Matrix, adaptiveScale float64) [transform.BlockLen]int16 {
	var out [transform.BlockLen]int16
	for i := 0; i < transform.BlockLen; i++ {
		v := math.Round(coeff[i] / (float64(m[i]) * adaptiveScale))
		out[i] = clampInt16(v)
	}
	return out
}

// Dequantize inverts Quantize: coeff[i] = q[i] * matrix[i] * adaptiveScale.
func Dequantize(q *[transform.BlockLen]int16, m *Matrix, adaptiveScale float64) [transform.BlockLen]float64 {
	var out [transform.BlockLen]float64
	for i := 0; i < transform.BlockLen; i++ {
		out[i] = float64(q[i]) * float64(m[i]) * adaptiveScale
	}
	return out
}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// ValidateScaleMap checks that a decoded adaptive scale map has the
// expected number of blocks.
func ValidateScaleMap(scaleMap []byte, numBlocks int) error {
	if len(scaleMap) != numBlocks {
		return jxlerr.New(jxlerr.InvalidParameter, "adaptive scale map has %d entries, want %d", len(scaleMap), numBlocks)
	}
	return nil
}
