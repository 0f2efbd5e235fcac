package quant

import (
	"math"

	"github.com/mewkiz/jxl/internal/transform"
)

// BuildAdaptiveMap computes one scale per 8x8 block from its AC-energy
// RMS, blended by strength and re-normalized so the mean scale is 1.0.
// acBlocks holds, for each block, the 63 AC coefficients in zig-zag order
// (index 0 of each block in the source stream is DC and must be excluded
// before calling this).
func BuildAdaptiveMap(acBlocks [][transform.BlockLen - 1]float64, strength float64) []float64 {
	n := len(acBlocks)
	if n == 0 {
		return nil
	}
	rms := make([]float64, n)
	var sumRMS float64
	for b, ac := range acBlocks {
		var sumSq float64
		for _, v := range ac {
			sumSq += v * v
		}
		rms[b] = math.Sqrt(sumSq / float64(len(ac)))
		sumRMS += rms[b]
	}
	meanRMS := sumRMS / float64(n)
	if meanRMS == 0 {
		meanRMS = 1
	}

	scales := make([]float64, n)
	var sumScale float64
	for b := range scales {
		rel := rms[b] / meanRMS
		var relInvSqrt float64
		if rel > 0 {
			relInvSqrt = 1 / math.Sqrt(rel)
		} else {
			relInvSqrt = math.Inf(1)
		}
		s := 1 + strength*(relInvSqrt-1)
		scales[b] = clampFloat(s, 0.5, 2.0)
		sumScale += scales[b]
	}

	meanScale := sumScale / float64(n)
	if meanScale == 0 {
		meanScale = 1
	}
	for b := range scales {
		scales[b] = clampFloat(scales[b]/meanScale, 0.5, 2.0)
	}
	return scales
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EncodeScaleMap packs a slice of per-block scales in [0.5,2.0] into bytes
// for transmission: byte = clamp(round((scale-0.5)*170), 0, 255).
func EncodeScaleMap(scales []float64) []byte {
	out := make([]byte, len(scales))
	for i, s := range scales {
		v := math.Round((s - 0.5) * 170)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out[i] = byte(v)
	}
	return out
}

// DecodeScaleMap recovers per-block scales from their byte encoding:
// scale = clamp(byte/170 + 0.5, 0.5, 2.0).
func DecodeScaleMap(packed []byte) []float64 {
	out := make([]float64, len(packed))
	for i, b := range packed {
		out[i] = clampFloat(float64(b)/170+0.5, 0.5, 2.0)
	}
	return out
}
