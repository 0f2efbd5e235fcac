package jxl

import (
	"github.com/mewkiz/jxl/internal/framer"
	"github.com/mewkiz/jxl/internal/quant"
	"github.com/mewkiz/jxl/internal/transform"
)

// forwardQuantizeGroup runs the forward DCT, zig-zag scan, adaptive scale
// map, and quantization over every 8x8 block of a w x h group plane,
// returning the DC differentials, the concatenated 63-per-block AC
// values, and the packed adaptive scale map.
func forwardQuantizeGroup(sub []float64, w, h int, m *quant.Matrix, strength float64) (dcDiff, ac []int32, scaleMap []byte) {
	var zigzags [][transform.BlockLen]float64
	var acRaw [][transform.BlockLen - 1]float64

	transform.ChannelScan(sub, w, h, func(block *[transform.BlockLen]float64) {
		transform.ForwardDCT(block)
		zz := transform.Scan(block)
		zigzags = append(zigzags, zz)
		var raw [transform.BlockLen - 1]float64
		copy(raw[:], zz[1:])
		acRaw = append(acRaw, raw)
	})

	scales := quant.BuildAdaptiveMap(acRaw, strength)
	scaleMap = quant.EncodeScaleMap(scales)

	dc := make([]int32, len(zigzags))
	ac = make([]int32, 0, len(zigzags)*(transform.BlockLen-1))
	for b := range zigzags {
		q := quant.Quantize(&zigzags[b], m, scales[b])
		dc[b] = int32(q[0])
		for i := 1; i < transform.BlockLen; i++ {
			ac = append(ac, int32(q[i]))
		}
	}
	return framer.DiffEncodeDC(dc), ac, scaleMap
}

// inverseDequantizeGroup inverts forwardQuantizeGroup: given the decoded
// DC differentials, AC values, and packed scale map for a w x h group, it
// reconstructs the spatial-domain plane.
func inverseDequantizeGroup(dcDiff, ac []int32, scaleMap []byte, w, h int, m *quant.Matrix) []float64 {
	dc := framer.DiffDecodeDC(dcDiff)
	scales := quant.DecodeScaleMap(scaleMap)

	zigzags := make([][transform.BlockLen]float64, len(dc))
	for b := range dc {
		var q [transform.BlockLen]int16
		q[0] = int16(dc[b])
		for i := 0; i < transform.BlockLen-1; i++ {
			q[i+1] = int16(ac[b*(transform.BlockLen-1)+i])
		}
		zigzags[b] = quant.Dequantize(&q, m, scales[b])
	}

	out := make([]float64, w*h)
	blockIdx := 0
	transform.ChannelScan(out, w, h, func(block *[transform.BlockLen]float64) {
		*block = transform.Unscan(&zigzags[blockIdx])
		transform.InverseDCT(block)
		blockIdx++
	})
	return out
}
