package jxl

import (
	"math"
	"testing"

	"github.com/mewkiz/jxl/internal/quant"
	"github.com/mewkiz/jxl/internal/transform"
)

func TestForwardInverseQuantizeGroupShapes(t *testing.T) {
	w, h := 16, 16
	sub := make([]float64, w*h)
	for i := range sub {
		sub[i] = 0.5
	}
	matrices := quant.BuildMatrices(90)
	dcDiff, ac, scaleMap := forwardQuantizeGroup(sub, w, h, &matrices[1], 0.3)

	nb := transform.NumBlocks(w, h)
	if len(dcDiff) != nb {
		t.Fatalf("len(dcDiff) = %d, want %d", len(dcDiff), nb)
	}
	if len(ac) != nb*(transform.BlockLen-1) {
		t.Fatalf("len(ac) = %d, want %d", len(ac), nb*(transform.BlockLen-1))
	}
	if len(scaleMap) != nb {
		t.Fatalf("len(scaleMap) = %d, want %d", len(scaleMap), nb)
	}

	out := inverseDequantizeGroup(dcDiff, ac, scaleMap, w, h, &matrices[1])
	if len(out) != w*h {
		t.Fatalf("len(out) = %d, want %d", len(out), w*h)
	}

	// A flat plane at high quality should reconstruct close to its input.
	var maxErr float64
	for i, v := range out {
		if e := math.Abs(v - sub[i]); e > maxErr {
			maxErr = e
		}
	}
	if maxErr > 0.05 {
		t.Errorf("max reconstruction error = %v, want <= 0.05 for a flat plane", maxErr)
	}
}
