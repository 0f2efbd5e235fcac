package jxl

import "testing"

func TestResidualRoundTrip(t *testing.T) {
	w, h := 5, 4
	plane := []int32{
		10, 12, 11, 9, 8,
		11, 13, 12, 10, 9,
		9, 11, 14, 13, 12,
		8, 10, 12, 15, 14,
	}
	residual := residualEncode(plane, w, h)
	got := residualDecode(residual, w, h)
	for i := range plane {
		if got[i] != plane[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], plane[i])
		}
	}
}

func TestResidualConstantPlaneIsAllZero(t *testing.T) {
	w, h := 4, 4
	plane := make([]int32, w*h)
	for i := range plane {
		plane[i] = 7
	}
	residual := residualEncode(plane, w, h)
	for i, r := range residual {
		if i == 0 {
			// First sample has no causal neighbors, predicts 0.
			if r != 7 {
				t.Errorf("first residual = %d, want 7", r)
			}
			continue
		}
		if r != 0 {
			t.Errorf("index %d: residual = %d, want 0 for a constant plane", i, r)
		}
	}
}
