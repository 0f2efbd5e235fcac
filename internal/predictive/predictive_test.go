package predictive

import "testing"

func TestPredictorsBasic(t *testing.T) {
	n := Neighbors{L: 10, T: 20, TL: 15}
	if got := Predict(Zero, n); got != 0 {
		t.Fatalf("Zero = %d", got)
	}
	if got := Predict(Left, n); got != 10 {
		t.Fatalf("Left = %d", got)
	}
	if got := Predict(Top, n); got != 20 {
		t.Fatalf("Top = %d", got)
	}
	if got := Predict(Average, n); got != 15 {
		t.Fatalf("Average = %d", got)
	}
	if got := Predict(Gradient, n); got != 15 {
		t.Fatalf("Gradient = %d, want 15", got)
	}
}

func TestPaethPicksClosest(t *testing.T) {
	// L=T=TL: all predictors agree; Paeth should return L.
	n := Neighbors{L: 5, T: 5, TL: 5}
	if got := Predict(Paeth, n); got != 5 {
		t.Fatalf("Paeth = %d, want 5", got)
	}
	// Classic PNG Paeth case: p = L+T-TL.
	n = Neighbors{L: 1, T: 2, TL: 1}
	if got := Predict(Paeth, n); got != 2 {
		t.Fatalf("Paeth = %d, want 2", got)
	}
}

func TestSelectPredictor(t *testing.T) {
	// L closer to TL than T is => pick L.
	n := Neighbors{L: 10, T: 100, TL: 9}
	if got := Predict(Select, n); got != 10 {
		t.Fatalf("Select = %d, want L=10", got)
	}
	// T closer => pick T.
	n = Neighbors{L: 100, T: 10, TL: 9}
	if got := Predict(Select, n); got != 10 {
		t.Fatalf("Select = %d, want T=10", got)
	}
	// Equidistant => average.
	n = Neighbors{L: 0, T: 10, TL: 5}
	if got := Predict(Select, n); got != 5 {
		t.Fatalf("Select = %d, want average=5", got)
	}
}

func TestYCoCgRReversible(t *testing.T) {
	for r := int32(-5); r <= 260; r += 17 {
		for g := int32(-5); g <= 260; g += 23 {
			for b := int32(-5); b <= 260; b += 29 {
				y, co, cg := ForwardYCoCgR(r, g, b)
				r2, g2, b2 := InverseYCoCgR(y, co, cg)
				if r2 != r || g2 != g || b2 != b {
					t.Fatalf("YCoCg-R round trip (%d,%d,%d) -> (%d,%d,%d) -> (%d,%d,%d)", r, g, b, y, co, cg, r2, g2, b2)
				}
			}
		}
	}
}

func TestPaletteBuildAndLookup(t *testing.T) {
	pixels := [][]int32{
		{1, 2, 3}, {4, 5, 6}, {1, 2, 3}, {7, 8, 9}, {4, 5, 6},
	}
	pal, indices, err := BuildPalette(pixels)
	if err != nil {
		t.Fatal(err)
	}
	if pal.Len() != 3 {
		t.Fatalf("palette has %d entries, want 3", pal.Len())
	}
	for i, idx := range indices {
		got, err := pal.Lookup(idx)
		if err != nil {
			t.Fatal(err)
		}
		for c := range got {
			if got[c] != pixels[i][c] {
				t.Fatalf("pixel %d: got %v, want %v", i, got, pixels[i])
			}
		}
	}
}

func TestPaletteOverflow(t *testing.T) {
	pixels := make([][]int32, MaxPaletteEntries+1)
	for i := range pixels {
		pixels[i] = []int32{int32(i)}
	}
	if _, _, err := BuildPalette(pixels); err == nil {
		t.Fatal("expected error for palette overflow")
	}
}
