package dist

import "testing"

func TestNewDistributionClosure(t *testing.T) {
	cases := [][]uint64{
		{1},
		{1, 1},
		{100, 1, 1, 1},
		{1, 0, 1, 0, 1},
		{7, 13, 1000, 1, 2, 3},
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, freqs := range cases {
		d, err := NewDistribution(freqs)
		if err != nil {
			t.Fatalf("NewDistribution(%v): %v", freqs, err)
		}
		var sum uint32
		for i, f := range d.freq {
			sum += f
			if freqs[i] > 0 && f < 1 {
				t.Errorf("freqs=%v: symbol %d has freq %d, want >=1", freqs, i, f)
			}
		}
		if sum != M {
			t.Errorf("freqs=%v: sum=%d, want %d", freqs, sum, M)
		}
		var covered int
		counts := make([]int, len(freqs))
		for _, s := range d.reverse {
			counts[s]++
			covered++
		}
		if covered != M {
			t.Errorf("reverse table length mismatch")
		}
		for i, c := range counts {
			if uint32(c) != d.freq[i] {
				t.Errorf("symbol %d: reverse table has %d slots, want %d", i, c, d.freq[i])
			}
		}
	}
}

func TestNewDistributionEmpty(t *testing.T) {
	if _, err := NewDistribution(nil); err == nil {
		t.Fatal("expected error for empty table")
	}
	if _, err := NewDistribution([]uint64{0, 0}); err == nil {
		t.Fatal("expected error for all-zero table")
	}
}

func TestFoldUnfoldSigned(t *testing.T) {
	for v := int32(-1000); v <= 1000; v++ {
		s := FoldSigned(v)
		got := UnfoldSigned(s)
		if got != v {
			t.Fatalf("FoldSigned/UnfoldSigned(%d) round-trip got %d", v, got)
		}
	}
}

func TestBandForIndex(t *testing.T) {
	tests := []struct {
		idx  int
		want Band
	}{
		{0, BandDC},
		{1, BandLow}, {10, BandLow},
		{11, BandMid}, {30, BandMid},
		{31, BandHigh}, {63, BandHigh},
	}
	for _, tc := range tests {
		if got := BandForIndex(tc.idx); got != tc.want {
			t.Errorf("BandForIndex(%d) = %v, want %v", tc.idx, got, tc.want)
		}
	}
}

func TestHybridUintRoundTrip(t *testing.T) {
	samples := []uint32{0, 1, 2, 255, 256, 257, 511, 512, 1023, 1 << 20, 1<<31 - 1, 1 << 30}
	for _, v := range samples {
		token, n, raw := HybridEncode(v)
		if n != HybridRawBits(token) {
			t.Fatalf("v=%d: raw bit count mismatch", v)
		}
		got := HybridDecode(token, raw)
		if got != v {
			t.Errorf("HybridEncode/Decode(%d) round-trip got %d (token=%d n=%d raw=%d)", v, got, token, n, raw)
		}
	}
}
