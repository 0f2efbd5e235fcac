package transform

// ZigZag lists spatial block positions (row*8+col) in order of
// non-decreasing frequency: DC first, then (0,1),(1,0),(2,0),(1,1),...
// ending at (7,7).
var ZigZag = [BlockLen]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// InverseZigZag is the inverse permutation: InverseZigZag[ZigZag[i]] == i.
var InverseZigZag [BlockLen]int

func init() {
	for i, pos := range ZigZag {
		InverseZigZag[pos] = i
	}
}

// Scan reorders a block from row-major spatial order to zig-zag frequency
// order.
func Scan(spatial *[BlockLen]float64) [BlockLen]float64 {
	var out [BlockLen]float64
	for i, pos := range ZigZag {
		out[i] = spatial[pos]
	}
	return out
}

// Unscan reorders a block from zig-zag frequency order back to row-major
// spatial order.
func Unscan(zigzag *[BlockLen]float64) [BlockLen]float64 {
	var out [BlockLen]float64
	for i, pos := range ZigZag {
		out[pos] = zigzag[i]
	}
	return out
}

// SplitDCAC splits a concatenation of per-block zig-zag 64-tuples into a
// DC array (one entry per block) and an AC array (63 entries per block).
func SplitDCAC(zigzagData []float64) (dc []float64, ac []float64) {
	n := len(zigzagData) / BlockLen
	dc = make([]float64, n)
	ac = make([]float64, n*(BlockLen-1))
	for b := 0; b < n; b++ {
		base := b * BlockLen
		dc[b] = zigzagData[base]
		copy(ac[b*(BlockLen-1):(b+1)*(BlockLen-1)], zigzagData[base+1:base+BlockLen])
	}
	return dc, ac
}

// MergeDCAC reconstructs a zig-zag tuple stream by interleaving DC[i]
// followed by the next 63 AC values, padding a short AC tail with zeros.
func MergeDCAC(dc, ac []float64) []float64 {
	out := make([]float64, len(dc)*BlockLen)
	for b := range dc {
		base := b * BlockLen
		out[base] = dc[b]
		acBase := b * (BlockLen - 1)
		for i := 0; i < BlockLen-1; i++ {
			if acBase+i < len(ac) {
				out[base+1+i] = ac[acBase+i]
			}
		}
	}
	return out
}
