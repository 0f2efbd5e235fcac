package predictive

import "github.com/mewkiz/jxl/jxlerr"

// MaxPaletteEntries is the largest distinct-color count palette mode can
// address with an 8-bit index.
const MaxPaletteEntries = 256

// Palette is an owned color table mapping an 8-bit index to a channel
// tuple, built in first-seen (insertion) order.
type Palette struct {
	entries []([]int32)
	index   map[string]int
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{index: make(map[string]int)}
}

// BuildPalette scans pixels (each a channel tuple) and returns the
// resulting palette plus one index per pixel, or an error if the distinct
// color count exceeds MaxPaletteEntries.
func BuildPalette(pixels [][]int32) (*Palette, []uint8, error) {
	p := NewPalette()
	indices := make([]uint8, len(pixels))
	for i, px := range pixels {
		idx, err := p.add(px)
		if err != nil {
			return nil, nil, err
		}
		indices[i] = idx
	}
	return p, indices, nil
}

func (p *Palette) add(tuple []int32) (uint8, error) {
	key := tupleKey(tuple)
	if idx, ok := p.index[key]; ok {
		return uint8(idx), nil
	}
	if len(p.entries) >= MaxPaletteEntries {
		return 0, jxlerr.New(jxlerr.InvalidParameter, "palette exceeds %d distinct colors", MaxPaletteEntries)
	}
	idx := len(p.entries)
	p.entries = append(p.entries, append([]int32(nil), tuple...))
	p.index[key] = idx
	return uint8(idx), nil
}

// Lookup returns the channel tuple for a palette index.
func (p *Palette) Lookup(idx uint8) ([]int32, error) {
	if int(idx) >= len(p.entries) {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "palette index %d out of range", idx)
	}
	return p.entries[idx], nil
}

// Len returns the number of distinct colors in the palette.
func (p *Palette) Len() int { return len(p.entries) }

func tupleKey(tuple []int32) string {
	b := make([]byte, 0, len(tuple)*5)
	for _, v := range tuple {
		b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v), ',')
	}
	return string(b)
}
