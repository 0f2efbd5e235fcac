package framer

import "github.com/mewkiz/jxl/internal/bitio"

// BitDepthKind selects one of the four bit-depth descriptors.
type BitDepthKind int

// Bit-depth descriptor selectors.
const (
	BitDepth8 BitDepthKind = iota
	BitDepth10
	BitDepth12
	BitDepthCustom
)

// ColorEncoding is the 3-bit color encoding tag carried in ImageMetadata.
type ColorEncoding int

// Color encoding tags.
const (
	ColorSRGB ColorEncoding = iota
	ColorLinearSRGB
	ColorXYB
	ColorDisplayP3
	ColorRec2020
	ColorCustom
)

// ChannelLayout identifies the sample channels an image carries.
type ChannelLayout int

// Channel layouts.
const (
	Gray ChannelLayout = iota
	GrayAlpha
	RGB
	RGBAlpha
)

// NumChannels returns the channel count for a layout.
func (l ChannelLayout) NumChannels() int {
	switch l {
	case Gray:
		return 1
	case GrayAlpha:
		return 2
	case RGB:
		return 3
	case RGBAlpha:
		return 4
	default:
		return 0
	}
}

// SampleKind identifies the in-memory representation of one decoded
// sample, independent of the bit-depth descriptor below (which only
// matters for the integer modular path).
type SampleKind int

// Sample kinds.
const (
	SampleU8 SampleKind = iota
	SampleU16
	SampleF16
	SampleF32
)

// ImageMetadata is the codestream's image metadata header. Width, Height,
// ChannelLayout, and Sample are always present on the wire, since a
// decoder needs them before it can make sense of anything else; the
// remaining fields follow the all-default short-circuit like the
// teacher's streaminfo.
type ImageMetadata struct {
	Width         uint32
	Height        uint32
	ChannelLayout ChannelLayout
	Sample        SampleKind

	AllDefault bool

	// Fields below are only meaningful (and only present on the wire)
	// when AllDefault is false.
	Orientation         uint8 // 1..8, 0 if absent
	HaveIntrinsicSize    bool
	IntrinsicWidth       uint32
	IntrinsicHeight      uint32
	HavePreview          bool
	HaveAnimation        bool
	BitDepthKind         BitDepthKind
	CustomBitDepth       uint8 // 6-bit extra field when BitDepthKind == BitDepthCustom
	Modular16BitBuffers  bool
	NumExtraChannels     uint32
	XYBEncoded           bool
	ColorEncoding        ColorEncoding
}

// defaultImageMetadata is the implied metadata when AllDefault is true:
// no orientation override, no intrinsic size, no preview, no animation,
// 8-bit depth, 16-bit modular buffers disabled, zero extra channels, not
// XYB-encoded, sRGB.
func defaultImageMetadata(w, h uint32, layout ChannelLayout, sample SampleKind) ImageMetadata {
	return ImageMetadata{
		Width:         w,
		Height:        h,
		ChannelLayout: layout,
		Sample:        sample,
		AllDefault:    true,
		BitDepthKind:  BitDepth8,
	}
}

// ReadImageMetadata parses the ImageMetadata block.
func ReadImageMetadata(br *bitio.Reader) (*ImageMetadata, error) {
	w, err := br.U32(9)
	if err != nil {
		return nil, err
	}
	h, err := br.U32(9)
	if err != nil {
		return nil, err
	}
	layout, err := br.ReadBits(2)
	if err != nil {
		return nil, err
	}
	sample, err := br.ReadBits(2)
	if err != nil {
		return nil, err
	}

	// field 0: all_default (1 bit)
	allDefault, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	if allDefault != 0 {
		m := defaultImageMetadata(w, h, ChannelLayout(layout), SampleKind(sample))
		return &m, nil
	}

	m := &ImageMetadata{Width: w, Height: h, ChannelLayout: ChannelLayout(layout), Sample: SampleKind(sample)}
	// field 1: extra_fields (1 bit)
	extraFields, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	if extraFields != 0 {
		// field 2: 3-bit orientation value in {1..8}, present only when
		// extra_fields is set.
		v, err := br.ReadBits(3)
		if err != nil {
			return nil, err
		}
		m.Orientation = uint8(v + 1)
	}

	// field 3: have_intrinsic_size (1 bit)
	haveIntrinsic, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	if haveIntrinsic != 0 {
		m.HaveIntrinsicSize = true
		w, err := br.U32(9)
		if err != nil {
			return nil, err
		}
		h, err := br.U32(9)
		if err != nil {
			return nil, err
		}
		m.IntrinsicWidth, m.IntrinsicHeight = w, h
	}

	// field 4: have_preview (1 bit)
	havePreview, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	m.HavePreview = havePreview != 0

	// field 5: have_animation (1 bit)
	haveAnimation, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	m.HaveAnimation = haveAnimation != 0

	// field 6: bit-depth selector (2 bits): 0 => 8, 1 => 10, 2 => 12,
	// 3 => custom (6 extra bits).
	sel, err := br.ReadBits(2)
	if err != nil {
		return nil, err
	}
	m.BitDepthKind = BitDepthKind(sel)
	if m.BitDepthKind == BitDepthCustom {
		v, err := br.ReadBits(6)
		if err != nil {
			return nil, err
		}
		m.CustomBitDepth = uint8(v)
	}

	// field 7: modular_16bit_buffers (1 bit)
	modular16, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	m.Modular16BitBuffers = modular16 != 0

	// field 8: num_extra_channels (u32 selector 0)
	numExtra, err := br.U32(0)
	if err != nil {
		return nil, err
	}
	m.NumExtraChannels = numExtra

	// field 9: xyb_encoded (1 bit)
	xyb, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	m.XYBEncoded = xyb != 0

	// field 10: color encoding tag (3 bits)
	ce, err := br.ReadBits(3)
	if err != nil {
		return nil, err
	}
	m.ColorEncoding = ColorEncoding(ce)

	return m, nil
}

// WriteImageMetadata writes the ImageMetadata block.
func WriteImageMetadata(bw *bitio.Writer, m *ImageMetadata) error {
	if err := bw.WriteU32(m.Width, 9); err != nil {
		return err
	}
	if err := bw.WriteU32(m.Height, 9); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(m.ChannelLayout), 2); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(m.Sample), 2); err != nil {
		return err
	}

	if m.AllDefault {
		return bw.WriteBit(1)
	}
	if err := bw.WriteBit(0); err != nil {
		return err
	}

	hasOrientation := m.Orientation != 0
	if err := bw.WriteBit(b2u(hasOrientation)); err != nil {
		return err
	}
	if hasOrientation {
		if err := bw.WriteBits(uint64(m.Orientation-1), 3); err != nil {
			return err
		}
	}

	if err := bw.WriteBit(b2u(m.HaveIntrinsicSize)); err != nil {
		return err
	}
	if m.HaveIntrinsicSize {
		if err := bw.WriteU32(m.IntrinsicWidth, 9); err != nil {
			return err
		}
		if err := bw.WriteU32(m.IntrinsicHeight, 9); err != nil {
			return err
		}
	}

	if err := bw.WriteBit(b2u(m.HavePreview)); err != nil {
		return err
	}
	if err := bw.WriteBit(b2u(m.HaveAnimation)); err != nil {
		return err
	}

	if err := bw.WriteBits(uint64(m.BitDepthKind), 2); err != nil {
		return err
	}
	if m.BitDepthKind == BitDepthCustom {
		if err := bw.WriteBits(uint64(m.CustomBitDepth), 6); err != nil {
			return err
		}
	}

	if err := bw.WriteBit(b2u(m.Modular16BitBuffers)); err != nil {
		return err
	}
	if err := bw.WriteU32(m.NumExtraChannels, 0); err != nil {
		return err
	}
	if err := bw.WriteBit(b2u(m.XYBEncoded)); err != nil {
		return err
	}
	return bw.WriteBits(uint64(m.ColorEncoding), 3)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
