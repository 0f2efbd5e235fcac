package framer

import "github.com/mewkiz/jxl/internal/bitio"

// FrameType is the 2-bit frame type descriptor.
type FrameType int

// Frame types.
const (
	FrameRegular FrameType = iota
	FrameLF
	FrameReference
	FrameSkipProgressive
)

// FrameEncoding is the 1-bit encoding descriptor.
type FrameEncoding int

// Frame encodings.
const (
	EncodingVarDCT FrameEncoding = iota
	EncodingModular
)

// FrameHeader is the codestream's per-frame header.
type FrameHeader struct {
	AllDefault bool

	Type     FrameType
	Encoding FrameEncoding
	// Quality is the VarDCT quality factor in [0,100] this frame was
	// quantized with; meaningless (but still present on the wire) for
	// Encoding == EncodingModular.
	Quality  uint8
	Flags    uint32

	HaveDuration bool
	Duration     uint32

	HaveName bool
	Name     string
}

func defaultFrameHeader() FrameHeader {
	return FrameHeader{AllDefault: true, Type: FrameRegular, Encoding: EncodingVarDCT, Quality: 90}
}

// ReadFrameHeader parses a FrameHeader.
func ReadFrameHeader(br *bitio.Reader) (*FrameHeader, error) {
	allDefault, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	if allDefault != 0 {
		h := defaultFrameHeader()
		return &h, nil
	}

	h := &FrameHeader{}
	// field 0: frame type (2 bits)
	t, err := br.ReadBits(2)
	if err != nil {
		return nil, err
	}
	h.Type = FrameType(t)

	// field 1: encoding (1 bit)
	enc, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	h.Encoding = FrameEncoding(enc)

	// field 1b: quality (8 bits)
	q, err := br.ReadBits(8)
	if err != nil {
		return nil, err
	}
	h.Quality = uint8(q)

	// field 2: flags (32 bits)
	flags, err := br.ReadBits(32)
	if err != nil {
		return nil, err
	}
	h.Flags = uint32(flags)

	// field 3: have_duration (1 bit), optional 32-bit duration
	haveDuration, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	h.HaveDuration = haveDuration != 0
	if h.HaveDuration {
		d, err := br.ReadBits(32)
		if err != nil {
			return nil, err
		}
		h.Duration = uint32(d)
	}

	// field 4: have_name (1 bit), optional 8-bit length + UTF-8 bytes
	haveName, err := br.ReadBit()
	if err != nil {
		return nil, err
	}
	h.HaveName = haveName != 0
	if h.HaveName {
		length, err := br.ReadBits(8)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, length)
		for i := range buf {
			v, err := br.ReadBits(8)
			if err != nil {
				return nil, err
			}
			buf[i] = byte(v)
		}
		h.Name = string(buf)
	}

	return h, nil
}

// WriteFrameHeader writes a FrameHeader.
func WriteFrameHeader(bw *bitio.Writer, h *FrameHeader) error {
	if h.AllDefault {
		return bw.WriteBit(1)
	}
	if err := bw.WriteBit(0); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.Type), 2); err != nil {
		return err
	}
	if err := bw.WriteBit(uint64(h.Encoding)); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.Quality), 8); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(h.Flags), 32); err != nil {
		return err
	}
	if err := bw.WriteBit(b2u(h.HaveDuration)); err != nil {
		return err
	}
	if h.HaveDuration {
		if err := bw.WriteBits(uint64(h.Duration), 32); err != nil {
			return err
		}
	}
	if err := bw.WriteBit(b2u(h.HaveName)); err != nil {
		return err
	}
	if h.HaveName {
		name := []byte(h.Name)
		if err := bw.WriteBits(uint64(len(name)), 8); err != nil {
			return err
		}
		for _, c := range name {
			if err := bw.WriteBits(uint64(c), 8); err != nil {
				return err
			}
		}
	}
	return nil
}
