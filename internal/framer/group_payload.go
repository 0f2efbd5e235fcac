package framer

import (
	"github.com/mewkiz/jxl/internal/bitio"
	"github.com/mewkiz/jxl/internal/dist"
	"github.com/mewkiz/jxl/jxlerr"
	"github.com/mewkiz/pkg/hashutil/crc8"
)

// DistributionDescriptor is the wire format for a group payload's
// distribution: a 12-bit alphabet size and a 16-bit shifted min-value,
// enough for the decoder to reconstruct a uniform distribution. This is a
// known limitation of the wire format (it loses the exact source
// frequency table) reproduced faithfully from the reference design rather
// than "fixed" here; a richer descriptor is reserved for a future
// revision.
type DistributionDescriptor struct {
	AlphabetSize uint16 // 12 bits on the wire
	MinValue     int32  // transmitted as MinValue+32768, 16 bits on the wire
}

const minValueBias = 1 << 15

// ReadDistributionDescriptor reads the 12-bit alphabet size and 16-bit
// shifted min-value.
func ReadDistributionDescriptor(br *bitio.Reader) (*DistributionDescriptor, error) {
	a, err := br.ReadBits(12)
	if err != nil {
		return nil, err
	}
	m, err := br.ReadBits(16)
	if err != nil {
		return nil, err
	}
	return &DistributionDescriptor{
		AlphabetSize: uint16(a),
		MinValue:     int32(m) - minValueBias,
	}, nil
}

// WriteDistributionDescriptor writes d.
func WriteDistributionDescriptor(bw *bitio.Writer, d *DistributionDescriptor) error {
	if err := bw.WriteBits(uint64(d.AlphabetSize), 12); err != nil {
		return err
	}
	return bw.WriteBits(uint64(int64(d.MinValue)+minValueBias), 16)
}

// UniformDistribution reconstructs the uniform distribution implied by a
// DistributionDescriptor: each symbol gets round(M/alphabetSize), and the
// rounding difference is added to symbol 0 (when the shares fall short of
// M) or taken from the lowest-index symbols (when they exceed it).
func UniformDistribution(alphabetSize uint16) (*dist.Distribution, error) {
	if alphabetSize == 0 {
		return nil, jxlerr.New(jxlerr.InvalidParameter, "alphabet size 0")
	}
	freqs := make([]uint64, alphabetSize)
	for i := range freqs {
		freqs[i] = 1
	}
	return dist.NewDistribution(freqs)
}

// GroupPayload is one channel/group's entropy-coded coefficient payload:
// a distribution descriptor followed by the rANS byte vector, itself
// preceded by its 20-bit byte count.
type GroupPayload struct {
	Descriptor DistributionDescriptor
	RANSData   []byte
}

// MaxPayloadBytes is the largest byte count a 20-bit length field can
// represent.
const MaxPayloadBytes = 1<<20 - 1

// ReadGroupPayload reads one group payload, verifying its trailing CRC-8
// against the rANS byte vector.
func ReadGroupPayload(br *bitio.Reader) (*GroupPayload, error) {
	desc, err := ReadDistributionDescriptor(br)
	if err != nil {
		return nil, err
	}
	n, err := br.ReadBits(20)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	h := crc8.NewATM()
	for i := range data {
		v, err := br.ReadBits(8)
		if err != nil {
			return nil, err
		}
		data[i] = byte(v)
	}
	h.Write(data)
	want, err := br.ReadBits(8)
	if err != nil {
		return nil, err
	}
	if got := h.Sum8(); got != byte(want) {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "group payload checksum mismatch: got 0x%02X, want 0x%02X", got, want)
	}
	return &GroupPayload{Descriptor: *desc, RANSData: data}, nil
}

// WriteGroupPayload writes one group payload, followed by a CRC-8 of the
// rANS byte vector, the way the teacher's frame header trails its fields
// with a CRC-8 of the bytes read so far.
func WriteGroupPayload(bw *bitio.Writer, p *GroupPayload) error {
	if len(p.RANSData) > MaxPayloadBytes {
		return jxlerr.New(jxlerr.BufferTooSmall, "group payload of %d bytes exceeds 20-bit length field", len(p.RANSData))
	}
	if err := WriteDistributionDescriptor(bw, &p.Descriptor); err != nil {
		return err
	}
	if err := bw.WriteBits(uint64(len(p.RANSData)), 20); err != nil {
		return err
	}
	h := crc8.NewATM()
	h.Write(p.RANSData)
	for _, b := range p.RANSData {
		if err := bw.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return bw.WriteBits(uint64(h.Sum8()), 8)
}

// WriteByteVector writes a 20-bit length prefix followed by data, used for
// auxiliary per-group side channels (e.g. the adaptive quantization scale
// map) that are not themselves entropy-coded.
func WriteByteVector(bw *bitio.Writer, data []byte) error {
	if len(data) > MaxPayloadBytes {
		return jxlerr.New(jxlerr.BufferTooSmall, "byte vector of %d bytes exceeds 20-bit length field", len(data))
	}
	if err := bw.WriteBits(uint64(len(data)), 20); err != nil {
		return err
	}
	for _, b := range data {
		if err := bw.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// ReadByteVector reads a byte vector written by WriteByteVector.
func ReadByteVector(br *bitio.Reader) ([]byte, error) {
	n, err := br.ReadBits(20)
	if err != nil {
		return nil, err
	}
	data := make([]byte, n)
	for i := range data {
		v, err := br.ReadBits(8)
		if err != nil {
			return nil, err
		}
		data[i] = byte(v)
	}
	return data, nil
}

// DiffEncodeDC replaces a DC coefficient array with its differential
// encoding: the first value absolute, subsequent values current-previous.
func DiffEncodeDC(dc []int32) []int32 {
	out := make([]int32, len(dc))
	var prev int32
	for i, v := range dc {
		if i == 0 {
			out[i] = v
		} else {
			out[i] = v - prev
		}
		prev = v
	}
	return out
}

// DiffDecodeDC inverts DiffEncodeDC.
func DiffDecodeDC(diffs []int32) []int32 {
	out := make([]int32, len(diffs))
	var prev int32
	for i, d := range diffs {
		if i == 0 {
			out[i] = d
		} else {
			out[i] = prev + d
		}
		prev = out[i]
	}
	return out
}
