// Package bitio implements the LSB-first bit reader and writer used by the
// codestream framer, laid out the way the teacher's internal/bits package
// wraps a bit-level codec primitive: a small struct holding a shift
// register plus package-level helpers, rather than a general-purpose
// bit-stream abstraction.
package bitio

import (
	"io"

	"github.com/mewkiz/jxl/jxlerr"
)

// Reader reads LSB-first bits from an underlying byte stream. The first
// byte read supplies the lowest-order bits of the stream first.
type Reader struct {
	r    io.Reader
	buf  uint64 // shift register; low bits are the next bits to deliver
	nbit uint   // number of valid bits currently in buf
	tmp  [8]byte
}

// NewReader returns a bit reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// fill ensures at least n bits (n <= 57) are buffered, byte at a time.
func (r *Reader) fill(n uint) error {
	for r.nbit < n {
		if _, err := io.ReadFull(r.r, r.tmp[:1]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return jxlerr.New(jxlerr.InvalidBitstream, "unexpected end of bitstream")
			}
			return jxlerr.Wrap(err, jxlerr.IoError, "read byte")
		}
		r.buf |= uint64(r.tmp[0]) << r.nbit
		r.nbit += 8
	}
	return nil
}

// ReadBits reads and returns the next n bits (n <= 64) as an unsigned
// integer, least-significant bit of the stream first.
func (r *Reader) ReadBits(n uint) (uint64, error) {
	if n > 64 {
		panic("bitio: ReadBits: n > 64")
	}
	if n == 0 {
		return 0, nil
	}
	var result uint64
	var got uint
	for got < n {
		take := n - got
		if take > 56 {
			take = 56
		}
		if err := r.fill(take); err != nil {
			return 0, err
		}
		mask := uint64(1)<<take - 1
		result |= (r.buf & mask) << got
		r.buf >>= take
		r.nbit -= take
		got += take
	}
	return result, nil
}

// ReadBit reads and returns a single bit.
func (r *Reader) ReadBit() (uint64, error) {
	return r.ReadBits(1)
}

// AlignToByte discards buffered bits up to the next byte boundary, relative
// to what has already been consumed from the underlying stream. Since reads
// are always byte-at-a-time into buf, aligning is simply dropping the
// low bits that don't fill a whole byte.
func (r *Reader) AlignToByte() {
	drop := r.nbit % 8
	r.buf >>= drop
	r.nbit -= drop
}

// U32 reads a variable-length u32 field with selector s: the field first
// reads s bits; if the read value is < (1<<s)-1 it is the result, otherwise
// a 4-bit k is read followed by a k-bit offset, yielding (1<<s)-1 + offset.
func (r *Reader) U32(s uint) (uint32, error) {
	base, err := r.ReadBits(s)
	if err != nil {
		return 0, err
	}
	limit := uint64(1)<<s - 1
	if base < limit {
		return uint32(base), nil
	}
	k, err := r.ReadBits(4)
	if err != nil {
		return 0, err
	}
	offset, err := r.ReadBits(uint(k))
	if err != nil {
		return 0, err
	}
	return uint32(limit + offset), nil
}

// Writer writes LSB-first bits to an underlying byte stream, mirroring
// Reader: the writer packs bits into a shift register and flushes whole
// bytes as they fill.
type Writer struct {
	w    io.Writer
	buf  uint64
	nbit uint
}

// NewWriter returns a bit writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteBits writes the low n bits of v (n <= 64), least-significant bit of
// the stream first.
func (w *Writer) WriteBits(v uint64, n uint) error {
	if n > 64 {
		panic("bitio: WriteBits: n > 64")
	}
	if n > 56 {
		// Split wide writes so v<<nbit never shifts bits out of buf.
		if err := w.WriteBits(v, 32); err != nil {
			return err
		}
		return w.WriteBits(v>>32, n-32)
	}
	if n < 64 {
		v &= uint64(1)<<n - 1
	}
	w.buf |= v << w.nbit
	w.nbit += n
	// nbit is at most 7 on entry, so buf holds at most 7+56 bits here;
	// flush whole bytes as soon as they're available.
	for w.nbit >= 8 {
		if _, err := w.w.Write([]byte{byte(w.buf)}); err != nil {
			return jxlerr.Wrap(err, jxlerr.IoError, "write byte")
		}
		w.buf >>= 8
		w.nbit -= 8
	}
	return nil
}

// WriteBit writes a single bit.
func (w *Writer) WriteBit(v uint64) error {
	return w.WriteBits(v, 1)
}

// AlignToByte pads the trailing partial byte with zero bits and flushes it.
func (w *Writer) AlignToByte() error {
	if w.nbit == 0 {
		return nil
	}
	return w.WriteBits(0, 8-w.nbit)
}

// WriteU32 writes a variable-length u32 field with selector s, the inverse
// of Reader.U32. It fails with InvalidParameter when v-((1<<s)-1) needs
// more than 15 bits, the most a 4-bit k can describe.
func (w *Writer) WriteU32(v uint32, s uint) error {
	limit := uint64(1)<<s - 1
	if uint64(v) < limit {
		return w.WriteBits(uint64(v), s)
	}
	offset := uint64(v) - limit
	k := bitLen(offset)
	if k > 15 {
		return jxlerr.New(jxlerr.InvalidParameter, "u32 value %d does not fit selector %d", v, s)
	}
	if err := w.WriteBits(limit, s); err != nil {
		return err
	}
	if err := w.WriteBits(uint64(k), 4); err != nil {
		return err
	}
	return w.WriteBits(offset, uint(k))
}

// bitLen returns the number of bits needed to represent v (0 for v == 0).
func bitLen(v uint64) uint {
	var n uint
	for v != 0 {
		n++
		v >>= 1
	}
	return n
}

// Flush pads and flushes any buffered bits; it is a synonym for
// AlignToByte kept for symmetry with the teacher's bitio.Writer.Align.
func (w *Writer) Flush() error {
	return w.AlignToByte()
}
