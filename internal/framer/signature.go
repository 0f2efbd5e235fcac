// Package framer implements the bit-exact codestream layout: the
// signature, ImageMetadata, FrameHeader, and per-group entropy payloads.
// Grounded on the teacher's frame/header.go NewHeader, which reads a fixed
// sequence of bit-widths in one call and assigns named fields in order
// with a numbered inline comment per field; this package's parsers use
// the same "numbered field" idiom, adapted from FLAC's MSB-first reads to
// this codestream's LSB-first bit order.
package framer

import "github.com/mewkiz/jxl/internal/bitio"
import "github.com/mewkiz/jxl/jxlerr"

// Signature is the 16-bit codestream signature.
const Signature = 0x0AFF

// ReadSignature reads and validates the codestream signature.
func ReadSignature(br *bitio.Reader) error {
	v, err := br.ReadBits(16)
	if err != nil {
		return err
	}
	if v != Signature {
		return jxlerr.New(jxlerr.InvalidSignature, "codestream signature mismatch: got %#04x, want %#04x", v, Signature)
	}
	return nil
}

// WriteSignature writes the codestream signature.
func WriteSignature(bw *bitio.Writer) error {
	return bw.WriteBits(Signature, 16)
}
