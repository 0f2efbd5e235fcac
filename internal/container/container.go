// Package container implements the ISO-BMFF-style box framing that wraps
// a codestream: a fixed 12-byte file signature, an ftyp box, one or more
// jxlc (complete codestream) or jxlp (partial codestream) boxes, and
// optional metadata boxes (Exif, xml, json) passed through unmodified.
// Grounded directly on mrjoshuak/go-jpeg2000's internal/box package (4-byte
// big-endian size, 4-byte type, extended-size form when size==1),
// generalized from JP2's box type registry to this codestream's smaller
// box set.
package container

import (
	"encoding/binary"
	"io"

	"github.com/mewkiz/jxl/jxlerr"
)

// Type is a 4-byte box type code.
type Type uint32

// String returns the 4-character type code.
func (t Type) String() string {
	b := []byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)}
	return string(b)
}

// Box type codes used by this container.
var (
	TypeFileType  = fourCC("ftyp")
	TypeCodestream = fourCC("jxlc")
	TypePartial   = fourCC("jxlp")
	TypeExif      = fourCC("Exif")
	TypeXML       = fourCC("xml ")
	TypeJSON      = fourCC("json")
)

func fourCC(s string) Type {
	return Type(binary.BigEndian.Uint32([]byte(s)))
}

// Brand is the ftyp box's brand value, "jxl ".
var Brand = fourCC("jxl ")

// Signature is the fixed first 12 bytes of a container file.
var Signature = [12]byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20, 0x0D, 0x0A, 0x87, 0x0A}

// NakedCodestreamMarker is the two-byte marker that begins a codestream
// not wrapped in a container.
var NakedCodestreamMarker = [2]byte{0xFF, 0x0A}

// Box is a single ISO-BMFF box: a 4-byte big-endian size, a 4-byte type,
// an optional 8-byte extended size when size==1, and a payload.
type Box struct {
	Type    Type
	Payload []byte
}

// Encode writes b's header and payload to w.
func (b *Box) Encode(w io.Writer) error {
	size := uint64(8 + len(b.Payload))
	var header []byte
	if size <= 0xFFFFFFFF {
		header = make([]byte, 8)
		binary.BigEndian.PutUint32(header[0:4], uint32(size))
		binary.BigEndian.PutUint32(header[4:8], uint32(b.Type))
	} else {
		header = make([]byte, 16)
		binary.BigEndian.PutUint32(header[0:4], 1)
		binary.BigEndian.PutUint32(header[4:8], uint32(b.Type))
		binary.BigEndian.PutUint64(header[8:16], size+8)
	}
	if _, err := w.Write(header); err != nil {
		return jxlerr.Wrap(err, jxlerr.IoError, "write box header")
	}
	if _, err := w.Write(b.Payload); err != nil {
		return jxlerr.Wrap(err, jxlerr.IoError, "write box payload")
	}
	return nil
}

// ReadBox reads a single box from r.
func ReadBox(r io.Reader) (*Box, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, jxlerr.Wrap(err, jxlerr.InvalidBitstream, "read box header")
	}
	size := uint64(binary.BigEndian.Uint32(head[0:4]))
	typ := Type(binary.BigEndian.Uint32(head[4:8]))
	headerLen := uint64(8)
	if size == 1 {
		var ext [8]byte
		if _, err := io.ReadFull(r, ext[:]); err != nil {
			return nil, jxlerr.Wrap(err, jxlerr.InvalidBitstream, "read box extended size")
		}
		size = binary.BigEndian.Uint64(ext[:])
		headerLen = 16
	}
	if size < headerLen {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "box size %d smaller than its header", size)
	}
	payload := make([]byte, size-headerLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, jxlerr.Wrap(err, jxlerr.InvalidBitstream, "read box payload")
	}
	return &Box{Type: typ, Payload: payload}, nil
}

// WriteContainer wraps a complete codestream in an ftyp box followed by a
// single jxlc box.
func WriteContainer(w io.Writer, codestream []byte) error {
	if _, err := w.Write(Signature[:]); err != nil {
		return jxlerr.Wrap(err, jxlerr.IoError, "write container signature")
	}
	var brand [4]byte
	binary.BigEndian.PutUint32(brand[:], uint32(Brand))
	ftyp := &Box{Type: TypeFileType, Payload: brand[:]}
	if err := ftyp.Encode(w); err != nil {
		return err
	}
	jxlc := &Box{Type: TypeCodestream, Payload: codestream}
	return jxlc.Encode(w)
}

// ExtractCodestream parses a container (or accepts a naked codestream
// beginning with the FF 0A marker) and returns its concatenated codestream
// bytes: one jxlc box's payload, or every jxlp box's payload in file
// order.
func ExtractCodestream(r io.Reader) ([]byte, error) {
	var head [12]byte
	n, err := io.ReadFull(r, head[:2])
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, jxlerr.Wrap(err, jxlerr.IoError, "read signature")
	}
	if n == 2 && head[0] == NakedCodestreamMarker[0] && head[1] == NakedCodestreamMarker[1] {
		rest, err := io.ReadAll(r)
		if err != nil {
			return nil, jxlerr.Wrap(err, jxlerr.IoError, "read naked codestream")
		}
		return append(append([]byte{}, head[:2]...), rest...), nil
	}
	// Not a naked codestream: must be the full 12-byte container
	// signature.
	if _, err := io.ReadFull(r, head[2:]); err != nil {
		return nil, jxlerr.Wrap(err, jxlerr.InvalidSignature, "short container signature")
	}
	if head != Signature {
		return nil, jxlerr.New(jxlerr.InvalidSignature, "container signature mismatch")
	}

	var codestream []byte
	for {
		box, err := ReadBox(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch box.Type {
		case TypeCodestream:
			codestream = append(codestream, box.Payload...)
		case TypePartial:
			codestream = append(codestream, box.Payload...)
		default:
			// Exif, xml, json, and any other box are passed through
			// unmodified by the core.
		}
	}
	if codestream == nil {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "container has no jxlc/jxlp box")
	}
	return codestream, nil
}
