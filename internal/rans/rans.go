// Package rans implements the range-ANS (Asymmetric Numeral Systems)
// entropy coder over 12-bit normalized distributions, grounded on the
// rANS state machine in ha1tch/unz's pkg/ans (ProbBits/RansL/Encode/Decode
// renormalization loop), adapted here to this codec's 12-bit table size
// and tail-first encode contract.
package rans

import (
	"encoding/binary"

	"github.com/mewkiz/jxl/internal/dist"
	"github.com/mewkiz/jxl/jxlerr"
)

// LogM is log2 of the table denominator M used to normalize distributions.
const LogM = dist.LogM

// M is the table denominator; all distribution frequencies sum to M.
const M = dist.M

// Encoder encodes a message into an rANS byte stream. Symbols must be fed
// in the reverse of the desired decode order: callers that want natural
// order encode the message tail-first (see Encoder.Encode).
type Encoder struct {
	state  uint32
	output []byte
}

// NewEncoder returns a fresh rANS encoder with state initialized to M.
func NewEncoder() *Encoder {
	return &Encoder{state: M}
}

// Encode encodes one symbol described by its (cumul, freq) pair from a
// Distribution. Symbols must be encoded in reverse of the order they
// should be decoded in.
func (e *Encoder) Encode(d *dist.Distribution, symbol int) error {
	f, c, err := d.Freq(symbol)
	if err != nil {
		return err
	}
	// Step 1: renormalize by emitting bytes until state is back under the
	// threshold for this symbol's frequency.
	maxState := (uint32(M>>LogM) << 8) * f
	for e.state >= maxState {
		e.output = append(e.output, byte(e.state))
		e.state >>= 8
	}
	// Step 2: encode the symbol into state.
	e.state = (e.state/f)*M + (e.state % f) + c
	return nil
}

// Finish finalizes the stream: the final state is emitted four bytes
// big-endian *after* the renormalization bytes already emitted during
// encoding, then the entire vector is reversed, so the state ends up at
// the head of the output where the decoder expects to read it
// little-endian.
func (e *Encoder) Finish() []byte {
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], e.state)
	out := make([]byte, 0, len(e.output)+4)
	out = append(out, e.output...)
	out = append(out, tail[:]...)
	reverse(out)
	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Decoder decodes symbols from an rANS byte stream produced by Encoder.
// Symbols come out in the reverse of encode order, i.e. the natural order
// of a tail-first-encoded message.
type Decoder struct {
	state uint32
	data  []byte
	pos   int
}

// NewDecoder reads the 4-byte little-endian initial state from the head of
// data and returns a decoder positioned to read the first symbol.
func NewDecoder(data []byte) (*Decoder, error) {
	if len(data) < 4 {
		return nil, jxlerr.New(jxlerr.InvalidBitstream, "rans: stream shorter than state header")
	}
	return &Decoder{
		state: binary.LittleEndian.Uint32(data[:4]),
		data:  data,
		pos:   4,
	}, nil
}

// Decode decodes and returns the next symbol using d's reverse lookup
// table.
func (dec *Decoder) Decode(d *dist.Distribution) (int, error) {
	slot := dec.state & (M - 1)
	symbol, f, c, err := d.Lookup(slot)
	if err != nil {
		return 0, err
	}
	dec.state = f*(dec.state>>LogM) + slot - c
	// Renormalization is tolerant at the decode tail: reaching end of
	// stream while state < M is graceful termination, not an error, to
	// support truncated-last-byte streams.
	for dec.state < M && dec.pos < len(dec.data) {
		dec.state = (dec.state << 8) | uint32(dec.data[dec.pos])
		dec.pos++
	}
	return symbol, nil
}
