package container

import (
	"bytes"
	"testing"
)

func TestContainerRoundTrip(t *testing.T) {
	codestream := []byte{0xFF, 0x0A, 0x00, 0x01, 0x02, 0x03}
	var buf bytes.Buffer
	if err := WriteContainer(&buf, codestream); err != nil {
		t.Fatalf("WriteContainer: %v", err)
	}
	got, err := ExtractCodestream(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ExtractCodestream: %v", err)
	}
	if !bytes.Equal(got, codestream) {
		t.Fatalf("got %x, want %x", got, codestream)
	}
}

func TestNakedCodestreamAccepted(t *testing.T) {
	codestream := []byte{0xFF, 0x0A, 0x10, 0x20}
	got, err := ExtractCodestream(bytes.NewReader(codestream))
	if err != nil {
		t.Fatalf("ExtractCodestream: %v", err)
	}
	if !bytes.Equal(got, codestream) {
		t.Fatalf("got %x, want %x", got, codestream)
	}
}

func TestInvalidSignatureRejected(t *testing.T) {
	bogus := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := ExtractCodestream(bytes.NewReader(bogus)); err == nil {
		t.Fatal("expected error for invalid signature")
	}
}

func TestBoxEncodeReadRoundTrip(t *testing.T) {
	payload := make([]byte, 10)
	for i := range payload {
		payload[i] = byte(i)
	}
	box := &Box{Type: TypeCodestream, Payload: payload}
	var buf bytes.Buffer
	if err := box.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBox(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Type != TypeCodestream || !bytes.Equal(got.Payload, payload) {
		t.Fatalf("got %+v", got)
	}
}

func TestPartialBoxesConcatenateInFileOrder(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(Signature[:])
	var brand [4]byte
	copy(brand[:], "jxl ")
	ftyp := &Box{Type: TypeFileType, Payload: brand[:]}
	if err := ftyp.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	part1 := &Box{Type: TypePartial, Payload: []byte{1, 2, 3}}
	part2 := &Box{Type: TypePartial, Payload: []byte{4, 5, 6}}
	if err := part1.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := part2.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := ExtractCodestream(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}
