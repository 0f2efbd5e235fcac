package bitio

import (
	"bytes"
	"testing"
)

func TestBitsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	vals := []struct {
		v uint64
		n uint
	}{
		{0, 1}, {1, 1}, {5, 3}, {0xFF, 8}, {0x1FFFF, 17}, {0, 0}, {0xFFFFFFFFFFFFFFFF, 64},
	}
	for _, tc := range vals {
		if err := w.WriteBits(tc.v, tc.n); err != nil {
			t.Fatalf("WriteBits: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	for _, tc := range vals {
		got, err := r.ReadBits(tc.n)
		if err != nil {
			t.Fatalf("ReadBits: %v", err)
		}
		want := tc.v
		if tc.n < 64 {
			want &= uint64(1)<<tc.n - 1
		}
		if got != want {
			t.Errorf("ReadBits(%d) = %#x, want %#x", tc.n, got, want)
		}
	}
}

func TestU32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 2, 3, 4, 10, 100, 1000, 1 << 15, 32770}
	for _, selector := range []uint{2, 4, 8} {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		for _, v := range values {
			if err := w.WriteU32(v, selector); err != nil {
				t.Fatalf("WriteU32(%d): %v", v, err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		r := NewReader(&buf)
		for _, want := range values {
			got, err := r.U32(selector)
			if err != nil {
				t.Fatalf("U32: %v", err)
			}
			if got != want {
				t.Errorf("selector=%d: U32() = %d, want %d", selector, got, want)
			}
		}
	}
}

func TestAlignToByte(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteBits(0b101, 3)
	w.AlignToByte()
	w.WriteBits(0xAB, 8)
	w.Flush()

	if buf.Len() != 2 {
		t.Fatalf("expected 2 bytes after alignment, got %d", buf.Len())
	}

	r := NewReader(&buf)
	v, _ := r.ReadBits(3)
	if v != 0b101 {
		t.Fatalf("got %b", v)
	}
	r.AlignToByte()
	v, _ = r.ReadBits(8)
	if v != 0xAB {
		t.Fatalf("got %#x", v)
	}
}

func TestShortReadFails(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	if _, err := r.ReadBits(1); err == nil {
		t.Fatal("expected error on short read")
	}
}
