// Package bufseekio wraps an io.ReadSeeker with a small fixed-size read
// buffer. Open uses it to pull a codestream out of its ISO-BMFF-style
// container box-by-box without issuing a syscall-sized read for every
// few bytes of box header the container parser consumes.
package bufseekio

import (
	"errors"
	"io"
)

const (
	defaultBufSize    = 4096
	minReadBufferSize = 16
)

// Reader buffers reads from an underlying io.ReadSeeker and passes Seek
// calls through, invalidating the buffer whenever a seek lands outside
// it.
type Reader struct {
	buf  []byte
	pos  int64 // absolute start offset of buf in rd
	rd   io.ReadSeeker
	r, w int // read/write cursors within buf
	err  error
}

// NewReaderSize returns a Reader over rd with a buffer of at least size
// bytes. If rd is already a Reader with a large enough buffer, it is
// returned unchanged.
func NewReaderSize(rd io.ReadSeeker, size int) *Reader {
	if b, ok := rd.(*Reader); ok && len(b.buf) >= size {
		return b
	}
	if size < minReadBufferSize {
		size = minReadBufferSize
	}
	return &Reader{buf: make([]byte, size), rd: rd}
}

// NewReader returns a Reader over rd with the default buffer size.
func NewReader(rd io.ReadSeeker) *Reader {
	return NewReaderSize(rd, defaultBufSize)
}

var errNegativeRead = errors.New("bufseekio: reader returned negative count from Read")

func (b *Reader) readErr() error {
	err := b.err
	b.err = nil
	return err
}

func (b *Reader) buffered() int { return b.w - b.r }

// Read reads into p from at most one underlying Read call, refilling the
// buffer first if it's empty.
func (b *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		if b.buffered() > 0 {
			return 0, nil
		}
		return 0, b.readErr()
	}
	if b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}
		if len(p) >= len(b.buf) {
			// Caller's buffer already covers a full refill; read straight
			// into it and skip the copy through buf.
			n, b.err = b.rd.Read(p)
			if n < 0 {
				panic(errNegativeRead)
			}
			// buf is fully consumed: move it past the bytes just read so
			// pos stays the start offset of an empty buf.
			b.pos += int64(b.r) + int64(n)
			b.r, b.w = 0, 0
			return n, b.readErr()
		}
		b.pos += int64(b.r)
		b.r, b.w = 0, 0
		n, b.err = b.rd.Read(b.buf)
		if n < 0 {
			panic(errNegativeRead)
		}
		if n == 0 {
			return 0, b.readErr()
		}
		b.w = n
	}
	n = copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// Seek repositions the underlying reader, reusing the current buffer
// when the target offset already falls within it.
func (b *Reader) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekCurrent {
		return b.position(), nil
	}
	if whence == io.SeekEnd {
		return b.seek(offset, whence)
	}
	abs := offset
	if whence == io.SeekCurrent {
		abs += b.position()
	}
	if abs >= b.pos && abs < b.pos+int64(b.w) {
		b.r = int(abs - b.pos)
		return abs, nil
	}
	return b.seek(abs, io.SeekStart)
}

func (b *Reader) seek(offset int64, whence int) (int64, error) {
	b.r, b.w = 0, 0
	var err error
	b.pos, err = b.rd.Seek(offset, whence)
	return b.pos, err
}

func (b *Reader) position() int64 { return b.pos + int64(b.r) }
