package core

// streaming.go cleans up uploaded import files as they are read:
//
//   - CountingReader records how many raw bytes were consumed
//   - BOMSkippingReader drops the UTF-8 BOM spreadsheet exports often start with
//   - UTF8Sanitizer replaces invalid UTF-8 bytes with '?'
//
// WrapForImport stacks them in that order, the counter closest to the upload.

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader skips a leading UTF-8 BOM if present.
type BOMSkippingReader struct {
	br      *bufio.Reader
	checked bool
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		head, err := r.br.Peek(len(utf8BOM))
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return 0, err
		}
		if bytes.Equal(head, utf8BOM) {
			if _, err := r.br.Discard(len(utf8BOM)); err != nil {
				return 0, err
			}
		}
	}
	return r.br.Read(p)
}

// UTF8Sanitizer replaces invalid UTF-8 bytes with '?'.
// Multi-byte sequences split across reads are carried over to the next read.
type UTF8Sanitizer struct {
	reader  io.Reader
	pending []byte

	// Sanitized output for callers whose buffer is shorter than a rune.
	buf [utf8.UTFMax]byte
	out []byte
	err error
}

// NewUTF8Sanitizer creates a new streaming UTF-8 sanitizer.
func NewUTF8Sanitizer(r io.Reader) *UTF8Sanitizer {
	return &UTF8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (s *UTF8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if len(s.out) == 0 && s.err == nil {
		if len(p) >= utf8.UTFMax {
			return s.fill(p)
		}
		n, err := s.fill(s.buf[:])
		s.out, s.err = s.buf[:n], err
	}

	n := copy(p, s.out)
	s.out = s.out[n:]
	if len(s.out) > 0 {
		return n, nil
	}
	err := s.err
	s.err = nil
	return n, err
}

// fill reads into p, which must hold at least utf8.UTFMax bytes, and
// returns the number of sanitized bytes written. It keeps reading while
// everything read so far is an incomplete rune.
func (s *UTF8Sanitizer) fill(p []byte) (int, error) {
	for {
		offset := copy(p, s.pending)
		s.pending = s.pending[offset:]

		n, err := s.reader.Read(p[offset:])
		if n == 0 && offset == 0 {
			return 0, err
		}

		written := s.sanitize(p[:offset+n], err == io.EOF)
		if written > 0 || err != nil || n == 0 {
			return written, err
		}
	}
}

// sanitize rewrites data in place and returns the number of bytes to emit.
// Unless atEOF, an incomplete trailing sequence is held back in pending.
func (s *UTF8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		if data[read] < utf8.RuneSelf {
			data[write] = data[read]
			write++
			read++
			continue
		}

		if !atEOF && !utf8.FullRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		r, size := utf8.DecodeRune(data[read:])
		if r == utf8.RuneError && size == 1 {
			data[write] = '?'
			write++
			read++
			continue
		}

		copy(data[write:], data[read:read+size])
		write += size
		read += size
	}
	return write
}

// CountingReader tracks the number of bytes read through it.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader wraps r.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// WrapForImport returns a reader that strips the BOM and sanitizes UTF-8,
// and the counter of raw bytes consumed from r. The count includes the BOM
// and any replaced bytes.
func WrapForImport(r io.Reader) (io.Reader, *CountingReader) {
	counter := NewCountingReader(r)
	return NewUTF8Sanitizer(NewBOMSkippingReader(counter)), counter
}
