package query

import (
	"fmt"
	"io"
)

// Decode interprets data as a payload of the format's shape, returning the
// decoded values in token order and verifying every literal byte on the
// way. The format must describe the input completely; leftover bytes are
// an error, as is running out of input partway through a token.
//
// Integer tokens decode to uint64, text tokens to string, and %# to a
// []byte that never aliases data.
func (f *Format) Decode(data []byte) ([]any, error) {
	src := scanner{buf: data}
	dst := make([]any, 0, f.nvals)

	var err error
	for _, in := range f.prog {
		if dst, err = in.decode(&src, dst); err != nil {
			return nil, err
		}
	}

	if n := src.remaining(); n != 0 {
		return nil, fmt.Errorf("%v unconsumed bytes after format %q: %w", n, f.src, ErrRemaining)
	}
	return dst, nil
}

// scanner walks the input with an explicit offset.
// The buffer is borrowed; it is never copied or re-sliced away.
type scanner struct {
	buf []byte
	off int
}

func (s *scanner) remaining() int { return len(s.buf) - s.off }

func (s *scanner) take(n int) ([]byte, error) {
	if n > s.remaining() {
		return nil, fmt.Errorf("offset %v: %v bytes needed, %v available: %w", s.off, n, s.remaining(), io.ErrUnexpectedEOF)
	}
	b := s.buf[s.off : s.off+n]
	s.off += n
	return b, nil
}

func (s *scanner) takeByte() (byte, error) {
	b, err := s.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// rest consumes and returns everything not yet consumed.
func (s *scanner) rest() []byte {
	b := s.buf[s.off:]
	s.off = len(s.buf)
	return b
}

func (l litByte) decode(src *scanner, dst []any) ([]any, error) {
	at := src.off
	b, err := src.takeByte()
	if err != nil {
		return nil, err
	}
	if b != byte(l) {
		return nil, MismatchError{Offset: at, Want: byte(l), Got: b}
	}
	return dst, nil
}

func (t intToken) decode(src *scanner, dst []any) ([]any, error) {
	b, err := src.take(t.width)
	if err != nil {
		return nil, err
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return append(dst, v), nil
}

func (textToken) decode(src *scanner, dst []any) ([]any, error) {
	s, err := takePrefixed(src)
	if err != nil {
		return nil, err
	}
	return append(dst, s), nil
}

func (cstrToken) decode(src *scanner, dst []any) ([]any, error) {
	s, err := takePrefixed(src)
	if err != nil {
		return nil, err
	}
	if len(s) > 0 {
		s = s[:len(s)-1] // drop the terminator
	}
	return append(dst, s), nil
}

// takePrefixed consumes a 2-byte big-endian length, then that many bytes
// of text.
func takePrefixed(src *scanner) (string, error) {
	b, err := src.take(2)
	if err != nil {
		return "", err
	}
	n := int(b[0])<<8 | int(b[1])
	text, err := src.take(n)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

func (rawToken) decode(src *scanner, dst []any) ([]any, error) {
	return append(dst, string(src.rest())), nil
}

func (restToken) decode(src *scanner, dst []any) ([]any, error) {
	rest := src.rest()
	b := make([]byte, len(rest))
	copy(b, rest)
	return append(dst, b), nil
}

func (skipToken) decode(src *scanner, dst []any) ([]any, error) {
	if _, err := src.takeByte(); err != nil {
		return nil, err
	}
	return dst, nil
}
