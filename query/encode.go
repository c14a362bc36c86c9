package query

import (
	"fmt"
)

// Encode builds the byte sequence the format describes, consuming one
// argument per argument-consuming token, in token order.
//
// Integer tokens take any of Go's integer types, converted with two's
// complement and truncated to the token's width. %x and %s take a string.
// %* takes a string or a []byte and writes it with no prefix. A format
// holding the decode-only tokens %# or %? cannot encode.
func (f *Format) Encode(args ...any) ([]byte, error) {
	if len(args) != f.nargs {
		return nil, fmt.Errorf("format %q takes %v arguments, got %v: %w", f.src, f.nargs, len(args), ErrArgCount)
	}

	src := argReader{args: args}
	dst := make([]byte, 0, f.size)

	var err error
	for _, in := range f.prog {
		if dst, err = in.encode(dst, &src); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// argReader hands out Encode's arguments front to back.
// Encode checks the argument count up front, so pop never overruns.
type argReader struct {
	args []any
	next int
}

func (a *argReader) pop() (any, int) {
	v := a.args[a.next]
	a.next++
	return v, a.next - 1
}

func (a *argReader) popInt() (uint64, error) {
	v, n := a.pop()
	switch i := v.(type) {
	case int:
		return uint64(i), nil
	case int8:
		return uint64(i), nil
	case int16:
		return uint64(i), nil
	case int32:
		return uint64(i), nil
	case int64:
		return uint64(i), nil
	case uint:
		return uint64(i), nil
	case uint8:
		return uint64(i), nil
	case uint16:
		return uint64(i), nil
	case uint32:
		return uint64(i), nil
	case uint64:
		return i, nil
	}
	return 0, fmt.Errorf("argument %v: cannot encode %T as an integer: %w", n, v, ErrBadType)
}

func (a *argReader) popString() (string, error) {
	v, n := a.pop()
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %v: expected string, got %T: %w", n, v, ErrBadType)
	}
	return s, nil
}

func (l litByte) encode(dst []byte, _ *argReader) ([]byte, error) {
	return append(dst, byte(l)), nil
}

func (t intToken) encode(dst []byte, src *argReader) ([]byte, error) {
	v, err := src.popInt()
	if err != nil {
		return nil, err
	}
	for shift := 8 * (t.width - 1); shift >= 0; shift -= 8 {
		dst = append(dst, byte(v>>shift))
	}
	return dst, nil
}

func (textToken) encode(dst []byte, src *argReader) ([]byte, error) {
	s, err := src.popString()
	if err != nil {
		return nil, err
	}
	if len(s) > 0xffff {
		return nil, fmt.Errorf("%v byte string does not fit a 2-byte length prefix: %w", len(s), ErrBadType)
	}
	dst = append(dst, byte(len(s)>>8), byte(len(s)))
	return append(dst, s...), nil
}

func (cstrToken) encode(dst []byte, src *argReader) ([]byte, error) {
	s, err := src.popString()
	if err != nil {
		return nil, err
	}
	n := len(s) + 1 // the prefix counts the terminator
	if n > 0xffff {
		return nil, fmt.Errorf("%v byte string does not fit a 2-byte length prefix: %w", len(s), ErrBadType)
	}
	dst = append(dst, byte(n>>8), byte(n))
	dst = append(dst, s...)
	return append(dst, 0), nil
}

func (rawToken) encode(dst []byte, src *argReader) ([]byte, error) {
	v, n := src.pop()
	switch b := v.(type) {
	case string:
		return append(dst, b...), nil
	case []byte:
		return append(dst, b...), nil
	}
	return nil, fmt.Errorf("argument %v: expected string or []byte, got %T: %w", n, v, ErrBadType)
}

func (restToken) encode([]byte, *argReader) ([]byte, error) {
	return nil, fmt.Errorf("%%# is decode only: %w", ErrBadFormat)
}

func (skipToken) encode([]byte, *argReader) ([]byte, error) {
	return nil, fmt.Errorf("%%? is decode only: %w", ErrBadFormat)
}
