package query

import (
	"errors"
	"fmt"
)

// Error handling in query reuses a small set of sentinel errors for as many
// error cases as possible, with extra information wrapped as applicable.
// Every failure is fatal to the call that raised it; there are no partial
// results to recover. Panics are only used when there is a clear misuse of
// the library; programmer error.
var (
	// ErrBadFormat is returned when a format string cannot be compiled, or
	// when a format holding decode-only tokens is asked to encode.
	ErrBadFormat = errors.New("bad format string")

	// ErrBadType is returned when an argument's type is wrong for the token
	// consuming it, or a string argument is too long for its length prefix.
	ErrBadType = errors.New("bad argument type")

	// ErrArgCount is returned by Encode when the number of arguments given
	// differs from the number the format's tokens consume.
	ErrArgCount = errors.New("wrong argument count")

	// ErrMismatch is returned by Decode when a literal byte in the format
	// string differs from the input. It is wrapped by MismatchError.
	ErrMismatch = errors.New("literal mismatch")

	// ErrRemaining is returned by Decode when input bytes remain after the
	// format string ends; a format must describe its input completely.
	ErrRemaining = errors.New("bytes remaining")
)

// MismatchError describes a literal byte in the format string that did not
// match the input during decoding.
type MismatchError struct {
	Offset int  // index of the offending input byte
	Want   byte // the literal byte the format expects
	Got    byte // the byte found in the input
}

// Error implements error
func (e MismatchError) Error() string {
	return fmt.Sprintf("literal mismatch at offset %v: expected %#02x, got %#02x", e.Offset, e.Want, e.Got)
}

// Unwrap implements errors's Unwrap()
func (e MismatchError) Unwrap() error {
	return ErrMismatch
}
