// Package query compiles and evaluates the format strings that describe
// binary query payloads.
//
// A format string is a byte-level template, read left to right. Bare hex
// digit pairs are literal bytes; they are written out when encoding and
// checked against the input when decoding. Spaces separate and mean
// nothing. A % escape followed by one character is a token, standing in
// for one value:
//
//	%b %w %d %q  big-endian unsigned integer of 1, 2, 4 or 8 bytes
//	%x           text with a 2-byte big-endian length prefix
//	%s           like %x, but the prefix counts a NUL terminator which
//	             follows the text and is not part of the value
//	%*           encoding: text or bytes written raw with no prefix;
//	             decoding: the rest of the input as text
//	%#           the rest of the input as bytes (decode only)
//	%?           skip one input byte (decode only)
//
// Compile builds a reusable Format from a string. Encode renders arguments
// into a payload and Decode does the reverse, failing if any literal byte
// differs or if input remains when the format ends.
package query

// Format is a compiled format string.
// It is immutable, and safe for concurrent use by multiple goroutines.
type Format struct {
	src   string
	prog  []instruction
	nargs int
	nvals int
	size  int // bytes the format always occupies; prefixed text adds more
}

// MustCompile is like Compile, but panics if the format string cannot be
// compiled. It simplifies the safe initialisation of variables holding
// known-good formats.
func MustCompile(format string) *Format {
	f, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return f
}

// NumArgs returns the number of arguments Encode consumes.
func (f *Format) NumArgs() int { return f.nargs }

// NumValues returns the number of values Decode produces.
func (f *Format) NumValues() int { return f.nvals }

// String returns the source format string.
func (f *Format) String() string { return f.src }
