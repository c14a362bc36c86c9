package query

import (
	"fmt"
)

// widths maps the fixed-width integer tokens to their size in bytes.
var widths = map[byte]int{
	'b': 1,
	'w': 2,
	'd': 4,
	'q': 8,
}

// instruction is one directive of a compiled format string.
// The implementations below are the closed set of kinds the grammar knows.
type instruction interface {
	encode(dst []byte, src *argReader) ([]byte, error)
	decode(src *scanner, dst []any) ([]any, error)
}

type (
	// litByte writes itself when encoding, and must equal the next input
	// byte when decoding.
	litByte byte

	// intToken is a fixed-width big-endian integer; %b, %w, %d and %q.
	intToken struct{ width int }

	// textToken is text with a 2-byte length prefix; %x.
	textToken struct{}

	// cstrToken is text with a 2-byte length prefix counting a NUL
	// terminator that follows the text; %s. The terminator is written and
	// consumed, but is never part of the value.
	cstrToken struct{}

	// rawToken is %*; unprefixed text or bytes when encoding, and the
	// rest of the input as text when decoding.
	rawToken struct{}

	// restToken is %#; the rest of the input as bytes. Decode only.
	restToken struct{}

	// skipToken is %?; discards one input byte. Decode only.
	skipToken struct{}
)

// Compile parses a format string, returning the Format that encodes and
// decodes payloads of its shape. The whole string is validated here, before
// any arguments or input bytes are ever consumed; Encode and Decode never
// fail on grammar.
func Compile(format string) (*Format, error) {
	f := &Format{src: format}
	var (
		half    byte // high half of a pending literal byte
		pending bool
		escaped bool
	)

	for i := 0; i < len(format); i++ {
		c := format[i]

		if escaped {
			escaped = false
			if w, ok := widths[c]; ok {
				f.prog = append(f.prog, intToken{width: w})
				continue
			}
			switch c {
			case 'x':
				f.prog = append(f.prog, textToken{})
			case 's':
				f.prog = append(f.prog, cstrToken{})
			case '*':
				f.prog = append(f.prog, rawToken{})
			case '#':
				f.prog = append(f.prog, restToken{})
			case '?':
				f.prog = append(f.prog, skipToken{})
			default:
				return nil, fmt.Errorf("unrecognized format char %q at position %v: %w", c, i, ErrBadFormat)
			}
			continue
		}

		switch {
		case c == '%':
			if pending {
				return nil, fmt.Errorf("escape inside a literal byte at position %v: %w", i, ErrBadFormat)
			}
			escaped = true
		case c == ' ':
			// Seperator only. It carries no meaning at all; the two digits
			// of a literal byte may even span one.
		default:
			d, ok := hexDigit(c)
			if !ok {
				return nil, fmt.Errorf("unrecognized character %q at position %v: %w", c, i, ErrBadFormat)
			}
			if !pending {
				half, pending = d, true
			} else {
				f.prog = append(f.prog, litByte(half<<4|d))
				pending = false
			}
		}
	}

	if escaped {
		return nil, fmt.Errorf("dangling escape at end of format: %w", ErrBadFormat)
	}
	if pending {
		return nil, fmt.Errorf("dangling hex digit at end of format: %w", ErrBadFormat)
	}

	for _, in := range f.prog {
		switch t := in.(type) {
		case litByte:
			f.size++
		case intToken:
			f.nargs++
			f.nvals++
			f.size += t.width
		case textToken:
			f.nargs++
			f.nvals++
			f.size += 2
		case cstrToken:
			f.nargs++
			f.nvals++
			f.size += 3
		case rawToken:
			f.nargs++
			f.nvals++
		case restToken:
			f.nvals++
		case skipToken:
			f.size++
		}
	}

	return f, nil
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
