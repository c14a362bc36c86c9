// Package netmdq builds and parses the binary query payloads exchanged
// with NetMD recorders.
//
// A single format string describes a payload in both directions.
// FormatQuery renders arguments into bytes, and ScanQuery pulls values
// back out of a received payload, verifying every literal byte on the
// way. Formats compiled through this package are cached, so repeated use
// of the same string pays for one compile.
//
// netmdq/query holds the format language itself; compiling a Format once
// and reusing it skips even the cache lookup.
//
// netmdq/bcd converts the binary-coded decimal fields NetMD devices use
// for track numbers and time codes.
package netmdq

import (
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/stewi1014/netmdq/query"
)

// formats holds every format string successfully compiled through
// FormatQuery or ScanQuery. Formats are immutable; if two goroutines race
// to compile the same string the loser's copy is dropped, nothing else.
var formats = xsync.NewMapOf[string, *query.Format]()

func compile(format string) (*query.Format, error) {
	if f, ok := formats.Load(format); ok {
		return f, nil
	}
	f, err := query.Compile(format)
	if err != nil {
		return nil, err
	}
	formats.Store(format, f)
	return f, nil
}

// FormatQuery encodes args into the payload format describes.
func FormatQuery(format string, args ...any) ([]byte, error) {
	f, err := compile(format)
	if err != nil {
		return nil, err
	}
	return f.Encode(args...)
}

// ScanQuery decodes data, a payload of format's shape, into its values.
func ScanQuery(data []byte, format string) ([]any, error) {
	f, err := compile(format)
	if err != nil {
		return nil, err
	}
	return f.Decode(data)
}
