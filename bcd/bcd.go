// Package bcd converts between unsigned integers and their packed
// binary-coded decimal form; every 4-bit nibble holds one decimal digit,
// least significant digit in the lowest nibble.
package bcd

import (
	"errors"
	"fmt"
)

var (
	// ErrSize is returned by Encode when size is not between 1 and 4 bytes.
	ErrSize = errors.New("bcd size out of range")

	// ErrRange is returned by Encode when the value needs more decimal
	// digits than size holds.
	ErrRange = errors.New("value out of range")
)

// maxValue[size] is the largest value that fits in size bytes of packed
// decimal digits.
var maxValue = [5]uint64{0, 99, 9999, 999999, 99999999}

// Decode unpacks a binary-coded decimal into the number it spells.
// Every input decodes; nibbles above 9 are not rejected, they carry their
// value into the digit sum like any other.
func Decode(packed uint64) uint64 {
	v := uint64(0)
	place := uint64(1)
	for packed != 0 {
		v += (packed & 0xf) * place
		packed >>= 4
		place *= 10
	}
	return v
}

// Encode packs v into size bytes of binary-coded decimal.
// size must be between 1 and 4, and v must fit in size*2 decimal digits.
func Encode(v uint64, size int) (uint64, error) {
	if size < 1 || size > 4 {
		return 0, fmt.Errorf("%v bytes: %w", size, ErrSize)
	}
	if v > maxValue[size] {
		return 0, fmt.Errorf("%v needs more than %v decimal digits: %w", v, size*2, ErrRange)
	}

	var packed uint64
	for shift := 0; v > 0; shift += 4 {
		packed |= (v % 10) << shift
		v /= 10
	}
	return packed, nil
}

// DecodeByte unpacks a single byte holding two decimal digits.
func DecodeByte(b byte) uint8 {
	return (b>>4)*10 + b&0x0f
}

// EncodeByte packs n into a single byte of two decimal digits.
// Values above 99 don't fit; the result is truncated.
// Encode(n, 1) is the checked equivalent.
func EncodeByte(n uint8) byte {
	return n/10<<4 | n%10
}
