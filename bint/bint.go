// big endian, minimal-length integer encoding/decoding
package bint

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Encodes a uint64 into a big-endian byte slice
// To avoid an allocation, or to have a padded result,
// supply an initialized value for b -otherwise use nil.
// Panics when provided slice is too small for n.
func Encode(b []byte, n uint64) []byte {
	if b == nil {
		s := Size(n)
		if s == 0 {
			s = 1
		}
		b = make([]byte, s)
	}
	if Size(n) > len(b) {
		panic("bint: supplied slice is too small for input")
	}
	for i := len(b) - 1; n > 0; i-- {
		b[i] = byte(n & 0xff)
		n = n >> 8
	}
	return b
}

// Number of bytes in the minimal big-endian
// encoding of n. Zero encodes in zero bytes.
func Size(n uint64) (s int) {
	for n > 0 {
		n = n >> 8
		s++
	}
	return
}

// Decodes big-endian byte array into a uint64
// left-padded zero bytes are ignored.
// Disregards extra bytes if len(b) > 8
func Decode(b []byte) uint64 {
	var n uint64
	for i := 0; i < len(b); i++ {
		n = n << 8
		n += uint64(b[i])
	}
	return n
}

// Position of the most significant 1 bit. Zero for zero.
func BitLen(n uint64) (s int) {
	for n > 0 {
		n = n >> 1
		s++
	}
	return
}

// Rounds n up to the nearest multiple of unit.
// Panics on negative input since a length can never be negative.
func RoundUp(n, unit int) int {
	if n < 0 || unit <= 0 {
		panic("bint: negative length")
	}
	rem := n % unit
	if rem == 0 {
		return n
	}
	return n + unit - rem
}

func CheckMultiple(n, unit int) error {
	if n < 0 {
		return fmt.Errorf("bint: negative length: %d", n)
	}
	if n%unit != 0 {
		return fmt.Errorf("bint: %d is not a multiple of %d", n, unit)
	}
	return nil
}

func Uint16(b []byte) uint16 { return uint16(Decode(b)) }
func Uint32(b []byte) uint32 { return uint32(Decode(b)) }
func Uint64(b []byte) uint64 { return uint64(Decode(b)) }

func Uint256(b []byte) uint256.Int {
	var i uint256.Int
	i.SetBytes(b)
	return i
}
