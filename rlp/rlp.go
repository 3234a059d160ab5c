// This package implements a reader and encoder for
// Ethereum's Recursive-Length Prefix (RLP) Serialization.
// For a detailed description of RLP, see Ethereum's page:
// https://ethereum.org/en/developers/docs/data-structures-and-encoding/rlp/
//
// An [Item] is a view into the backing buffer. Wrapping a
// buffer parses one header and never copies payload bytes;
// the caller must not mutate the buffer while items into it
// are in use.
package rlp

import (
	"errors"
	"fmt"

	"github.com/evmwire/x/bint"
)

const (
	str1L, str1H     byte = 000, 127
	str55L, str55H   byte = 128, 183
	strNL, strNH     byte = 184, 191
	list55L, list55H byte = 192, 247
	listNL, listNH   byte = 248, 255
)

// Payload lengths at or above this use the long form
const minLongLength = 56

// A MalformedError reports an RLP header or payload that
// violates the encoding, including the canonical-form
// checks when decoding strictly.
type MalformedError struct {
	msg string
}

func (e *MalformedError) Error() string {
	return "rlp: " + e.msg
}

func merrf(format string, args ...any) *MalformedError {
	return &MalformedError{msg: fmt.Sprintf(format, args...)}
}

// distinguishes "not enough bytes yet" for [Stream]
var errIncomplete = errors.New("rlp: incomplete item")

// A Decoder carries the canonical-form profile. The zero
// value is strict: every item must use its minimal
// encoding. Lenient omits the minimal-form checks but
// still rejects items that overrun their region.
type Decoder struct {
	Lenient bool
}

var (
	Strict  = Decoder{}
	Lenient = Decoder{Lenient: true}
)

// One RLP item: a string or a list, as a view into the
// buffer it was wrapped from.
type Item struct {
	dec        Decoder
	buf        []byte
	start      int
	dataIndex  int
	dataLength int
	end        int
	list       bool
}

// Wraps the item beginning at buf[0]
func (d Decoder) Wrap(buf []byte) (Item, error) {
	return d.wrap(buf, 0, len(buf))
}

// Wraps the item beginning at buf[i]
func (d Decoder) WrapAt(buf []byte, i int) (Item, error) {
	return d.wrap(buf, i, len(buf))
}

func (d Decoder) wrap(buf []byte, i, end int) (Item, error) {
	if i < 0 || i >= end || end > len(buf) {
		return Item{}, merrf("input has no bytes")
	}
	hdr, payload, list, err := d.header(buf[i:end])
	if err == errIncomplete {
		return Item{}, merrf("input has fewer bytes than specified by header")
	}
	if err != nil {
		return Item{}, err
	}
	if i+hdr+payload > end {
		return Item{}, merrf("item extends past enclosing region")
	}
	return Item{
		dec:        d,
		buf:        buf,
		start:      i,
		dataIndex:  i + hdr,
		dataLength: payload,
		end:        i + hdr + payload,
		list:       list,
	}, nil
}

// Parses the header at b[0], returning the header length
// in bytes (0 for a bare byte), the payload length, and
// whether the item is a list. Returns errIncomplete when b
// holds too few bytes to parse the header.
func (d Decoder) header(b []byte) (hdr, payload int, list bool, err error) {
	if len(b) == 0 {
		return 0, 0, false, errIncomplete
	}
	switch {
	case b[0] <= str1H:
		return 0, 1, false, nil
	case b[0] <= str55H:
		n := int(b[0] - str55L)
		if n == 1 && !d.Lenient {
			if len(b) < 2 {
				return 0, 0, false, errIncomplete
			}
			if b[1] <= str1H {
				return 0, 0, false, merrf("non-canonical: single byte below 0x80 must encode itself")
			}
		}
		return 1, n, false, nil
	case b[0] <= strNH:
		hdr, payload, err = d.longLength(str55H, b)
		return hdr, payload, false, err
	case b[0] <= list55H:
		return 1, int(b[0] - list55L), true, nil
	default:
		hdr, payload, err = d.longLength(list55H, b)
		return hdr, payload, true, err
	}
}

// Long-form length: b[0]-base bytes of big-endian length
// follow the first byte, naming a payload of 56 or more.
func (d Decoder) longLength(base byte, b []byte) (hdr, payload int, err error) {
	lol := int(b[0] - base)
	if len(b) < 1+lol {
		return 0, 0, errIncomplete
	}
	if !d.Lenient && b[1] == 0 {
		return 0, 0, merrf("non-canonical: leading zero in length of length")
	}
	n := bint.Decode(b[1 : 1+lol])
	if n > 1<<31-1 {
		return 0, 0, merrf("length exceeds limit: %d", n)
	}
	if !d.Lenient && n < minLongLength {
		return 0, 0, merrf("non-canonical: long form used for length %d", n)
	}
	return 1 + lol, int(n), nil
}

func (it Item) IsList() bool {
	return it.list
}

// The payload bytes. A view, not a copy.
func (it Item) Data() []byte {
	return it.buf[it.dataIndex : it.dataIndex+it.dataLength]
}

// Header and payload
func (it Item) Encoding() []byte {
	return it.buf[it.start:it.end]
}

func (it Item) EncodingLength() int {
	return it.end - it.start
}

// Index of the first byte past the item within the
// backing buffer
func (it Item) EndIndex() int {
	return it.end
}

// Decodes the list payload into consecutive sub-items.
// Only child views are allocated.
func (it Item) Elements() ([]Item, error) {
	if !it.list {
		return nil, merrf("item is not a list")
	}
	var res []Item
	for i := it.dataIndex; i < it.end; {
		sub, err := it.dec.wrap(it.buf, i, it.end)
		if err != nil {
			return nil, err
		}
		res = append(res, sub)
		i = sub.end
	}
	return res, nil
}

// Appends the RLP encoding of d as a string item
func AppendString(dst, d []byte) []byte {
	switch n := len(d); {
	case n == 1 && d[0] <= str1H:
		return append(dst, d[0])
	case n <= 55:
		return append(append(dst, str55L+byte(n)), d...)
	default:
		return append(appendLength(dst, str55H, n), d...)
	}
}

// Appends the RLP encoding of n as a minimal big-endian
// string item. Zero encodes as the empty string.
func AppendUint64(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, str55L)
	}
	return AppendString(dst, bint.Encode(nil, n))
}

// Appends a list header for payload followed by payload,
// which must be the concatenation of already-encoded
// elements.
func AppendList(dst, payload []byte) []byte {
	if len(payload) <= 55 {
		return append(append(dst, list55L+byte(len(payload))), payload...)
	}
	return append(appendLength(dst, list55H, len(payload)), payload...)
}

func appendLength(dst []byte, base byte, n int) []byte {
	s := bint.Size(uint64(n))
	dst = append(dst, base+byte(s))
	return append(dst, bint.Encode(nil, uint64(n))...)
}
