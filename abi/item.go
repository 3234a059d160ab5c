package abi

import (
	"bytes"
	"math/big"
)

// Item kind tags. An item holds exactly one payload.
const (
	kindBool   byte = 'b'
	kindBig    byte = 'i'
	kindData   byte = 'd'
	kindString byte = 's'
	kindList   byte = 'l'
)

// An Item is one node in a value tree: a scalar, a byte
// string, or a list of items standing in for an array or
// tuple. Items are built with the constructors below and
// checked against a [schema.Type] by [Validate], [Encode],
// and friends. Decoded items own their payloads and keep
// no reference to the input buffer.
type Item struct {
	kind byte
	b    bool
	x    *big.Int
	d    []byte
	s    string
	l    []*Item
}

func Bool(v bool) *Item {
	return &Item{kind: kindBool, b: v}
}

func (it *Item) Bool() bool {
	return it.b
}

func BigInt(x *big.Int) *Item {
	return &Item{kind: kindBig, x: x}
}

func (it *Item) BigInt() *big.Int {
	if it.x == nil {
		return new(big.Int)
	}
	return it.x
}

// The scaled integer of a fixed point value. The scale
// lives on the descriptor, not the item.
func Decimal(scaled *big.Int) *Item {
	return BigInt(scaled)
}

func Uint64(n uint64) *Item {
	return BigInt(new(big.Int).SetUint64(n))
}

func (it *Item) Uint64() uint64 {
	return it.BigInt().Uint64()
}

func Int64(n int64) *Item {
	return BigInt(big.NewInt(n))
}

func (it *Item) Int64() int64 {
	return it.BigInt().Int64()
}

func Address(a [20]byte) *Item {
	return &Item{kind: kindData, d: a[:]}
}

func (it *Item) Address() [20]byte {
	if len(it.d) < 20 {
		return [20]byte{}
	}
	return [20]byte(it.d[len(it.d)-20:])
}

func Bytes(d []byte) *Item {
	return &Item{kind: kindData, d: d}
}

func (it *Item) Bytes() []byte {
	return it.d
}

func Bytes32(d [32]byte) *Item {
	return &Item{kind: kindData, d: d[:]}
}

func (it *Item) Bytes32() [32]byte {
	if len(it.d) < 32 {
		return [32]byte{}
	}
	return [32]byte(it.d[:32])
}

func Bytes4(d [4]byte) *Item {
	return &Item{kind: kindData, d: d[:]}
}

func (it *Item) Bytes4() [4]byte {
	if len(it.d) < 4 {
		return [4]byte{}
	}
	return [4]byte(it.d[:4])
}

func String(s string) *Item {
	return &Item{kind: kindString, s: s}
}

func (it *Item) String() string {
	return it.s
}

func Tuple(items ...*Item) *Item {
	return &Item{kind: kindList, l: items}
}

func Array(items ...*Item) *Item {
	return &Item{kind: kindList, l: items}
}

func (it *Item) At(i int) *Item {
	if len(it.l) <= i {
		return &Item{}
	}
	return it.l[i]
}

// Number of elements in a list item or bytes in a
// data item, depending on how it was constructed.
func (it *Item) Len() int {
	if len(it.l) > 0 {
		return len(it.l)
	}
	return len(it.d)
}

// Structural equality
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	if it.kind != other.kind {
		return false
	}
	switch it.kind {
	case kindBool:
		return it.b == other.b
	case kindBig:
		return it.BigInt().Cmp(other.BigInt()) == 0
	case kindData:
		return bytes.Equal(it.d, other.d)
	case kindString:
		return it.s == other.s
	case kindList:
		if len(it.l) != len(other.l) {
			return false
		}
		for i := range it.l {
			if !it.l[i].Equal(other.l[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
