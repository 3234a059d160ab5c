// ABI encoding/decoding
//
// Implementation based on the [ABI Spec]. Values are [Item]
// trees and type shapes are [schema.Type] trees; the two are
// brought together here to validate, measure, encode, and
// decode. Encoding always validates first and writes into a
// buffer of the exact size.
//
// [ABI Spec]: https://docs.soliditylang.org/en/latest/abi-spec.html
package abi

import (
	"math/big"
	"unicode/utf8"

	"github.com/evmwire/x/abi/schema"
	"github.com/evmwire/x/bint"
)

func (it *Item) kindName() string {
	switch it.kind {
	case kindBool:
		return "bool"
	case kindBig:
		return "integer"
	case kindData:
		return "bytes"
	case kindString:
		return "string"
	case kindList:
		return "list"
	default:
		return "empty"
	}
}

// bitLen(-x-1) for negative x, per two's complement
func signedBitLen(x *big.Int) int {
	if x.Sign() >= 0 {
		return x.BitLen()
	}
	return new(big.Int).Not(x).BitLen()
}

func checkUnsigned(t schema.Type, x *big.Int) error {
	if x.Sign() < 0 {
		return verrf("%s: unsigned value is negative: %s", t, x)
	}
	if x.BitLen() > t.Bits {
		return verrf("%s: unsigned has too many bits: %d > %d", t, x.BitLen(), t.Bits)
	}
	return nil
}

func checkSigned(t schema.Type, x *big.Int) error {
	if n := signedBitLen(x); n >= t.Bits {
		return verrf("%s: signed has too many bits: %d is not less than %d", t, n, t.Bits)
	}
	return nil
}

// Checks item against t, returning the exact encoded byte
// length, or a [*ValidationError] carrying the traversal
// path. No allocation happens on the failure path.
func Validate(t schema.Type, item *Item) (int, error) {
	if item == nil {
		return 0, verrf("%s: null value", t)
	}
	switch t.Kind {
	case schema.KindBool:
		if item.kind != kindBool {
			return 0, verrf("%s requires a bool item, have %s", t, item.kindName())
		}
		return 32, nil
	case schema.KindUint:
		if item.kind != kindBig {
			return 0, verrf("%s requires an integer item, have %s", t, item.kindName())
		}
		if err := checkUnsigned(t, item.BigInt()); err != nil {
			return 0, err
		}
		return 32, nil
	case schema.KindInt:
		if item.kind != kindBig {
			return 0, verrf("%s requires an integer item, have %s", t, item.kindName())
		}
		if err := checkSigned(t, item.BigInt()); err != nil {
			return 0, err
		}
		return 32, nil
	case schema.KindFixed:
		if item.kind != kindBig {
			return 0, verrf("%s requires an integer item, have %s", t, item.kindName())
		}
		if t.Signed {
			if err := checkSigned(t, item.BigInt()); err != nil {
				return 0, err
			}
		} else if err := checkUnsigned(t, item.BigInt()); err != nil {
			return 0, err
		}
		return 32, nil
	case schema.KindAddress:
		if item.kind != kindData {
			return 0, verrf("address requires a bytes item, have %s", item.kindName())
		}
		if len(item.d) != 20 {
			return 0, verrf("address must be 20 bytes, have %d", len(item.d))
		}
		return 32, nil
	case schema.KindBytesN:
		if item.kind != kindData {
			return 0, verrf("%s requires a bytes item, have %s", t, item.kindName())
		}
		if len(item.d) != t.N {
			return 0, verrf("%s must be %d bytes, have %d", t, t.N, len(item.d))
		}
		return 32, nil
	case schema.KindBytes:
		if item.kind != kindData {
			return 0, verrf("bytes requires a bytes item, have %s", item.kindName())
		}
		return 32 + bint.RoundUp(len(item.d), 32), nil
	case schema.KindString:
		if item.kind != kindString {
			return 0, verrf("string requires a string item, have %s", item.kindName())
		}
		if !utf8.ValidString(item.s) {
			return 0, verrf("string is not valid UTF-8")
		}
		return 32 + bint.RoundUp(len(item.s), 32), nil
	case schema.KindArray:
		if item.kind != kindList {
			return 0, verrf("%s requires a list item, have %s", t, item.kindName())
		}
		var n int
		if t.Length == schema.DynamicLength {
			n = 32
		} else if t.Length != len(item.l) {
			return 0, verrf("array length mismatch: actual != expected: %d != %d", len(item.l), t.Length)
		}
		for i := range item.l {
			m, err := Validate(*t.Elem, item.l[i])
			if err != nil {
				return 0, indexed(true, i, err)
			}
			if t.Elem.Static {
				n += m
			} else {
				n += 32 + m
			}
		}
		return n, nil
	case schema.KindTuple:
		if item.kind != kindList {
			return 0, verrf("%s requires a list item, have %s", t, item.kindName())
		}
		if len(item.l) != len(t.Fields) {
			return 0, verrf("tuple length mismatch: actual != expected: %d != %d", len(item.l), len(t.Fields))
		}
		var n int
		for i := range t.Fields {
			m, err := Validate(t.Fields[i], item.l[i])
			if err != nil {
				return 0, indexed(false, i, err)
			}
			if t.Fields[i].Static {
				n += m
			} else {
				n += 32 + m
			}
		}
		return n, nil
	default:
		return 0, verrf("unknown kind %c", t.Kind)
	}
}

// Encoded size of a validated item. The same walk as
// [Validate] minus the checks, used to place offsets.
func measure(t schema.Type, item *Item) int {
	if t.Static {
		return t.Size
	}
	switch t.Kind {
	case schema.KindBytes:
		return 32 + bint.RoundUp(len(item.d), 32)
	case schema.KindString:
		return 32 + bint.RoundUp(len(item.s), 32)
	case schema.KindArray:
		var n int
		if t.Length == schema.DynamicLength {
			n = 32
		}
		for i := range item.l {
			if t.Elem.Static {
				n += t.Elem.Size
			} else {
				n += 32 + measure(*t.Elem, item.l[i])
			}
		}
		return n
	case schema.KindTuple:
		var n int
		for i := range t.Fields {
			if t.Fields[i].Static {
				n += t.Fields[i].Size
			} else {
				n += 32 + measure(t.Fields[i], item.l[i])
			}
		}
		return n
	default:
		panic("abi: measure: dynamic unit type")
	}
}

// ABI encoding. Not packed. Validates item against t,
// allocates a buffer of the exact size, and writes the
// head/tail layout into it.
func Encode(t schema.Type, item *Item) ([]byte, error) {
	n, err := Validate(t, item)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	encodeTail(t, item, b)
	return b, nil
}

// Like [Encode] but writes into dst, returning the number
// of bytes written.
func EncodeInto(t schema.Type, item *Item, dst []byte) (int, error) {
	n, err := Validate(t, item)
	if err != nil {
		return 0, err
	}
	if len(dst) < n {
		return 0, verrf("destination too small: %d < %d", len(dst), n)
	}
	encodeTail(t, item, dst[:n])
	return n, nil
}

// two's complement into a slot of len(b) bytes
func putWord(b []byte, x *big.Int) {
	if x.Sign() >= 0 {
		x.FillBytes(b)
		return
	}
	u := new(big.Int).Lsh(big.NewInt(1), uint(8*len(b)))
	u.Add(u, x)
	u.FillBytes(b)
}

// Writes the validated item into b. len(b) is exactly
// the measured size of the item.
func encodeTail(t schema.Type, item *Item, b []byte) {
	switch t.Kind {
	case schema.KindBool:
		if item.b {
			b[31] = 1
		}
	case schema.KindUint, schema.KindInt, schema.KindFixed:
		putWord(b[:32], item.BigInt())
	case schema.KindAddress:
		copy(b[12:32], item.d)
	case schema.KindBytesN:
		copy(b[:t.N], item.d)
	case schema.KindBytes:
		bint.Encode(b[:32], uint64(len(item.d)))
		copy(b[32:], item.d)
	case schema.KindString:
		bint.Encode(b[:32], uint64(len(item.s)))
		copy(b[32:], item.s)
	case schema.KindArray:
		region := b
		if t.Length == schema.DynamicLength {
			bint.Encode(b[:32], uint64(len(item.l)))
			region = b[32:]
		}
		encodeElems(func(int) schema.Type { return *t.Elem }, item.l, region)
	case schema.KindTuple:
		encodeElems(func(i int) schema.Type { return t.Fields[i] }, item.l, b)
	default:
		panic("abi: encode: unknown kind")
	}
}

// One pass over the head. Offsets accumulate tail size and
// each dynamic child's tail is written at its offset as its
// slot is filled, so tails land in declaration order.
func encodeElems(typeAt func(int) schema.Type, items []*Item, b []byte) {
	var hlen int
	for i := range items {
		hlen += typeAt(i).HeadLength()
	}
	pos, tail := 0, hlen
	for i := range items {
		ft := typeAt(i)
		if ft.Static {
			encodeTail(ft, items[i], b[pos:pos+ft.Size])
			pos += ft.Size
			continue
		}
		bint.Encode(b[pos:pos+32], uint64(tail))
		n := measure(ft, items[i])
		encodeTail(ft, items[i], b[tail:tail+n])
		pos += 32
		tail += n
	}
}
