package abi

import (
	"math/big"

	"github.com/evmwire/x/abi/schema"
)

// Non-standard packed mode: no offsets, no length prefixes,
// no padding. Each unit occupies its natural width, dynamic
// byte strings are concatenated raw, and nested tuples are
// flattened.

// natural width in bytes of a unit type
func unitWidth(t schema.Type) int {
	return (t.Bits + 7) / 8
}

// Whether t has a value-independent packed size
func packedStatic(t schema.Type) bool {
	switch t.Kind {
	case schema.KindBytes, schema.KindString:
		return false
	case schema.KindArray:
		return t.Length != schema.DynamicLength && packedStatic(*t.Elem)
	case schema.KindTuple:
		for i := range t.Fields {
			if !packedStatic(t.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func packedStaticSize(t schema.Type) int {
	switch t.Kind {
	case schema.KindBool:
		return 1
	case schema.KindUint, schema.KindInt, schema.KindFixed:
		return unitWidth(t)
	case schema.KindAddress:
		return 20
	case schema.KindBytesN:
		return t.N
	case schema.KindArray:
		return t.Length * packedStaticSize(*t.Elem)
	case schema.KindTuple:
		var n int
		for i := range t.Fields {
			n += packedStaticSize(t.Fields[i])
		}
		return n
	default:
		panic("abi: packed: dynamic type has no static size")
	}
}

func packedLen(t schema.Type, item *Item) int {
	switch t.Kind {
	case schema.KindBytes:
		return len(item.d)
	case schema.KindString:
		return len(item.s)
	case schema.KindArray, schema.KindTuple:
		var n int
		for i := range item.l {
			if t.Kind == schema.KindArray {
				n += packedLen(*t.Elem, item.l[i])
			} else {
				n += packedLen(t.Fields[i], item.l[i])
			}
		}
		return n
	default:
		return packedStaticSize(t)
	}
}

// Validates item against t and returns the length of its
// packed encoding.
func ByteLengthPacked(t schema.Type, item *Item) (int, error) {
	if _, err := Validate(t, item); err != nil {
		return 0, err
	}
	return packedLen(t, item), nil
}

// The non-standard packed encoding of item.
func EncodePacked(t schema.Type, item *Item) ([]byte, error) {
	n, err := ByteLengthPacked(t, item)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	encodePackedUnchecked(t, item, b)
	return b, nil
}

func encodePackedUnchecked(t schema.Type, item *Item, b []byte) {
	switch t.Kind {
	case schema.KindBool:
		if item.b {
			b[0] = 1
		}
	case schema.KindUint, schema.KindInt, schema.KindFixed:
		putWord(b[:unitWidth(t)], item.BigInt())
	case schema.KindAddress, schema.KindBytesN:
		copy(b, item.d)
	case schema.KindBytes:
		copy(b, item.d)
	case schema.KindString:
		copy(b, item.s)
	case schema.KindArray:
		var pos int
		for i := range item.l {
			n := packedLen(*t.Elem, item.l[i])
			encodePackedUnchecked(*t.Elem, item.l[i], b[pos:pos+n])
			pos += n
		}
	case schema.KindTuple:
		var pos int
		for i := range item.l {
			n := packedLen(t.Fields[i], item.l[i])
			encodePackedUnchecked(t.Fields[i], item.l[i], b[pos:pos+n])
			pos += n
		}
	default:
		panic("abi: packed: unknown kind")
	}
}

// Decodes a packed encoding. Only inputs with at most one
// dynamic element per nesting level are decodable: the
// statics anchor the front and back of the region and the
// lone dynamic element takes whatever is left between them.
func DecodePacked(t schema.Type, input []byte) (*Item, error) {
	if t.Kind != schema.KindTuple {
		wrapped := schema.Tuple(t)
		item, err := DecodePacked(wrapped, input)
		if err != nil {
			return nil, err
		}
		return item.At(0), nil
	}
	return decodePackedTuple(t, input)
}

func decodePackedTuple(t schema.Type, b []byte) (*Item, error) {
	dyn := -1
	for i := range t.Fields {
		if packedStatic(t.Fields[i]) {
			continue
		}
		if dyn >= 0 {
			return nil, perrf("multiple dynamic elements")
		}
		dyn = i
	}
	var (
		items = make([]*Item, len(t.Fields))
		pos   int
	)
	for i := range t.Fields {
		f := t.Fields[i]
		if i == dyn {
			var suffix int
			for j := i + 1; j < len(t.Fields); j++ {
				suffix += packedStaticSize(t.Fields[j])
			}
			end := len(b) - suffix
			if end < pos {
				return nil, perrf("truncated input")
			}
			item, err := decodePackedDynamic(f, b[pos:end])
			if err != nil {
				return nil, indexed(false, i, err)
			}
			items[i] = item
			pos = end
			continue
		}
		n := packedStaticSize(f)
		if pos+n > len(b) {
			return nil, perrf("truncated input")
		}
		item, err := decodePackedStatic(f, b[pos:pos+n])
		if err != nil {
			return nil, indexed(false, i, err)
		}
		items[i] = item
		pos += n
	}
	if dyn == -1 && pos != len(b) {
		return nil, perrf("unconsumed bytes: %d remaining", len(b)-pos)
	}
	return Tuple(items...), nil
}

func decodePackedDynamic(t schema.Type, b []byte) (*Item, error) {
	switch t.Kind {
	case schema.KindBytes:
		data := make([]byte, len(b))
		copy(data, b)
		return Bytes(data), nil
	case schema.KindString:
		return String(string(b)), nil
	case schema.KindArray:
		if !packedStatic(*t.Elem) {
			return nil, perrf("array of dynamic elements")
		}
		esz := packedStaticSize(*t.Elem)
		if esz == 0 {
			return nil, perrf("array of zero-length elements")
		}
		if len(b)%esz != 0 {
			return nil, perrf("input not a multiple of element size %d", esz)
		}
		items := make([]*Item, len(b)/esz)
		for i := range items {
			item, err := decodePackedStatic(*t.Elem, b[i*esz:(i+1)*esz])
			if err != nil {
				return nil, indexed(true, i, err)
			}
			items[i] = item
		}
		return Array(items...), nil
	case schema.KindTuple:
		return decodePackedTuple(t, b)
	default:
		return nil, perrf("cannot decode %s", t)
	}
}

func decodePackedStatic(t schema.Type, b []byte) (*Item, error) {
	switch t.Kind {
	case schema.KindBool:
		switch b[0] {
		case 0:
			return Bool(false), nil
		case 1:
			return Bool(true), nil
		default:
			return nil, perrf("illegal boolean value %#x", b[0])
		}
	case schema.KindUint:
		return BigInt(new(big.Int).SetBytes(b)), nil
	case schema.KindInt:
		return BigInt(packedSigned(b)), nil
	case schema.KindFixed:
		if t.Signed {
			return BigInt(packedSigned(b)), nil
		}
		return BigInt(new(big.Int).SetBytes(b)), nil
	case schema.KindAddress:
		return Address([20]byte(b)), nil
	case schema.KindBytesN:
		data := make([]byte, t.N)
		copy(data, b)
		return Bytes(data), nil
	case schema.KindArray:
		esz := packedStaticSize(*t.Elem)
		items := make([]*Item, t.Length)
		for i := range items {
			item, err := decodePackedStatic(*t.Elem, b[i*esz:(i+1)*esz])
			if err != nil {
				return nil, indexed(true, i, err)
			}
			items[i] = item
		}
		return Array(items...), nil
	case schema.KindTuple:
		items := make([]*Item, len(t.Fields))
		var pos int
		for i := range t.Fields {
			n := packedStaticSize(t.Fields[i])
			item, err := decodePackedStatic(t.Fields[i], b[pos:pos+n])
			if err != nil {
				return nil, indexed(false, i, err)
			}
			items[i] = item
			pos += n
		}
		return Tuple(items...), nil
	default:
		return nil, perrf("unknown kind %c", t.Kind)
	}
}

func packedSigned(b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return x
}
