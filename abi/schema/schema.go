// ABI type descriptors
//
// A [Type] describes the shape of a single ABI value: a unit type
// such as uint256 or bool, a dynamic type such as bytes or string,
// or a composite array or tuple. Types are built once, either with
// the constructors in this package or with [Parse], and are
// read-only after that. They may be shared freely.
package schema

import (
	"fmt"
	"strings"
)

// Kind tags. Each Type carries exactly one.
const (
	KindBool    byte = 'b'
	KindUint    byte = 'u'
	KindInt     byte = 'i'
	KindFixed   byte = 'x'
	KindBytesN  byte = 'n'
	KindAddress byte = 'e'
	KindBytes   byte = 'd'
	KindString  byte = 's'
	KindArray   byte = 'a'
	KindTuple   byte = 't'
)

// Sentinel for the Length of a dynamically sized array.
const DynamicLength = -1

type Type struct {
	Kind   byte
	Static bool
	Size   int

	// integer and fixed-point units
	Bits   int
	Signed bool
	Scale  int

	// bytesN
	N int

	// array
	Length int
	Elem   *Type

	// tuple
	Fields []Type
	Names  []string
}

func Bool() Type {
	return Type{Kind: KindBool, Static: true, Size: 32}
}

func Address() Type {
	return Type{Kind: KindAddress, Static: true, Size: 32, Bits: 160}
}

func Uint(bits int) Type {
	return Type{Kind: KindUint, Static: true, Size: 32, Bits: bits}
}

func Int(bits int) Type {
	return Type{Kind: KindInt, Static: true, Size: 32, Bits: bits, Signed: true}
}

func Ufixed(m, d int) Type {
	return Type{Kind: KindFixed, Static: true, Size: 32, Bits: m, Scale: d}
}

func Fixed(m, d int) Type {
	return Type{Kind: KindFixed, Static: true, Size: 32, Bits: m, Scale: d, Signed: true}
}

func BytesN(n int) Type {
	return Type{Kind: KindBytesN, Static: true, Size: 32, N: n}
}

func Bytes() Type {
	return Type{Kind: KindBytes}
}

func String() Type {
	return Type{Kind: KindString}
}

// Dynamically sized array of e
func Array(e Type) Type {
	return Type{Kind: KindArray, Elem: &e, Length: DynamicLength}
}

// Array of exactly k elements of e
func ArrayK(k int, e Type) Type {
	t := Type{Kind: KindArray, Elem: &e, Length: k}
	if e.Static {
		t.Static = true
		t.Size = k * e.Size
	}
	return t
}

func Tuple(fields ...Type) Type {
	t := Type{Kind: KindTuple, Static: true, Fields: fields}
	for i := range fields {
		if !fields[i].Static {
			t.Static = false
			t.Size = 0
			return t
		}
		t.Size += fields[i].Size
	}
	return t
}

// Canonical type string. Tuples render with no spaces
// and default widths expanded, eg (uint256,bytes32[2])
func (t Type) String() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindUint:
		return fmt.Sprintf("uint%d", t.Bits)
	case KindInt:
		return fmt.Sprintf("int%d", t.Bits)
	case KindFixed:
		if t.Signed {
			return fmt.Sprintf("fixed%dx%d", t.Bits, t.Scale)
		}
		return fmt.Sprintf("ufixed%dx%d", t.Bits, t.Scale)
	case KindBytesN:
		return fmt.Sprintf("bytes%d", t.N)
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	case KindArray:
		if t.Length == DynamicLength {
			return t.Elem.String() + "[]"
		}
		return fmt.Sprintf("%s[%d]", t.Elem.String(), t.Length)
	case KindTuple:
		var s strings.Builder
		s.WriteString("(")
		for i := range t.Fields {
			s.WriteString(t.Fields[i].String())
			if i+1 != len(t.Fields) {
				s.WriteString(",")
			}
		}
		s.WriteString(")")
		return s.String()
	default:
		return fmt.Sprintf("unknown-kind=%c", t.Kind)
	}
}

// Whether the encoded size depends on the value. True for
// bytes, string, dynamically sized arrays, and composites
// containing any of those.
func (t Type) Dynamic() bool {
	return !t.Static
}

// Number of head bytes the type occupies inside an
// enclosing tuple or array. A static type is inlined
// so its head is its full size. A dynamic type gets
// a 32 byte offset slot.
func (t Type) HeadLength() int {
	if t.Static {
		return t.Size
	}
	return 32
}

// Structural equality. Tuple element names are metadata
// and do not participate.
func (t Type) Equal(other Type) bool {
	return t.String() == other.String()
}

// Number of tuple fields or the array length
func (t Type) Len() int {
	if t.Kind == KindArray {
		return t.Length
	}
	return len(t.Fields)
}

// Field i of a tuple or the element type of an array
func (t Type) At(i int) Type {
	if t.Kind == KindArray {
		return *t.Elem
	}
	return t.Fields[i]
}

// Attaches field names to a tuple type. The names
// vector is parallel to the fields.
func (t Type) WithNames(names ...string) (Type, error) {
	if t.Kind != KindTuple {
		return t, errf("names require a tuple type, have %s", t)
	}
	if len(names) != len(t.Fields) {
		return t, errf("%d names for %d fields", len(names), len(t.Fields))
	}
	t.Names = names
	return t, nil
}

// New tuple containing the fields where mask is true.
// len(mask) must equal the tuple's arity.
func (t Type) Select(mask []bool) (Type, error) {
	return t.subTuple(mask, false)
}

// New tuple containing the fields where mask is false.
// len(mask) must equal the tuple's arity.
func (t Type) Exclude(mask []bool) (Type, error) {
	return t.subTuple(mask, true)
}

func (t Type) subTuple(mask []bool, negate bool) (Type, error) {
	if t.Kind != KindTuple {
		return t, errf("select requires a tuple type, have %s", t)
	}
	if len(mask) != len(t.Fields) {
		return t, errf("mask length mismatch: %d != %d", len(mask), len(t.Fields))
	}
	var (
		fields []Type
		names  []string
	)
	for i := range t.Fields {
		if negate != mask[i] {
			fields = append(fields, t.Fields[i])
			if t.Names != nil {
				names = append(names, t.Names[i])
			}
		}
	}
	sub := Tuple(fields...)
	sub.Names = names
	return sub, nil
}
