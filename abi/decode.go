package abi

import (
	"math/big"

	"github.com/evmwire/x/abi/schema"
	"github.com/evmwire/x/bint"
)

// Decoded offsets and lengths are bounded to 31 bits so a
// hostile input cannot demand a multi-GiB allocation.
const MaxOffset = 1<<31 - 1

// A Decoder carries the offset-jump profile. The zero value
// is strict: every dynamic payload must begin exactly where
// the previous one ended. Lenient permits forward skips the
// way Solidity's decoder does.
//
// See https://github.com/ethereum/solidity/commit/3d1ca07
type Decoder struct {
	Lenient bool
}

var (
	Strict  = Decoder{}
	Lenient = Decoder{Lenient: true}
)

// Strict.Decode
func Decode(t schema.Type, input []byte) (*Item, error) {
	return Strict.Decode(t, input)
}

// Strict.DecodeIndex
func DecodeIndex(t schema.Type, input []byte, i int) (*Item, error) {
	return Strict.DecodeIndex(t, input, i)
}

// Decodes input into a fully materialized [Item] tree.
// The entire input must be consumed or the decode fails.
func (d Decoder) Decode(t schema.Type, input []byte) (*Item, error) {
	item, end, err := d.decode(t, input, 0)
	if err != nil {
		return nil, err
	}
	if rem := len(input) - end; rem != 0 {
		return nil, derrf("unconsumed bytes: %d remaining", rem)
	}
	return item, nil
}

// Like [Decoder.Decode] but starts at pos and leaves
// trailing bytes alone, returning the position after the
// consumed range.
func (d Decoder) DecodeAt(t schema.Type, input []byte, pos int) (*Item, int, error) {
	return d.decode(t, input, pos)
}

// Decodes only child i of the encoded tuple, walking the
// static head sizes of children 0..i-1 instead of
// materializing them.
func (d Decoder) DecodeIndex(t schema.Type, input []byte, i int) (*Item, error) {
	if t.Kind != schema.KindTuple {
		return nil, derrf("decode index requires a tuple type, have %s", t)
	}
	if i < 0 || i >= len(t.Fields) {
		return nil, derrf("index out of bounds: %d", i)
	}
	var pos int
	for j := 0; j < i; j++ {
		pos += t.Fields[j].HeadLength()
	}
	ft := t.Fields[i]
	if ft.Static {
		item, _, err := d.decode(ft, input, pos)
		return item, err
	}
	w, err := word(input, pos)
	if err != nil {
		return nil, err
	}
	off, err := offset31(w)
	if err != nil {
		return nil, err
	}
	item, _, err := d.decode(ft, input, off)
	return item, err
}

func word(b []byte, pos int) ([]byte, error) {
	if pos < 0 || pos+32 > len(b) {
		return nil, derrf("truncated input: need 32 bytes at %d, have %d", pos, len(b)-pos)
	}
	return b[pos : pos+32], nil
}

func offset31(w []byte) (int, error) {
	x := new(big.Int).SetBytes(w)
	if x.BitLen() > 31 {
		return 0, derrf("offset out of range: %s > %d", x, MaxOffset)
	}
	return int(x.Int64()), nil
}

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

func (d Decoder) decode(t schema.Type, b []byte, pos int) (*Item, int, error) {
	switch t.Kind {
	case schema.KindBool:
		w, err := word(b, pos)
		if err != nil {
			return nil, 0, err
		}
		for i := 0; i < 31; i++ {
			if w[i] != 0 {
				return nil, 0, derrf("illegal boolean value @ %d", pos)
			}
		}
		switch w[31] {
		case 0:
			return Bool(false), pos + 32, nil
		case 1:
			return Bool(true), pos + 32, nil
		default:
			return nil, 0, derrf("illegal boolean value @ %d", pos)
		}
	case schema.KindUint, schema.KindAddress:
		w, err := word(b, pos)
		if err != nil {
			return nil, 0, err
		}
		x := new(big.Int).SetBytes(w)
		if x.BitLen() > t.Bits {
			return nil, 0, derrf("%s: unsigned has too many bits: %d > %d", t, x.BitLen(), t.Bits)
		}
		if t.Kind == schema.KindAddress {
			return Address([20]byte(w[12:32])), pos + 32, nil
		}
		return BigInt(x), pos + 32, nil
	case schema.KindInt:
		x, err := signedWord(b, pos, t)
		if err != nil {
			return nil, 0, err
		}
		return BigInt(x), pos + 32, nil
	case schema.KindFixed:
		if !t.Signed {
			w, err := word(b, pos)
			if err != nil {
				return nil, 0, err
			}
			x := new(big.Int).SetBytes(w)
			if x.BitLen() > t.Bits {
				return nil, 0, derrf("%s: unsigned has too many bits: %d > %d", t, x.BitLen(), t.Bits)
			}
			return BigInt(x), pos + 32, nil
		}
		x, err := signedWord(b, pos, t)
		if err != nil {
			return nil, 0, err
		}
		return BigInt(x), pos + 32, nil
	case schema.KindBytesN:
		w, err := word(b, pos)
		if err != nil {
			return nil, 0, err
		}
		for i := t.N; i < 32; i++ {
			if w[i] != 0 {
				return nil, 0, derrf("%s: non-zero padding byte @ %d", t, pos+i)
			}
		}
		data := make([]byte, t.N)
		copy(data, w)
		return Bytes(data), pos + 32, nil
	case schema.KindBytes, schema.KindString:
		w, err := word(b, pos)
		if err != nil {
			return nil, 0, err
		}
		n, err := offset31(w)
		if err != nil {
			return nil, 0, err
		}
		padded := bint.RoundUp(n, 32)
		if pos+32+padded > len(b) {
			return nil, 0, derrf("truncated input: need %d bytes at %d, have %d", padded, pos+32, len(b)-pos-32)
		}
		payload := b[pos+32 : pos+32+n]
		for i := pos + 32 + n; i < pos+32+padded; i++ {
			if b[i] != 0 {
				return nil, 0, derrf("%s: non-zero padding byte @ %d", t, i)
			}
		}
		if t.Kind == schema.KindString {
			return String(string(payload)), pos + 32 + padded, nil
		}
		data := make([]byte, n)
		copy(data, payload)
		return Bytes(data), pos + 32 + padded, nil
	case schema.KindArray:
		k, region := t.Length, pos
		if k == schema.DynamicLength {
			w, err := word(b, pos)
			if err != nil {
				return nil, 0, err
			}
			k, err = offset31(w)
			if err != nil {
				return nil, 0, err
			}
			region = pos + 32
		}
		if region+k*t.Elem.HeadLength() > len(b) {
			return nil, 0, derrf("truncated input: %d elements do not fit in %d bytes", k, len(b)-region)
		}
		items, end, err := d.decodeElems(func(int) schema.Type { return *t.Elem }, k, true, b, region)
		if err != nil {
			return nil, 0, err
		}
		return Array(items...), end, nil
	case schema.KindTuple:
		items, end, err := d.decodeElems(func(i int) schema.Type { return t.Fields[i] }, len(t.Fields), false, b, pos)
		if err != nil {
			return nil, 0, err
		}
		return Tuple(items...), end, nil
	default:
		return nil, 0, derrf("unknown kind %c", t.Kind)
	}
}

func signedWord(b []byte, pos int, t schema.Type) (*big.Int, error) {
	w, err := word(b, pos)
	if err != nil {
		return nil, err
	}
	x := new(big.Int).SetBytes(w)
	if w[0]&0x80 != 0 {
		x.Sub(x, two256)
	}
	if n := signedBitLen(x); n >= t.Bits {
		return nil, derrf("%s: signed has too many bits: %d is not less than %d", t, n, t.Bits)
	}
	return x, nil
}

// Two passes. Static children decode in place while each
// dynamic child banks a 31-bit offset from its head slot.
// Then each dynamic payload is decoded at region start plus
// its offset, in declaration order. A jump behind the read
// position always fails. A jump past it fails in strict mode
// and is skipped over in lenient mode.
func (d Decoder) decodeElems(typeAt func(int) schema.Type, n int, array bool, b []byte, start int) ([]*Item, int, error) {
	var (
		items   = make([]*Item, n)
		offsets = make([]int, n)
		pos     = start
	)
	for i := 0; i < n; i++ {
		ft := typeAt(i)
		if ft.Static {
			item, end, err := d.decode(ft, b, pos)
			if err != nil {
				return nil, 0, indexed(array, i, err)
			}
			items[i] = item
			pos = end
			continue
		}
		w, err := word(b, pos)
		if err != nil {
			return nil, 0, indexed(array, i, err)
		}
		off, err := offset31(w)
		if err != nil {
			return nil, 0, indexed(array, i, err)
		}
		offsets[i] = off
		pos += 32
	}
	cur := pos
	for i := 0; i < n; i++ {
		ft := typeAt(i)
		if ft.Static {
			continue
		}
		jump := start + offsets[i]
		if jump < cur {
			return nil, 0, derrf("illegal backwards jump: (%d+%d=%d)<%d", start, offsets[i], jump, cur)
		}
		if jump > cur && !d.Lenient {
			return nil, 0, derrf("illegal forward jump: (%d+%d=%d)>%d", start, offsets[i], jump, cur)
		}
		item, end, err := d.decode(ft, b, jump)
		if err != nil {
			return nil, 0, indexed(array, i, err)
		}
		items[i] = item
		cur = end
	}
	return items, cur, nil
}
