package abi

import (
	"bytes"
	"strings"

	"github.com/evmwire/x/abi/schema"
	"github.com/evmwire/x/werr"
	"github.com/evmwire/x/wstrings"
)

// External Keccak-256 provider. This package never hashes
// on its own; callers supply the function, typically
// wkeccak.Keccak.
type HashFunc func([]byte) []byte

// A Function binds a name and an input tuple to a hash
// provider so calls can be encoded with their 4-byte
// selector.
type Function struct {
	Name   string
	Inputs schema.Type
	hash   HashFunc
}

// Parses a canonical signature such as
// sam(bytes,bool,uint256[]) and binds it to hash.
func NewFunction(signature string, hash HashFunc) (Function, error) {
	i := strings.IndexByte(signature, '(')
	if i < 0 {
		return Function{}, werr.Errorf("parsing %q: %w", signature, errMissingArgs)
	}
	name := signature[:i]
	if err := wstrings.Safe(name); err != nil {
		return Function{}, werr.Errorf("function name %q: %w", name, err)
	}
	inputs, err := schema.ParseTuple(signature[i:])
	if err != nil {
		return Function{}, werr.Errorf("parsing %q: %w", signature, err)
	}
	if hash == nil {
		return Function{}, errNoHash
	}
	return Function{Name: name, Inputs: inputs, hash: hash}, nil
}

var (
	errMissingArgs = &ValidationError{msg: "missing argument list"}
	errNoHash      = &ValidationError{msg: "nil hash provider"}
)

// The canonical signature, name(T1,T2,...)
func (f Function) Signature() string {
	return f.Name + f.Inputs.String()
}

// First 4 bytes of the Keccak-256 of the signature
func (f Function) Selector() [4]byte {
	h := f.hash([]byte(f.Signature()))
	return [4]byte(h[:4])
}

// selector || encoded arguments
func (f Function) EncodeCall(args *Item) ([]byte, error) {
	n, err := Validate(f.Inputs, args)
	if err != nil {
		return nil, err
	}
	sel := f.Selector()
	b := make([]byte, 4+n)
	copy(b, sel[:])
	encodeTail(f.Inputs, args, b[4:])
	return b, nil
}

// Verifies and strips the 4-byte selector, then decodes
// the argument tuple in strict mode.
func (f Function) DecodeCall(data []byte) (*Item, error) {
	if len(data) < 4 {
		return nil, derrf("calldata shorter than a selector: %d bytes", len(data))
	}
	sel := f.Selector()
	if !bytes.Equal(data[:4], sel[:]) {
		return nil, derrf("selector mismatch: %x != %x", data[:4], sel)
	}
	return Decode(f.Inputs, data[4:])
}
