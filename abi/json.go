package abi

import (
	"strings"

	"github.com/goccy/go-json"

	"github.com/evmwire/x/abi/schema"
	"github.com/evmwire/x/werr"
)

// JSON ABI descriptors. A document is a list of entries as
// produced by solc --abi; only the fields the codec needs
// are retained.

type Input struct {
	Indexed    bool    `json:"indexed"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Components []Input `json:"components"`
}

type Event struct {
	Anon   bool    `json:"anonymous"`
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Inputs []Input `json:"inputs"`
}

// Parses a JSON ABI document into its event and function
// entries.
func ParseJSON(js []byte) ([]Event, error) {
	var res []Event
	if err := json.Unmarshal(js, &res); err != nil {
		return nil, werr.Errorf("parsing abi json: %w", err)
	}
	return res, nil
}

// The input's canonical type string with tuple expanded
// into its components, eg (uint256,bytes)[]
func (inp Input) Signature() string {
	if !strings.HasPrefix(inp.Type, "tuple") {
		return inp.Type
	}
	var s strings.Builder
	s.WriteString("(")
	for i, c := range inp.Components {
		s.WriteString(c.Signature())
		if i+1 < len(inp.Components) {
			s.WriteString(",")
		}
	}
	s.WriteString(")")
	return strings.Replace(inp.Type, "tuple", s.String(), 1)
}

// Builds the schema type for the input. Tuple components
// contribute their names as metadata on the type; validation
// and decode errors still identify fields by index.
func (inp Input) ABIType() (schema.Type, error) {
	if !strings.HasPrefix(inp.Type, "tuple") {
		return schema.Parse(inp.Type)
	}
	var (
		fields []schema.Type
		names  []string
	)
	for i := range inp.Components {
		f, err := inp.Components[i].ABIType()
		if err != nil {
			return schema.Type{}, err
		}
		fields = append(fields, f)
		names = append(names, inp.Components[i].Name)
	}
	base, err := schema.Tuple(fields...).WithNames(names...)
	if err != nil {
		return schema.Type{}, err
	}
	return applySuffix(base, strings.TrimPrefix(inp.Type, "tuple"))
}

// Applies array suffixes such as [2][] to base, outermost
// suffix last.
func applySuffix(base schema.Type, s string) (schema.Type, error) {
	if len(s) == 0 {
		return base, nil
	}
	if !strings.HasSuffix(s, "]") {
		return schema.Type{}, werr.Errorf("array suffix %q: %w", s, errBadSuffix)
	}
	i := strings.LastIndexByte(s, '[')
	if i < 0 {
		return schema.Type{}, werr.Errorf("array suffix %q: %w", s, errBadSuffix)
	}
	inner, err := applySuffix(base, s[:i])
	if err != nil {
		return schema.Type{}, err
	}
	num := s[i+1 : len(s)-1]
	if len(num) == 0 {
		return schema.Array(inner), nil
	}
	var k int
	for j := 0; j < len(num); j++ {
		if num[j] < '0' || num[j] > '9' {
			return schema.Type{}, werr.Errorf("array suffix %q: %w", s, errBadSuffix)
		}
		k = k*10 + int(num[j]-'0')
	}
	return schema.ArrayK(k, inner), nil
}

var errBadSuffix = &ValidationError{msg: "malformed array suffix"}

func (e Event) Signature() string {
	var s strings.Builder
	s.WriteString(e.Name)
	s.WriteString("(")
	for i := range e.Inputs {
		s.WriteString(e.Inputs[i].Signature())
		if i+1 < len(e.Inputs) {
			s.WriteString(",")
		}
	}
	s.WriteString(")")
	return s.String()
}

func (e Event) SignatureHash(hash HashFunc) []byte {
	return hash([]byte(e.Signature()))
}

// The tuple type of the event's non-indexed inputs, in
// declaration order. Indexed inputs live in log topics
// and are not part of the data encoding.
func (e Event) ABIType() (schema.Type, error) {
	var (
		fields []schema.Type
		names  []string
	)
	for i := range e.Inputs {
		if e.Inputs[i].Indexed {
			continue
		}
		f, err := e.Inputs[i].ABIType()
		if err != nil {
			return schema.Type{}, err
		}
		fields = append(fields, f)
		names = append(names, e.Inputs[i].Name)
	}
	return schema.Tuple(fields...).WithNames(names...)
}
