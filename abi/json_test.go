package abi

import (
	"encoding/hex"
	"testing"

	"github.com/evmwire/x/abi/schema"
	"github.com/evmwire/x/tc"
	"github.com/evmwire/x/wkeccak"
	"kr.dev/diff"
)

const erc20JSON = `[
	{
		"anonymous": false,
		"name": "Transfer",
		"type": "event",
		"inputs": [
			{"indexed": true, "name": "from", "type": "address"},
			{"indexed": true, "name": "to", "type": "address"},
			{"indexed": false, "name": "value", "type": "uint256"}
		]
	}
]`

func TestParseJSON(t *testing.T) {
	events, err := ParseJSON([]byte(erc20JSON))
	tc.NoErr(t, err)
	diff.Test(t, t.Errorf, len(events), 1)

	ev := events[0]
	diff.Test(t, t.Errorf, ev.Signature(), "Transfer(address,address,uint256)")

	want, _ := hex.DecodeString("ddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	diff.Test(t, t.Errorf, ev.SignatureHash(wkeccak.Keccak), want)

	typ, err := ev.ABIType()
	tc.NoErr(t, err)
	diff.Test(t, t.Errorf, typ.String(), "(uint256)")
	diff.Test(t, t.Errorf, typ.Names, []string{"value"})
}

func TestInputABIType(t *testing.T) {
	cases := []struct {
		input Input
		want  schema.Type
	}{
		{
			input: Input{Name: "a", Type: "uint8"},
			want:  schema.Uint(8),
		},
		{
			input: Input{Name: "a", Type: "uint8[]"},
			want:  schema.Array(schema.Uint(8)),
		},
		{
			input: Input{
				Name: "a",
				Type: "tuple",
				Components: []Input{
					{Name: "b", Type: "uint8"},
				},
			},
			want: schema.Tuple(schema.Uint(8)),
		},
		{
			input: Input{
				Name: "a",
				Type: "tuple[2][]",
				Components: []Input{
					{Name: "b", Type: "uint8"},
					{Name: "c", Type: "bytes"},
				},
			},
			want: schema.Array(schema.ArrayK(2, schema.Tuple(
				schema.Uint(8),
				schema.Bytes(),
			))),
		},
	}
	for _, c := range cases {
		got, err := c.input.ABIType()
		tc.NoErr(t, err)
		if !got.Equal(c.want) {
			t.Errorf("got: %s want: %s", got, c.want)
		}
	}
}

func TestInputSignature(t *testing.T) {
	input := Input{
		Name: "a",
		Type: "tuple[]",
		Components: []Input{
			{Name: "b", Type: "uint8"},
			{Name: "c", Type: "tuple", Components: []Input{
				{Name: "d", Type: "address"},
			}},
		},
	}
	diff.Test(t, t.Errorf, input.Signature(), "(uint8,(address))[]")
}
