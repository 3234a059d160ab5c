package abi

import (
	"testing"

	"github.com/evmwire/x/tc"
	"github.com/evmwire/x/wkeccak"
)

func TestNewFunction(t *testing.T) {
	f, err := NewFunction("transfer(address,uint256)", wkeccak.Keccak)
	tc.NoErr(t, err)
	tc.WantGot(t, "transfer(address,uint256)", f.Signature())
	tc.WantGot(t, [4]byte{0xa9, 0x05, 0x9c, 0xbb}, f.Selector())
}

func TestNewFunction_Errors(t *testing.T) {
	cases := []string{
		"transfer",
		"(address,uint256)",
		"bad name(uint256)",
		"transfer(address,uint257)",
	}
	for _, sig := range cases {
		if _, err := NewFunction(sig, wkeccak.Keccak); err == nil {
			t.Errorf("NewFunction(%q): expected an error", sig)
		}
	}
	if _, err := NewFunction("transfer(address)", nil); err == nil {
		t.Error("expected an error for a nil hash provider")
	}
}

func TestDecodeCall_SelectorMismatch(t *testing.T) {
	f, err := NewFunction("transfer(address,uint256)", wkeccak.Keccak)
	tc.NoErr(t, err)
	call, err := f.EncodeCall(Tuple(Address([20]byte{1}), Uint64(5)))
	tc.NoErr(t, err)

	call[0] ^= 0xff
	_, err = f.DecodeCall(call)
	tc.WantErr(t, err, new(*DecodeError))

	_, err = f.DecodeCall([]byte{0x01})
	tc.WantErr(t, err, new(*DecodeError))
}
