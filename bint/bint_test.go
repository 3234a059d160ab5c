package bint

import (
	"bytes"
	"testing"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		n    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{255, []byte{0xff}},
		{256, []byte{0x01, 0x00}},
		{1 << 16, []byte{0x01, 0x00, 0x00}},
		{^uint64(0), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tc := range cases {
		got := Encode(nil, tc.n)
		if !bytes.Equal(got, tc.want) {
			t.Errorf("Encode(nil, %d) = %x want %x", tc.n, got, tc.want)
		}
		if Decode(got) != tc.n {
			t.Errorf("Decode(%x) = %d want %d", got, Decode(got), tc.n)
		}
	}
}

func TestEncode_Padded(t *testing.T) {
	var b [32]byte
	Encode(b[:], 42)
	if b[31] != 42 {
		t.Errorf("want right aligned encoding, got %x", b)
	}
	for i := 0; i < 31; i++ {
		if b[i] != 0 {
			t.Errorf("want zero padding, got %x", b)
		}
	}
}

func TestDecode_LeadingZeros(t *testing.T) {
	if got := Decode([]byte{0x00, 0x00, 0x2a}); got != 42 {
		t.Errorf("got %d want 42", got)
	}
}

func TestSize(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{255, 1},
		{256, 2},
		{1 << 56, 8},
	}
	for _, tc := range cases {
		if got := Size(tc.n); got != tc.want {
			t.Errorf("Size(%d) = %d want %d", tc.n, got, tc.want)
		}
	}
}

func TestBitLen(t *testing.T) {
	cases := []struct {
		n    uint64
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{255, 8},
		{256, 9},
		{^uint64(0), 64},
	}
	for _, tc := range cases {
		if got := BitLen(tc.n); got != tc.want {
			t.Errorf("BitLen(%d) = %d want %d", tc.n, got, tc.want)
		}
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct {
		n, unit, want int
	}{
		{0, 32, 0},
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{56, 32, 64},
	}
	for _, tc := range cases {
		if got := RoundUp(tc.n, tc.unit); got != tc.want {
			t.Errorf("RoundUp(%d, %d) = %d want %d", tc.n, tc.unit, got, tc.want)
		}
	}
}

func TestUint256(t *testing.T) {
	var b [32]byte
	b[31] = 0x2a
	got := Uint256(b[:])
	if got.Uint64() != 42 {
		t.Errorf("got %s want 42", got.Dec())
	}
}

func TestCheckMultiple(t *testing.T) {
	if err := CheckMultiple(64, 32); err != nil {
		t.Errorf("expected no error. got: %s", err)
	}
	if err := CheckMultiple(63, 32); err == nil {
		t.Error("expected an error for unaligned length")
	}
	if err := CheckMultiple(-32, 32); err == nil {
		t.Error("expected an error for negative length")
	}
}
