package schema

import (
	"testing"

	"kr.dev/diff"
)

func TestParse_Canonical(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"uint256", "uint256"},
		{"uint", "uint256"},
		{"int", "int256"},
		{"int24", "int24"},
		{"bool", "bool"},
		{"address", "address"},
		{"bytes", "bytes"},
		{"bytes32", "bytes32"},
		{"string", "string"},
		{"fixed", "fixed128x18"},
		{"ufixed", "ufixed128x18"},
		{"decimal", "fixed168x10"},
		{"function", "bytes24"},
		{"uint8[]", "uint8[]"},
		{"uint8[2][3]", "uint8[2][3]"},
		{"(uint256,bytes,int32[2][],string)", "(uint256,bytes,int32[2][],string)"},
		{"()", "()"},
		{"((bool))", "((bool))"},
		{"(uint,(fixed,bytes))", "(uint256,(fixed128x18,bytes))"},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Errorf("Parse(%q): %s", tc.input, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Parse(%q).String() = %q want %q", tc.input, got.String(), tc.want)
		}
	}
}

// parse(t.String()) == t
func TestParse_RoundTrip(t *testing.T) {
	types := []Type{
		Uint(256),
		Int(24),
		Bool(),
		Address(),
		Bytes(),
		BytesN(4),
		String(),
		Fixed(128, 18),
		Array(Uint(8)),
		ArrayK(3, ArrayK(2, Uint(8))),
		Tuple(),
		Tuple(Uint(256), Bytes(), Array(Int(32))),
	}
	for _, want := range types {
		got, err := Parse(want.String())
		if err != nil {
			t.Errorf("Parse(%q): %s", want.String(), err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("round trip %q != %q", got.String(), want.String())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"",
		"uint0",
		"uint257",
		"uint08",
		"int512",
		"bytes0",
		"bytes33",
		"fixed127x18",
		"fixed128x81",
		"fixed128",
		"dog",
		"uint256 ",
		"(uint256",
		"uint256)",
		"(uint256,)",
		"(uint256))",
		"uint8[2",
		"uint8[-1]",
		"uint8[02]",
		"[2]uint8",
	}
	for _, input := range cases {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q): expected an error", input)
		}
	}
}

func TestParse_LengthLimit(t *testing.T) {
	long := make([]byte, MaxTypeLength+1)
	for i := range long {
		long[i] = 'u'
	}
	if _, err := Parse(string(long)); err == nil {
		t.Error("expected an error for oversized type string")
	}
}

func TestNesting(t *testing.T) {
	// uint8[2][3] is a 3 element array of 2 element arrays
	got, err := Parse("uint8[2][3]")
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, got.Length, 3)
	diff.Test(t, t.Errorf, got.Elem.Length, 2)
	diff.Test(t, t.Errorf, got.Size, 3*2*32)
}

func TestStaticSize(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"uint256", 32},
		{"bool", 32},
		{"bytes32", 32},
		{"uint8[4]", 128},
		{"(uint8,uint8)", 64},
		{"(uint8,uint8)[2]", 128},
		{"()", 0},
		{"bool[0]", 0},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %s", tc.input, err)
		}
		if !got.Static {
			t.Errorf("%q: expected static", tc.input)
		}
		if got.Size != tc.want {
			t.Errorf("%q: Size = %d want %d", tc.input, got.Size, tc.want)
		}
	}
}

func TestDynamic(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"uint256", false},
		{"bytes", true},
		{"string", true},
		{"uint8[]", true},
		{"uint8[2]", false},
		{"bytes[2]", true},
		{"(uint8,bytes)", true},
		{"(uint8,bool)", false},
		{"(uint8,bytes)[2]", true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %s", tc.input, err)
		}
		if got.Dynamic() != tc.want {
			t.Errorf("%q: Dynamic() = %t want %t", tc.input, got.Dynamic(), tc.want)
		}
	}
}

func TestHeadLength(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"uint256", 32},
		{"uint8[2]", 64},
		{"(uint8,uint8,uint8)", 96},
		{"bytes", 32},
		{"uint8[]", 32},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("Parse(%q): %s", tc.input, err)
		}
		if got.HeadLength() != tc.want {
			t.Errorf("%q: HeadLength() = %d want %d", tc.input, got.HeadLength(), tc.want)
		}
	}
}

func TestSelectExclude(t *testing.T) {
	tt, err := ParseTuple("(uint256,bytes,bool)")
	if err != nil {
		t.Fatal(err)
	}

	all := []bool{true, true, true}
	got, err := tt.Select(all)
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, got.String(), tt.String())

	none := []bool{false, false, false}
	got, err = tt.Exclude(none)
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, got.String(), tt.String())

	// select and exclude are complements
	mask := []bool{true, false, true}
	sel, err := tt.Select(mask)
	if err != nil {
		t.Fatal(err)
	}
	exc, err := tt.Exclude(mask)
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, sel.String(), "(uint256,bool)")
	diff.Test(t, t.Errorf, exc.String(), "(bytes)")

	if _, err := tt.Select([]bool{true}); err == nil {
		t.Error("expected an error for mask length mismatch")
	}
}

func TestWithNames(t *testing.T) {
	tt, err := ParseTupleNamed("(address,uint256)", "to", "amount")
	if err != nil {
		t.Fatal(err)
	}
	diff.Test(t, t.Errorf, tt.Names, []string{"to", "amount"})

	// names are metadata only
	anon, err := ParseTuple("(address,uint256)")
	if err != nil {
		t.Fatal(err)
	}
	if !tt.Equal(anon) {
		t.Error("names must not affect equality")
	}

	if _, err := ParseTupleNamed("(address,uint256)", "to"); err == nil {
		t.Error("expected an error for name count mismatch")
	}
}
