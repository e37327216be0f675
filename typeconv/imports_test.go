package typeconv

import (
	"reflect"
	"testing"

	"github.com/wippyai/abigen/abi"
)

func TestImports(t *testing.T) {
	tests := []struct {
		name string
		t    *abi.TypeDef
		want []string
	}{
		{"scalar", abi.P("u64"), []string{"U64"}},
		{"text", abi.P("String"), []string{"Text"}},
		{"vec", abi.P("Vec", abi.P("u8")), []string{"U8", "Vec"}},
		{"vec missing arg", abi.P("Vec"), []string{"Vec"}},
		{"bad result", abi.P("Result", abi.P("u8")), []string{}},
		{"result", abi.P("Result", abi.Tup(), abi.P("bool")), []string{"Bool", "Null", "Result"}},
		{"dynamic array", abi.Arr(abi.P("i16"), -1), []string{"I16", "Vec"}},
		{"fixed array", abi.Arr(abi.P("i16"), 8), []string{"I16", "VecFixed"}},
		{"user generic", abi.P("Page", abi.P("u32")), []string{"U32"}},
		{"user", abi.P("Account"), []string{}},
		{"tuple", abi.Tup(abi.P("u8"), abi.P("Option", abi.P("i8"))), []string{"I8", "Option", "Tuple", "U8"}},
		{"alias", abi.Alias(abi.P("Option", abi.P("bool"))), []string{"Bool", "Option"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Imports(tt.t, 0); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Imports = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImports_ContainerCompleteness(t *testing.T) {
	tree := abi.Tup(
		abi.P("Vec", abi.P("u32")),
		abi.P("Option", abi.P("String")),
		abi.Arr(abi.P("u8"), 32),
	)
	got := map[string]bool{}
	for _, s := range Imports(tree, 0) {
		got[s] = true
	}
	for _, want := range []string{"Vec", "Option", "VecFixed"} {
		if !got[want] {
			t.Errorf("Imports missing %s: %v", want, got)
		}
	}
}

// The collector must agree with what the converter actually emitted.
func TestImports_MatchConverterSymbols(t *testing.T) {
	trees := []*abi.TypeDef{
		abi.P("Vec", abi.P("Vec", abi.P("u8"))),
		abi.P("Option", abi.P("Result", abi.P("String"), abi.Tup())),
		abi.Tup(abi.P("bool"), abi.Arr(abi.P("u128"), 4), abi.Arr(abi.P("f64"), -1)),
		abi.P("Page", abi.P("Vec", abi.P("i32")), abi.P("Account")),
		abi.P("Result", abi.P("u8")),
		abi.Alias(abi.P("Vec")),
		{Kind: abi.KindTuple},
		{Kind: abi.KindArray, Len: new(int)},
		{Kind: "Weird"},
		deepVec(80),
	}

	for i, tree := range trees {
		for _, depth := range []int{0, 3} {
			c := New(depth)
			c.Convert(tree, Wire)
			want := c.Symbols()
			got := Imports(tree, depth)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("tree %d depth %d: Imports = %v, converter used %v", i, depth, got, want)
			}
		}
	}
}

func deepVec(n int) *abi.TypeDef {
	t := abi.P("u8")
	for i := 0; i < n; i++ {
		t = abi.P("Vec", t)
	}
	return t
}
