package abi

import (
	"strings"
	"testing"

	"github.com/wippyai/abigen/errors"
)

func TestParse_TopLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		entries int
		wantErr bool
	}{
		{"array", `[{"type":"struct","name":"A","fields":[]},{"type":"enum","name":"B","variants":[]}]`, 2, false},
		{"single object", `{"type":"fn","name":"get_x","method":"get","inputs":[]}`, 1, false},
		{"empty array", `[]`, 0, false},
		{"number", `42`, 0, true},
		{"string", `"abi"`, 0, true},
		{"null", `null`, 0, true},
		{"empty", "   ", 0, true},
		{"broken array", `[{"type":`, 0, true},
		{"broken object", `{"type":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.input)
				}
				if !strings.Contains(err.Error(), "Failed to parse JSON file") {
					t.Errorf("error %q lacks descriptive prefix", err)
				}
				var target *errors.Error
				if !asError(err, &target) || target.Phase != errors.PhaseParse {
					t.Errorf("error %v is not a parse-phase *errors.Error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if len(doc.Entries) != tt.entries {
				t.Errorf("entries = %d, want %d", len(doc.Entries), tt.entries)
			}
		})
	}
}

func TestParse_TypeTree(t *testing.T) {
	input := `[{
		"type": "struct",
		"name": "Account",
		"fields": [
			{"name": "id", "type": {"kind": "Path", "path": ["u64"]}},
			{"name": "tags", "type": {"kind": "Path", "path": ["Vec"], "generic_args": [{"kind": "Path", "path": ["String"]}]}},
			{"name": "key", "type": {"kind": "Array", "elem": {"kind": "Path", "path": ["u8"]}, "len": 32}},
			{"name": "pair", "type": {"kind": "Tuple", "tuple_args": [{"kind": "Path", "path": ["bool"]}, {"kind": "Path", "path": ["i32"]}]}},
			{"name": "unit", "type": {"kind": "Tuple", "tuple_args": []}},
			{"name": "bare", "type": {"kind": "Tuple"}}
		]
	}]`

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := doc.Entries[0]
	if e.Type != EntryStruct || e.Name != "Account" || len(e.Fields) != 6 {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if got := e.Fields[0].Type.Name(); got != "u64" {
		t.Errorf("field 0 name = %q, want u64", got)
	}
	if got := e.Fields[1].Type.GenericArgs[0].Name(); got != "String" {
		t.Errorf("Vec arg = %q, want String", got)
	}
	key := e.Fields[2].Type
	if key.Kind != KindArray || key.Len == nil || *key.Len != 32 {
		t.Errorf("key = %v, want [u8; 32]", key)
	}
	if len(e.Fields[3].Type.TupleArgs) != 2 {
		t.Errorf("pair tuple_args = %d, want 2", len(e.Fields[3].Type.TupleArgs))
	}
	if !e.Fields[4].Type.IsUnit() {
		t.Error("empty tuple_args should be unit")
	}
	if e.Fields[5].Type.IsUnit() || e.Fields[5].Type.TupleArgs != nil {
		t.Error("absent tuple_args must stay distinguishable from unit")
	}
}

func TestParse_SkipsUndecodableEntry(t *testing.T) {
	input := `[{"type":"struct","name":"A","fields":[]}, {"type":"struct","name":7}, {"type":"enum","name":"B","variants":[]}]`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Errorf("entries = %d, want 2", len(doc.Entries))
	}
	if len(doc.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(doc.Warnings))
	}
	if w := doc.Warnings[0]; w.Kind != errors.KindInvalidData || w.Path[1] != "1" {
		t.Errorf("warning = %v", w)
	}
}

func TestParse_DegradesNodes(t *testing.T) {
	input := `[{
		"type": "struct",
		"name": "S",
		"fields": [
			{"name": "a", "type": {"kind": "Path", "path": ["u8"]}},
			{"name": "b", "type": {"kind": "Path", "path": "u8"}},
			{"name": "c", "type": {"kind": "Path", "path": ["Vec"], "generic_args": [{"kind": "Path", "path": [1]}]}},
			{"name": 9, "type": {"kind": "Path", "path": ["bool"]}},
			7
		]
	}, {
		"type": "enum",
		"name": "E",
		"variants": [{"name": "A", "fields": "u8"}, {"name": "B", "fields": []}]
	}]`

	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(doc.Entries))
	}

	fields := doc.Entries[0].Fields
	if len(fields) != 5 {
		t.Fatalf("fields = %d, want 5", len(fields))
	}
	if fields[0].Type.Name() != "u8" {
		t.Errorf("field a = %v, want u8", fields[0].Type)
	}
	if b := fields[1].Type; b.Kind != KindPath || len(b.Path) != 0 {
		t.Errorf("field b = %+v, want empty path", b)
	}
	if c := fields[2].Type; c.Name() != "Vec" || len(c.GenericArgs) != 1 || c.GenericArgs[0].Name() != "" {
		t.Errorf("field c = %v, want Vec of an empty path", c)
	}
	if f := fields[3]; f.Name != "" || f.Type.Name() != "bool" {
		t.Errorf("field 3 = %+v, want nameless bool", f)
	}

	variants := doc.Entries[1].Variants
	if len(variants[0].Fields) != 1 || variants[0].Fields[0].Name() != "" {
		t.Errorf("variant A fields = %v, want one empty path", variants[0].Fields)
	}
	if variants[1].Fields == nil || len(variants[1].Fields) != 0 {
		t.Errorf("variant B fields = %v, want unit", variants[1].Fields)
	}

	want := [][]string{
		{"fields", "b"},
		{"fields", "c", "0"},
		{"fields", "3"},
		{"fields", "4"},
		{"variants", "A", "0"},
	}
	if len(doc.Warnings) != len(want) {
		t.Fatalf("warnings = %v, want %d", doc.Warnings, len(want))
	}
	for i, w := range doc.Warnings {
		if w.Phase != errors.PhaseParse || w.Kind != errors.KindInvalidData {
			t.Errorf("warning %d = %v", i, w)
		}
		if strings.Join(w.Path, ".") != strings.Join(want[i], ".") {
			t.Errorf("warning %d path = %v, want %v", i, w.Path, want[i])
		}
	}
	if doc.Warnings[0].Entry != "S" || doc.Warnings[4].Entry != "E" {
		t.Errorf("warnings not attributed to their entries: %v", doc.Warnings)
	}
}

func TestTypeDef_Resolve(t *testing.T) {
	inner := P("u32")
	chain := Alias(Alias(inner))
	if got := chain.Resolve(8); got != inner {
		t.Errorf("Resolve = %v, want %v", got, inner)
	}
	if got := chain.Resolve(1); got != nil {
		t.Errorf("Resolve with limit 1 = %v, want nil", got)
	}
	if got := Alias(nil).Resolve(8); got != nil {
		t.Errorf("dangling alias resolved to %v", got)
	}
}

func TestTypeDef_String(t *testing.T) {
	tests := []struct {
		t    *TypeDef
		want string
	}{
		{P("Vec", P("u8")), "Vec<u8>"},
		{P("Result", Tup(), P("String")), "Result<(), String>"},
		{Arr(P("u8"), 32), "[u8; 32]"},
		{Arr(P("bool"), -1), "[bool]"},
		{&TypeDef{Kind: KindPath, Path: []string{"std", "string", "String"}}, "std::string::String"},
		{Alias(P("u16")), "u16"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func asError(err error, target **errors.Error) bool {
	e, ok := err.(*errors.Error)
	if ok {
		*target = e
	}
	return ok
}

func TestTypeDef_Substitute(t *testing.T) {
	target := P("Result", P("T"), P("Vec", P("E")))
	got := target.Substitute([]string{"T", "E"}, []*TypeDef{P("u32"), P("String")})
	if s := got.String(); s != "Result<u32, Vec<String>>" {
		t.Errorf("Substitute = %q", s)
	}
	if s := target.String(); s != "Result<T, Vec<E>>" {
		t.Errorf("original mutated: %q", s)
	}

	partial := target.Substitute([]string{"T", "E"}, []*TypeDef{P("bool")})
	if s := partial.String(); s != "Result<bool, Vec<E>>" {
		t.Errorf("partial Substitute = %q", s)
	}
	if !Tup().Substitute([]string{"T"}, []*TypeDef{P("u8")}).IsUnit() {
		t.Error("unit tuple must stay unit")
	}
}
