package tscheck

import (
	"context"
	"reflect"
	"testing"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/errors"
)

func TestCheck_Valid(t *testing.T) {
	src := []byte(`
export interface IA { x: number; }
export class A { }
export type B = { ok: number | null, err: string | null };
export const C = { create(type: string): B { return null as unknown as B; } };
export async function f(id: string): Promise<void> {}
function hidden() {}
`)
	rep, err := Check(context.Background(), src)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("unexpected errors: %v", rep.Errors)
	}
	want := []string{"A", "B", "C", "IA", "f"}
	if !reflect.DeepEqual(rep.Exports, want) {
		t.Errorf("Exports = %v, want %v", rep.Exports, want)
	}
}

func TestCheck_SyntaxError(t *testing.T) {
	rep, err := Check(context.Background(), []byte("export class A {\n  get x(: Codec {\n}\n"))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if rep.OK() {
		t.Fatal("expected syntax errors")
	}
	for _, e := range rep.Errors {
		if e.Kind != errors.KindSyntax || e.Phase != errors.PhaseVerify {
			t.Errorf("error = %v, want verify/syntax", e)
		}
	}
}

func TestCheck_GeneratedUnit(t *testing.T) {
	res := codegen.Generate([]abi.Entry{
		{Type: abi.EntryStruct, Name: "Point", Fields: []abi.Field{
			{Name: "x", Type: abi.P("i32")},
			{Name: "tags", Type: abi.P("Vec", abi.P("Option", abi.P("u8")))},
		}},
		{Type: abi.EntryEnum, Name: "Dir", Variants: []abi.Variant{
			{Name: "Up"},
			{Name: "To", Fields: []*abi.TypeDef{abi.P("Point"), abi.Arr(abi.P("u8"), 4)}},
		}},
		{Type: abi.EntryTypeAlias, Name: "R", Generics: []string{"T"}, Target: abi.P("Result", abi.P("T"), abi.P("String"))},
		{Type: abi.EntryFunction, Name: "move", Method: abi.MethodPost, Output: abi.P("R", abi.P("u32")),
			Inputs: []abi.Field{{Name: "p", Type: abi.P("Point")}, {Name: "d", Type: abi.P("Dir")}}},
		{Type: abi.EntryFunction, Name: "set", Method: abi.MethodPost,
			Inputs: []abi.Field{{Name: "a", Type: abi.P("u8")}, {Name: "b", Type: abi.P("bool")}}},
	}, codegen.DefaultOptions())

	rep, err := Check(context.Background(), []byte(res.Code))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !rep.OK() {
		t.Fatalf("generated unit has syntax errors: %v\n%s", rep.Errors, res.Code)
	}
	for _, name := range []string{"Point", "IPoint", "Dir", "R", "createRTypeResult", "move", "set", "initApi", "registry"} {
		found := false
		for _, e := range rep.Exports {
			if e == name {
				found = true
			}
		}
		if !found {
			t.Errorf("export %s missing from %v", name, rep.Exports)
		}
	}
}
