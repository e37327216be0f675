package witimport

import (
	"io"
	"os"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/errors"
)

// Decode reads a WIT resolve in the JSON form printed by wasm-tools and
// converts its named type definitions.
func Decode(r io.Reader) ([]abi.Entry, []*errors.Error, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "decode WIT JSON")
	}
	entries, warnings := Convert(res)
	return entries, warnings, nil
}

// Load is Decode over a file.
func Load(path string) ([]abi.Entry, []*errors.Error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Path(path).
			Cause(err).
			Detail("open WIT file").
			Build()
	}
	defer f.Close()
	return Decode(f)
}

// Convert maps every named type definition of res onto an ABI entry:
//
//	record      struct
//	variant     enum with at most one payload slot per case
//	enum        enum without payloads
//	flags       struct of bool fields
//	other kinds type_alias over the converted type
//
// Anonymous definitions are inlined where they are referenced.
func Convert(res *wit.Resolve) ([]abi.Entry, []*errors.Error) {
	c := &converter{}
	var entries []abi.Entry
	for _, td := range res.TypeDefs {
		if td == nil || td.Name == nil {
			continue
		}
		if e, ok := c.entry(td); ok {
			entries = append(entries, e)
		}
	}
	return entries, c.warnings
}

type converter struct {
	warnings []*errors.Error
}

func (c *converter) warn(entry string, path []string, detail string) {
	c.warnings = append(c.warnings, errors.New(errors.PhaseConvert, errors.KindUnsupported).
		Entry(entry).
		Path(path...).
		Detail("%s", detail).
		Build())
}

func (c *converter) entry(td *wit.TypeDef) (abi.Entry, bool) {
	name := TypeName(*td.Name)

	switch k := td.Kind.(type) {
	case *wit.Record:
		fields := make([]abi.Field, len(k.Fields))
		for i, f := range k.Fields {
			fields[i] = abi.Field{Name: FieldName(f.Name), Type: c.typ(name, []string{f.Name}, f.Type)}
		}
		return abi.Entry{Type: abi.EntryStruct, Name: name, Fields: fields}, true

	case *wit.Variant:
		variants := make([]abi.Variant, len(k.Cases))
		for i, cs := range k.Cases {
			v := abi.Variant{Name: TypeName(cs.Name)}
			if cs.Type != nil {
				v.Fields = []*abi.TypeDef{c.typ(name, []string{cs.Name}, cs.Type)}
			}
			variants[i] = v
		}
		return abi.Entry{Type: abi.EntryEnum, Name: name, Variants: variants}, true

	case *wit.Enum:
		variants := make([]abi.Variant, len(k.Cases))
		for i, cs := range k.Cases {
			variants[i] = abi.Variant{Name: TypeName(cs.Name)}
		}
		return abi.Entry{Type: abi.EntryEnum, Name: name, Variants: variants}, true

	case *wit.Flags:
		fields := make([]abi.Field, len(k.Flags))
		for i, f := range k.Flags {
			fields[i] = abi.Field{Name: FieldName(f.Name), Type: abi.P("bool")}
		}
		return abi.Entry{Type: abi.EntryStruct, Name: name, Fields: fields}, true

	case *wit.Resource:
		c.warn(name, nil, "resource types have no codec; skipped")
		return abi.Entry{}, false
	}

	return abi.Entry{Type: abi.EntryTypeAlias, Name: name, Target: c.kind(name, nil, td.Kind)}, true
}

// typ converts a type reference. Named definitions become paths; anonymous
// ones are expanded in place.
func (c *converter) typ(entry string, path []string, t wit.Type) *abi.TypeDef {
	switch t := t.(type) {
	case nil:
		return abi.Tup()
	case wit.Bool:
		return abi.P("bool")
	case wit.U8:
		return abi.P("u8")
	case wit.U16:
		return abi.P("u16")
	case wit.U32:
		return abi.P("u32")
	case wit.U64:
		return abi.P("u64")
	case wit.S8:
		return abi.P("i8")
	case wit.S16:
		return abi.P("i16")
	case wit.S32:
		return abi.P("i32")
	case wit.S64:
		return abi.P("i64")
	case wit.F32:
		return abi.P("f32")
	case wit.F64:
		return abi.P("f64")
	case wit.Char, wit.String:
		return abi.P("String")
	case *wit.TypeDef:
		if t.Name != nil {
			return abi.P(TypeName(*t.Name))
		}
		return c.kind(entry, path, t.Kind)
	}
	c.warn(entry, path, "unsupported WIT type")
	return unresolved()
}

func (c *converter) kind(entry string, path []string, k wit.TypeDefKind) *abi.TypeDef {
	switch k := k.(type) {
	case *wit.List:
		return abi.P("Vec", c.typ(entry, path, k.Type))
	case *wit.Option:
		return abi.P("Option", c.typ(entry, path, k.Type))
	case *wit.Result:
		return abi.P("Result", c.typ(entry, append(path, "ok"), k.OK), c.typ(entry, append(path, "err"), k.Err))
	case *wit.Tuple:
		elems := make([]*abi.TypeDef, len(k.Types))
		for i, t := range k.Types {
			elems[i] = c.typ(entry, path, t)
		}
		return abi.Tup(elems...)
	case *wit.Own, *wit.Borrow:
		c.warn(entry, path, "resource handle encoded as u32")
		return abi.P("u32")
	case wit.Type:
		return c.typ(entry, path, k)
	}
	c.warn(entry, path, "unsupported WIT type definition")
	return unresolved()
}

// TypeName turns a kebab-case WIT name into PascalCase.
func TypeName(s string) string {
	var b strings.Builder
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' }) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// FieldName turns a kebab-case WIT name into snake_case.
func FieldName(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// unresolved is an empty path, which the type converter renders as unknown.
func unresolved() *abi.TypeDef {
	return &abi.TypeDef{Kind: abi.KindPath}
}
