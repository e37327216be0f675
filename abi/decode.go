package abi

import (
	"encoding/json"
	"strconv"

	"github.com/wippyai/abigen/errors"
)

// maxDecodeReport bounds the depth at which undecodable nodes are reported.
const maxDecodeReport = 64

// typeDefFields is TypeDef without its decoding method.
type typeDefFields TypeDef

// UnmarshalJSON decodes a type node. A node whose members have the wrong JSON
// types decodes as an empty path, which renders as unknown, and keeps the
// error for Parse to report. Nested nodes degrade independently.
func (t *TypeDef) UnmarshalJSON(data []byte) error {
	var raw typeDefFields
	if err := json.Unmarshal(data, &raw); err != nil {
		*t = *invalidNode(err)
		return nil
	}
	*t = TypeDef(raw)
	return nil
}

// UnmarshalJSON decodes a field. A name of the wrong type is dropped; a value
// that is not an object keeps neither name nor type.
func (f *Field) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type *TypeDef       `json:"type"`
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*f = Field{Type: invalidNode(err)}
		return nil
	}
	*f = Field{Type: raw.Type}
	if err := decodeMember(raw.Name, &f.Name); err != nil {
		f.Name = ""
		f.invalid = err
	}
	return nil
}

// UnmarshalJSON decodes an enum case. A fields member that is not a list
// becomes a single undecodable payload slot.
func (v *Variant) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   json.RawMessage `json:"name"`
		Fields json.RawMessage `json:"fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = Variant{invalid: err}
		return nil
	}
	*v = Variant{}
	if err := decodeMember(raw.Name, &v.Name); err != nil {
		v.Name = ""
		v.invalid = err
	}
	if err := decodeMember(raw.Fields, &v.Fields); err != nil {
		v.Fields = []*TypeDef{invalidNode(err)}
	}
	return nil
}

func decodeMember(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func invalidNode(err error) *TypeDef {
	return &TypeDef{Kind: KindPath, invalid: err}
}

// decodeWarnings lists every member of e that was degraded while decoding.
func (e *Entry) decodeWarnings() []*errors.Error {
	w := &decodeWalker{entry: e.Name}
	for i, f := range e.Fields {
		w.field(f, "fields", i)
	}
	for i, f := range e.Inputs {
		w.field(f, "inputs", i)
	}
	for i, v := range e.Variants {
		where := label(v.Name, i)
		if v.invalid != nil {
			w.report(v.invalid, "variant does not decode", "variants", where)
		}
		for j, t := range v.Fields {
			w.node(t, 0, "variants", where, strconv.Itoa(j))
		}
	}
	w.node(e.Output, 0, "output")
	w.node(e.Target, 0, "target")
	return w.out
}

type decodeWalker struct {
	entry string
	out   []*errors.Error
}

func (w *decodeWalker) report(err error, detail string, path ...string) {
	w.out = append(w.out, errors.New(errors.PhaseParse, errors.KindInvalidData).
		Entry(w.entry).
		Path(path...).
		Cause(err).
		Detail("%s", detail).
		Build())
}

func (w *decodeWalker) field(f Field, group string, i int) {
	where := label(f.Name, i)
	if f.invalid != nil {
		w.report(f.invalid, "field name does not decode", group, where)
	}
	w.node(f.Type, 0, group, where)
}

func (w *decodeWalker) node(t *TypeDef, depth int, path ...string) {
	if t == nil || depth > maxDecodeReport {
		return
	}
	if t.invalid != nil {
		w.report(t.invalid, "type does not decode; rendered as unknown", path...)
		return
	}
	for i, a := range t.GenericArgs {
		w.node(a, depth+1, extend(path, strconv.Itoa(i))...)
	}
	for i, a := range t.TupleArgs {
		w.node(a, depth+1, extend(path, strconv.Itoa(i))...)
	}
	w.node(t.Elem, depth+1, extend(path, "elem")...)
	w.node(t.Target, depth+1, extend(path, "target")...)
}

func label(name string, i int) string {
	if name == "" {
		return strconv.Itoa(i)
	}
	return name
}

func extend(path []string, seg string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, seg)
}
