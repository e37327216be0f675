package abi

import (
	"strconv"
	"strings"
)

// TypeKind discriminates the TypeDef union
type TypeKind string

const (
	KindPath      TypeKind = "Path"
	KindTuple     TypeKind = "Tuple"
	KindArray     TypeKind = "Array"
	KindTypeAlias TypeKind = "TypeAlias"
)

// TypeDef is one node of the ABI type grammar.
// Only the fields belonging to Kind are meaningful.
type TypeDef struct {
	// Path
	Path        []string   `json:"path,omitempty"`
	GenericArgs []*TypeDef `json:"generic_args,omitempty"`

	// Tuple. A nil slice means the field was absent, an empty one is unit.
	TupleArgs []*TypeDef `json:"tuple_args"`

	// Array
	Elem *TypeDef `json:"elem,omitempty"`
	Len  *int     `json:"len,omitempty"`

	// TypeAlias
	Target   *TypeDef `json:"target,omitempty"`
	Generics []string `json:"generics,omitempty"`

	Kind TypeKind `json:"kind"`

	invalid error
}

// Name returns the last path segment, or "" for non-path nodes.
func (t *TypeDef) Name() string {
	if t == nil || t.Kind != KindPath || len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1]
}

// IsUnit reports whether t is the zero-length tuple.
func (t *TypeDef) IsUnit() bool {
	return t != nil && t.Kind == KindTuple && t.TupleArgs != nil && len(t.TupleArgs) == 0
}

// Resolve follows TypeAlias nodes to the first non-alias node.
// It stops after limit hops and returns nil on a dangling alias.
func (t *TypeDef) Resolve(limit int) *TypeDef {
	for i := 0; t != nil && t.Kind == KindTypeAlias; i++ {
		if i >= limit {
			return nil
		}
		t = t.Target
	}
	return t
}

// String renders t in the ABI's own Rust-like notation, for diagnostics.
func (t *TypeDef) String() string {
	if t == nil {
		return "<nil>"
	}
	var b strings.Builder
	t.write(&b, 0)
	return b.String()
}

func (t *TypeDef) write(b *strings.Builder, depth int) {
	if t == nil {
		b.WriteString("?")
		return
	}
	if depth > 32 {
		b.WriteString("...")
		return
	}
	switch t.Kind {
	case KindPath:
		b.WriteString(strings.Join(t.Path, "::"))
		if len(t.GenericArgs) > 0 {
			b.WriteByte('<')
			for i, a := range t.GenericArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				a.write(b, depth+1)
			}
			b.WriteByte('>')
		}
	case KindTuple:
		b.WriteByte('(')
		for i, a := range t.TupleArgs {
			if i > 0 {
				b.WriteString(", ")
			}
			a.write(b, depth+1)
		}
		b.WriteByte(')')
	case KindArray:
		b.WriteByte('[')
		t.Elem.write(b, depth+1)
		if t.Len != nil {
			b.WriteString("; ")
			b.WriteString(strconv.Itoa(*t.Len))
		}
		b.WriteByte(']')
	case KindTypeAlias:
		t.Target.write(b, depth+1)
	default:
		b.WriteString(string(t.Kind))
	}
}

// EntryType discriminates the Entry union
type EntryType string

const (
	EntryStruct    EntryType = "struct"
	EntryEnum      EntryType = "enum"
	EntryFunction  EntryType = "fn"
	EntryTypeAlias EntryType = "type_alias"
)

// Field is a named, typed struct field or function input.
type Field struct {
	Type *TypeDef `json:"type"`
	Name string   `json:"name"`

	invalid error
}

// Variant is one enum case. Empty Fields means a unit variant.
type Variant struct {
	Name   string     `json:"name"`
	Fields []*TypeDef `json:"fields"`

	invalid error
}

// Entry is one top-level ABI declaration.
type Entry struct {
	// fn
	Output *TypeDef `json:"output,omitempty"`

	// type_alias
	Target *TypeDef `json:"target,omitempty"`

	Type   EntryType `json:"type"`
	Name   string    `json:"name"`
	Method string    `json:"method,omitempty"`

	// struct
	Fields []Field `json:"fields,omitempty"`

	// enum
	Variants []Variant `json:"variants,omitempty"`

	// fn
	Inputs []Field `json:"inputs,omitempty"`

	// type_alias
	Generics []string `json:"generics,omitempty"`
}

// Method role tags selecting the remote dispatch verb.
const (
	MethodInit     = "init"
	MethodGet      = "get"
	MethodPost     = "post"
	MethodCallback = "callback"
)

// Helpers for building type trees in code and tests.

// P builds a Path node from a single name.
func P(name string, args ...*TypeDef) *TypeDef {
	return &TypeDef{Kind: KindPath, Path: []string{name}, GenericArgs: args}
}

// Tup builds a Tuple node. Tup() is the unit type.
func Tup(args ...*TypeDef) *TypeDef {
	if args == nil {
		args = []*TypeDef{}
	}
	return &TypeDef{Kind: KindTuple, TupleArgs: args}
}

// Arr builds an Array node. A negative n means no declared length.
func Arr(elem *TypeDef, n int) *TypeDef {
	t := &TypeDef{Kind: KindArray, Elem: elem}
	if n >= 0 {
		t.Len = &n
	}
	return t
}

// Alias builds an inline TypeAlias node.
func Alias(target *TypeDef, generics ...string) *TypeDef {
	return &TypeDef{Kind: KindTypeAlias, Target: target, Generics: generics}
}

// Substitute returns a copy of t with every single-segment Path naming one of
// params replaced by the corresponding arg. Missing args leave the parameter
// in place.
func (t *TypeDef) Substitute(params []string, args []*TypeDef) *TypeDef {
	if t == nil || len(params) == 0 {
		return t
	}
	bind := make(map[string]*TypeDef, len(params))
	for i, p := range params {
		if i < len(args) && args[i] != nil {
			bind[p] = args[i]
		}
	}
	return t.substitute(bind, 0)
}

func (t *TypeDef) substitute(bind map[string]*TypeDef, depth int) *TypeDef {
	if t == nil || depth > 256 {
		return t
	}
	if t.Kind == KindPath && len(t.Path) == 1 && len(t.GenericArgs) == 0 {
		if r, ok := bind[t.Path[0]]; ok {
			return r
		}
	}
	c := *t
	c.GenericArgs = substituteAll(t.GenericArgs, bind, depth)
	c.TupleArgs = substituteAll(t.TupleArgs, bind, depth)
	c.Elem = t.Elem.substitute(bind, depth+1)
	c.Target = t.Target.substitute(bind, depth+1)
	return &c
}

func substituteAll(ts []*TypeDef, bind map[string]*TypeDef, depth int) []*TypeDef {
	if ts == nil {
		return nil
	}
	out := make([]*TypeDef, len(ts))
	for i, t := range ts {
		out[i] = t.substitute(bind, depth+1)
	}
	return out
}
