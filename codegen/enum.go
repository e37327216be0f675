package codegen

import (
	"strconv"
	"strings"

	"github.com/wippyai/abigen/abi"
)

// processEnum emits the tagged-union type and the create factory of an enum
// entry. Payload slots use codec naming; a slot whose codec is a constructor
// expression rather than a type name is declared as Codec with the
// expression kept in a trailing comment.
func (s *Session) processEnum(e *abi.Entry) {
	name := e.Name
	s.dependsOn(name, nil)

	var decl strings.Builder
	decl.WriteString("export type ")
	decl.WriteString(name)
	decl.WriteString(" =")

	if len(e.Variants) == 0 {
		decl.WriteString(" never;")
	}
	for i, v := range e.Variants {
		tag := quote(v.Name)
		decl.WriteString("\n  | { type: ")
		decl.WriteString(tag)
		if len(v.Fields) == 0 {
			decl.WriteString(" }")
		} else {
			slots := make([]string, len(v.Fields))
			for j, ft := range v.Fields {
				s.conv.At(name, "variants", variantLabel(v.Name, i), strconv.Itoa(j))
				s.dependsOn(name, ft)
				slots[j] = slotType(s.wire(ft))
			}
			decl.WriteString("; value: [")
			decl.WriteString(strings.Join(slots, ", "))
			decl.WriteString("] }")
		}
		if i == len(e.Variants)-1 {
			decl.WriteByte(';')
		}
	}

	var factory strings.Builder
	factory.WriteString("export const ")
	factory.WriteString(name)
	factory.WriteString(" = {\n")
	factory.WriteString("  create(type: string, ...values: unknown[]): ")
	factory.WriteString(name)
	factory.WriteString(" {\n")
	factory.WriteString("    if (typeof type !== 'string') throw new Error('Enum variant type must be a string');\n")
	factory.WriteString("    if (values.length > 0) {\n")
	factory.WriteString("      return { type, value: values } as unknown as ")
	factory.WriteString(name)
	factory.WriteString(";\n")
	factory.WriteString("    }\n")
	factory.WriteString("    return { type } as unknown as ")
	factory.WriteString(name)
	factory.WriteString(";\n")
	factory.WriteString("  },\n")
	factory.WriteString("};")

	code := decl.String() + "\n\n" + factory.String()
	s.enumDecls = append(s.enumDecls, code)
	s.fragments = append(s.fragments, Fragment{
		Entry:     name,
		Type:      abi.EntryEnum,
		Signature: "type " + name + " (" + strconv.Itoa(len(e.Variants)) + " variants)",
		Code:      code,
	})
}

func variantLabel(name string, i int) string {
	if name == "" {
		return strconv.Itoa(i)
	}
	return name
}

// slotType turns a codec rendering into something usable in type position.
func slotType(wire string) string {
	if isTypeName(wire) {
		return wire
	}
	return "Codec /* " + strings.ReplaceAll(wire, "*/", "* /") + " */"
}

// isTypeName accepts Name and Name<...> forms.
func isTypeName(s string) bool {
	base, rest, generic := strings.Cut(s, "<")
	if !isIdent(base) {
		return false
	}
	return !generic || strings.HasSuffix(rest, ">")
}
