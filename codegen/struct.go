package codegen

import (
	"strconv"
	"strings"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/errors"
)

// processStruct emits the data-shape interface and the codec class of a
// struct entry.
func (s *Session) processStruct(e *abi.Entry) {
	name := e.Name
	s.dependsOn(name, nil)
	s.use("Struct")

	var iface, defs, getters strings.Builder

	iface.WriteString("export interface I")
	iface.WriteString(name)
	iface.WriteString(" {\n")

	for i, f := range e.Fields {
		where := f.Name
		if where == "" {
			where = strconv.Itoa(i)
		}
		s.conv.At(name, "fields", where)

		if f.Name == "" {
			s.warn(errors.FieldMissing(errors.PhaseGenerate, []string{"fields", where}, "name").WithEntry(name))
			continue
		}
		s.dependsOn(name, f.Type)

		wire := s.wire(f.Type)
		native := s.native(f.Type)
		key := propertyKey(f.Name)

		iface.WriteString("  ")
		iface.WriteString(key)
		iface.WriteString(": ")
		iface.WriteString(native)
		iface.WriteString(";\n")

		defs.WriteString("      /** ")
		defs.WriteString(f.Name)
		defs.WriteString(" field type: ")
		defs.WriteString(wire)
		defs.WriteString(" */\n      ")
		defs.WriteString(key)
		defs.WriteString(": ")
		defs.WriteString(wire)
		defs.WriteString(",\n")

		if !isIdent(f.Name) {
			s.warn(errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Entry(name).
				Path("fields", f.Name).
				Detail("field name is not an identifier; no getter emitted").
				Build())
			continue
		}
		if _, clash := structMembers[f.Name]; clash {
			s.warn(errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Entry(name).
				Path("fields", f.Name).
				Detail("field shadows a Struct member; use .get('%s')", f.Name).
				Build())
			continue
		}
		getters.WriteString("\n  get ")
		getters.WriteString(f.Name)
		getters.WriteString("(): Codec {\n    return this.get(")
		getters.WriteString(quote(f.Name))
		getters.WriteString(") as Codec;\n  }\n")
	}
	iface.WriteString("}")

	var class strings.Builder
	class.WriteString("export class ")
	class.WriteString(name)
	class.WriteString(" extends Struct {\n")
	class.WriteString("  constructor(registry: Registry, value?: any) {\n")
	class.WriteString("    super(registry, {\n")
	class.WriteString(defs.String())
	class.WriteString("    }, value);\n")
	class.WriteString("  }\n")
	class.WriteString(getters.String())
	class.WriteString("\n  static from(registry: Registry, obj: I")
	class.WriteString(name)
	class.WriteString(" | null | undefined): ")
	class.WriteString(name)
	class.WriteString(" | null {\n")
	class.WriteString("    if (!obj) return null;\n")
	class.WriteString("    return new ")
	class.WriteString(name)
	class.WriteString("(registry, obj);\n")
	class.WriteString("  }\n}")

	s.interfaces = append(s.interfaces, iface.String())
	s.classes = append(s.classes, class.String())
	s.classNames = append(s.classNames, name)
	s.fragments = append(s.fragments, Fragment{
		Entry:     name,
		Type:      abi.EntryStruct,
		Signature: "class " + name + " extends Struct",
		Code:      iface.String() + "\n\n" + class.String(),
	})
}
