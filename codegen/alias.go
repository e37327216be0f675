package codegen

import (
	"strings"

	"github.com/wippyai/abigen/abi"
)

// processTypeAlias emits the alias declaration and, for a Result target, the
// factory that takes the ok codec at the call site. The error slot is bound in
// the factory unless it refers to a generic, in which case the call site
// supplies it too.
func (s *Session) processTypeAlias(e *abi.Entry) {
	name := e.Name
	s.dependsOn(name, nil)
	s.conv.At(name, "target")

	var b strings.Builder
	b.WriteString("export type ")
	b.WriteString(name)
	if len(e.Generics) > 0 {
		b.WriteByte('<')
		b.WriteString(strings.Join(e.Generics, ", "))
		b.WriteByte('>')
	}
	b.WriteString(" = ")
	b.WriteString(s.native(e.Target, e.Generics...))
	b.WriteByte(';')

	sig := "type " + name
	if errParam, ok := s.factories[name]; ok {
		s.use("Result")
		params := "OkType: CodecClass | string"
		errCodec := "ErrType"
		if errParam {
			params += ", ErrType: CodecClass | string"
		} else {
			s.conv.At(name, "target", "Err")
			errCodec = s.wire(e.Target.GenericArgs[1])
		}

		b.WriteString("\n\nexport function ")
		b.WriteString(factoryName(name))
		b.WriteString("(" + params + ") {\n")
		b.WriteString("  return Result.with({ Ok: OkType, Err: ")
		b.WriteString(errCodec)
		b.WriteString(" });\n}")
		if errParam {
			sig += ", " + factoryName(name) + "(OkType, ErrType)"
		} else {
			sig += ", " + factoryName(name) + "(OkType)"
		}
	}

	code := b.String()
	s.aliasDecls = append(s.aliasDecls, code)
	s.fragments = append(s.fragments, Fragment{
		Entry:     name,
		Type:      abi.EntryTypeAlias,
		Signature: sig,
		Code:      code,
	})
}
