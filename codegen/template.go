package codegen

import (
	"strings"
)

// baselineImports are always imported, whether referenced or not.
var baselineImports = []string{"Struct", "Vec", "Tuple", "Option", "Result", "U32", "I32", "Text"}

// assemble joins the accumulated fragments into one source unit. The group
// order is fixed: later groups reference identifiers declared by earlier ones.
func (s *Session) assemble() string {
	var b strings.Builder

	b.WriteString("/**\n")
	b.WriteString(" * This is an automatically generated file. DO NOT MODIFY IT DIRECTLY.\n")
	b.WriteString(" * Generated by " + s.opts.Generator + ".\n")
	b.WriteString(" * WARNING: Any manual changes to this file will be overwritten on next generation\n")
	b.WriteString(" */\n\n")

	b.WriteString("import { " + strings.Join(s.importList(), ", ") + " } from " + quote(s.opts.ImportPath) + ";\n")
	b.WriteString("import type { Codec, CodecClass } from '@polkadot/types-codec/types';\n")
	b.WriteString("import { ApiPromise, HttpProvider } from '@polkadot/api';\n")
	b.WriteString("import { TypeRegistry } from '@polkadot/types';\n")
	b.WriteString("import type { Registry } from '@polkadot/types/types';\n")
	b.WriteString("import { hexToU8a } from '@polkadot/util';\n\n")

	s.writeConnection(&b)

	groups := [][]string{s.aliasDecls, s.interfaces, s.classes, s.enumDecls, s.functions}
	for _, g := range groups {
		for _, frag := range g {
			b.WriteString("\n")
			b.WriteString(frag)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// writeConnection emits the registry, the lazily registered codec classes,
// initApi and the argument encoding helper. Registration runs inside initApi
// because the class declarations follow this block.
func (s *Session) writeConnection(b *strings.Builder) {
	b.WriteString("export const registry: Registry = new TypeRegistry() as unknown as Registry;\n\n")
	b.WriteString("let api: ApiPromise | undefined;\n")
	b.WriteString("let registered = false;\n\n")

	b.WriteString("function registerTypes(): Registry {\n")
	b.WriteString("  if (registered) return registry;\n")
	b.WriteString("  registered = true;\n")
	b.WriteString("  try {\n")
	b.WriteString("    registry.register({\n")
	for _, name := range s.classNames {
		b.WriteString("      " + name + ",\n")
	}
	b.WriteString("    });\n")
	b.WriteString("  } catch (error) {\n")
	b.WriteString("    console.warn('type register error:', error);\n")
	b.WriteString("  }\n")
	b.WriteString("  return registry;\n")
	b.WriteString("}\n\n")

	b.WriteString("export async function initApi(endpoint: string): Promise<ApiPromise> {\n")
	b.WriteString("  registerTypes();\n")
	b.WriteString("  const provider = new HttpProvider(endpoint);\n")
	b.WriteString("  api = await ApiPromise.create({ provider, registry });\n")
	b.WriteString("  return api;\n")
	b.WriteString("}\n\n")

	b.WriteString("function encodeArg(build: () => Codec): string | null {\n")
	b.WriteString("  try {\n")
	b.WriteString("    return build().toHex();\n")
	b.WriteString("  } catch {\n")
	b.WriteString("    return null;\n")
	b.WriteString("  }\n")
	b.WriteString("}\n")
}
