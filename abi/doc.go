// Package abi defines the ABI description consumed by the generator and its
// JSON decoding.
//
// An ABI document is a list of entries. Each entry is tagged by "type":
//
//	struct      name + ordered fields {name, type}
//	enum        name + ordered variants {name, fields: [type...]}
//	fn          name + method (init|get|post|callback) + inputs + optional output
//	type_alias  name + target + optional generics
//
// Types are TypeDef nodes tagged by "kind":
//
//	Path       {"kind":"Path","path":["Vec"],"generic_args":[...]}
//	Tuple      {"kind":"Tuple","tuple_args":[...]}   (empty list is unit)
//	Array      {"kind":"Array","elem":{...},"len":32} (len optional)
//	TypeAlias  {"kind":"TypeAlias","target":{...},"generics":["T"]}
//
// The decoded graph is never mutated by the generator. Parse rejects a
// top-level value that is neither an object nor an array; everything below
// that level is accepted as-is and left to the generator's fallback rules.
package abi
