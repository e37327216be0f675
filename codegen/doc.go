// Package codegen turns ABI entries into one TypeScript client module.
//
// A Session owns all state of one generation run: the converter, the codec
// import set, the informational dependency graph, the emitted fragments and
// the diagnostics. Generate and GenerateJSON create a fresh session per call,
// so generation is re-entrant and repeated runs over the same input produce
// byte-identical output.
//
// # Entry processing
//
//	struct      interface IName (native field types) and class Name extends Struct
//	            (codec field definitions, getters, static from)
//	enum        tagged union type Name and a Name.create(type, ...values) factory
//	type_alias  type Name<G> = native target; a Result target also gets
//	            createNameTypeResult(OkType) binding the error codec, or
//	            createNameTypeResult(OkType, ErrType) when the error slot
//	            refers to a generic
//	fn          async wrapper encoding each argument, dispatching through
//	            api.provider.send('<prefix><method>', [routing, name, ...hex])
//	            and decoding the response
//
// Argument encoding is chosen from a structural descriptor of each input:
// more than one scalar input is encoded once as a Tuple; otherwise each input
// is constructed from its codec (alias factory, struct class, Tuple, or plain
// codec) and sent as hex. A construction that throws is sent as null.
//
// # Output layout
//
//	header
//	codec imports (collected plus a fixed baseline, sorted)
//	registry, registerTypes, initApi, encodeArg
//	aliases, interfaces, classes, enums, functions
//
// Degraded conversions never abort generation. They are returned in
// Result.Warnings as *errors.Error values.
package codegen
