// Package abigen generates TypeScript client bindings from a nucleus ABI.
//
// The ABI is a JSON document describing structs, enums, type aliases and
// callable functions in a Rust-like type grammar. The generator emits one
// TypeScript module targeting the polkadot codec library: codec classes for
// every struct, tagged unions for enums, alias declarations, and async
// wrappers that encode arguments, dispatch them over JSON-RPC and decode the
// response.
//
// # Architecture Overview
//
//	abigen/
//	├── abi/                 ABI data model and JSON decoding
//	├── typeconv/            Type converter (native and wire modes), import collector
//	├── codegen/             Generation session, entry processors, template assembler
//	├── errors/              Structured diagnostics
//	├── config/              TOML configuration
//	├── witimport/           WIT type definitions as ABI entries
//	├── explorer/            HTTP, websocket and metrics server
//	├── internal/wasmabi/    ABI extraction from a wasm custom section
//	├── internal/tscheck/    Syntax check of the emitted TypeScript
//	└── cmd/abigen/          CLI and interactive explorer
//
// # Quick Start
//
// Generate bindings from ABI bytes:
//
//	res, err := codegen.GenerateJSON(data, codegen.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("nucleus.ts", []byte(res.Code), 0o644)
//	for _, w := range res.Warnings {
//	    log.Println(w)
//	}
//
// Or from the command line:
//
//	abigen abi.json ./output
//	abigen -verify nucleus.wasm ./output
//	abigen -serve -addr :3001
//
// # Type Mapping
//
// Each ABI type renders two ways. The native form is the TypeScript shape of
// a value; the wire form is the codec constructor used to encode it.
//
//	ABI              native                           wire
//	u8..u128, i*     number                           U8..U128, I8..I128
//	bool             boolean                          Bool
//	String           string                           Text
//	Vec<T>           Array<T>                         Vec.with(T)
//	Option<T>        T | null                         Option.with(T)
//	Result<T, E>     { ok: T | null, err: E | null }  Result.with({ Ok: T, Err: E })
//	(A, B)           [A, B]                           Tuple.with([A, B])
//	()               []                               Null
//	[T; N]           T[]                              VecFixed.with(T, N)
//	Name             IName                            Name
//
// # Diagnostics
//
// Generation never aborts on a malformed type. Unconvertible nodes render as
// unknown and are reported as *errors.Error values in Result.Warnings, with
// the entry and field path where they occurred.
package abigen
