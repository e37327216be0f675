// Package wasmabi reads an ABI document embedded in a compiled wasm binary.
//
// A nucleus build stores its ABI JSON in a custom section, "abi" by default.
package wasmabi
