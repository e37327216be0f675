// Package config loads generator settings from a TOML file.
//
// Example abigen.toml:
//
//	import-path = "@polkadot/types-codec"
//	routing-param = "nucleusId"
//	dispatch-prefix = "nucleus_"
//	max-depth = 64
//	stamp = true
//	verify = false
//
//	[server]
//	addr = "127.0.0.1:3001"
//
//	[wasm]
//	section = "abi"
//
// Command-line flags override file values.
package config
