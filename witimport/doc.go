// Package witimport converts WIT type definitions into ABI entries, so a
// component's interface can be bound with the same generator as a native ABI
// document.
//
// WIT names are kebab-case; type names become PascalCase and field names
// snake_case. Functions are not imported.
package witimport
