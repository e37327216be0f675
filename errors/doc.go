// Package errors provides structured error types for the abigen generator.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries rich context: the ABI entry, a position
// path inside it, the offending ABI type name, and a cause chain.
//
// The same type doubles as the diagnostic record for best-effort generation:
// a degraded conversion never aborts, it is appended to the result's warning
// list as an *Error with PhaseConvert or PhaseGenerate.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindArity).
//		Entry("transfer").
//		Path("inputs", "0").
//		AbiType("Result").
//		Detail("expected 2 type arguments").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(errors.PhaseConvert, path, "Weird")
//	err := errors.InvalidInput(errors.PhaseParse, "top-level value must be an object or array")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
