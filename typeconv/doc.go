// Package typeconv converts ABI type trees into TypeScript renderings.
//
// Every conversion runs in one of two modes:
//
//	Native  caller-facing data shapes       u32 -> number, Vec<T> -> Array<T>
//	Wire    codec constructor expressions    u32 -> U32,    Vec<T> -> Vec.with(T)
//
// The mode is an explicit argument threaded through every recursive call.
//
// # Mapping
//
//	ABI                  Native                          Wire
//	u8..u128, i8..i128   number                          U8..U128, I8..I128
//	f32, f64             number                          F32, F64
//	bool                 boolean                         Bool
//	String, str, Text    string                          Text
//	Vec<T>               Array<T>                        Vec.with(T)
//	Option<T>            T | null                        Option.with(T)
//	Result<T, E>         { ok: T | null, err: E | null } Result.with({ Ok: T, Err: E })
//	Name<A>              IName<A>                        Name<A>
//	()                   []                              Null
//	(A, B)               [A, B]                          Tuple.with([A, B])
//	[T; n]               T[]                             VecFixed.with(T, n)
//	[T]                  T[]                             Vec.with(T)
//
// Anything that cannot be converted renders as unknown and is recorded as a
// diagnostic on the Converter. Recursion is bounded by a depth limit; a deeper
// subtree is truncated to unknown.
//
// Imports walks a tree the same way and returns the codec symbols the wire
// rendering references.
package typeconv
