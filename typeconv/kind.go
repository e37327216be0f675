package typeconv

// Scalar enumerates the primitive leaf names of the ABI grammar.
type Scalar uint8

const (
	ScalarU8 Scalar = iota
	ScalarU16
	ScalarU32
	ScalarU64
	ScalarU128
	ScalarI8
	ScalarI16
	ScalarI32
	ScalarI64
	ScalarI128
	ScalarF32
	ScalarF64
	ScalarBool
	ScalarText
)

var scalarNames = [...]string{
	ScalarU8:   "u8",
	ScalarU16:  "u16",
	ScalarU32:  "u32",
	ScalarU64:  "u64",
	ScalarU128: "u128",
	ScalarI8:   "i8",
	ScalarI16:  "i16",
	ScalarI32:  "i32",
	ScalarI64:  "i64",
	ScalarI128: "i128",
	ScalarF32:  "f32",
	ScalarF64:  "f64",
	ScalarBool: "bool",
	ScalarText: "String",
}

var scalarCodecs = [...]string{
	ScalarU8:   "U8",
	ScalarU16:  "U16",
	ScalarU32:  "U32",
	ScalarU64:  "U64",
	ScalarU128: "U128",
	ScalarI8:   "I8",
	ScalarI16:  "I16",
	ScalarI32:  "I32",
	ScalarI64:  "I64",
	ScalarI128: "I128",
	ScalarF32:  "F32",
	ScalarF64:  "F64",
	ScalarBool: "Bool",
	ScalarText: "Text",
}

var scalarByName = map[string]Scalar{
	"u8":     ScalarU8,
	"u16":    ScalarU16,
	"u32":    ScalarU32,
	"u64":    ScalarU64,
	"u128":   ScalarU128,
	"i8":     ScalarI8,
	"i16":    ScalarI16,
	"i32":    ScalarI32,
	"i64":    ScalarI64,
	"i128":   ScalarI128,
	"f32":    ScalarF32,
	"f64":    ScalarF64,
	"bool":   ScalarBool,
	"String": ScalarText,
	"str":    ScalarText,
	"Text":   ScalarText,
}

// LookupScalar maps an ABI leaf name to its scalar kind.
func LookupScalar(name string) (Scalar, bool) {
	s, ok := scalarByName[name]
	return s, ok
}

func (s Scalar) String() string {
	if int(s) < len(scalarNames) {
		return scalarNames[s]
	}
	return "unknown"
}

// Codec returns the canonical codec class name.
func (s Scalar) Codec() string {
	if int(s) < len(scalarCodecs) {
		return scalarCodecs[s]
	}
	return "unknown"
}

// Native returns the TypeScript primitive type.
func (s Scalar) Native() string {
	switch s {
	case ScalarBool:
		return "boolean"
	case ScalarText:
		return "string"
	default:
		if int(s) < len(scalarNames) {
			return "number"
		}
		return "unknown"
	}
}

func (s Scalar) IsFloat() bool {
	return s == ScalarF32 || s == ScalarF64
}

// reservedCodecs are names that already denote codec-library types and are
// never given the interface marker.
var reservedCodecs = map[string]struct{}{
	"U8": {}, "U16": {}, "U32": {}, "U64": {}, "U128": {},
	"I8": {}, "I16": {}, "I32": {}, "I64": {}, "I128": {},
	"F32": {}, "F64": {}, "Bool": {}, "Text": {}, "String": {},
	"Null": {}, "Vec": {}, "VecFixed": {}, "Option": {}, "Result": {},
	"Tuple": {}, "Struct": {}, "Codec": {},
}

// IsReservedCodec reports whether name is a codec-library type name.
func IsReservedCodec(name string) bool {
	_, ok := reservedCodecs[name]
	return ok
}

// Container names with dedicated conversion rules.
const (
	NameVec    = "Vec"
	NameOption = "Option"
	NameResult = "Result"
)

// IsBuiltin reports whether name is a scalar or one of the generic containers.
func IsBuiltin(name string) bool {
	if _, ok := LookupScalar(name); ok {
		return true
	}
	switch name {
	case NameVec, NameOption, NameResult:
		return true
	}
	return false
}
