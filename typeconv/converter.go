package typeconv

import (
	"strconv"
	"strings"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/errors"
)

// Mode selects the projection a conversion produces.
type Mode uint8

const (
	// Native renders TypeScript data-shape types (number, Array<T>, T | null).
	Native Mode = iota
	// Wire renders codec constructor expressions (U32, Vec.with(T)).
	Wire
)

func (m Mode) String() string {
	if m == Wire {
		return "wire"
	}
	return "native"
}

// DefaultMaxDepth bounds type-tree recursion.
const DefaultMaxDepth = 64

// Unknown is the fallback rendering for anything that cannot be converted.
const Unknown = "unknown"

// Converter projects ABI type trees onto native and wire renderings.
//
// A Converter accumulates the wire symbols it emits and the diagnostics for
// degraded conversions. It is owned by one generation session and is not
// safe for concurrent use.
type Converter struct {
	// Bare reports user type names that are declared as type aliases or
	// enums, which render without the interface marker in native mode.
	Bare func(name string) bool

	// Expand, when set, is consulted in wire mode for user type names. It
	// returns the codec expression standing in for the named type, such as
	// the expanded target of a declared alias.
	Expand func(t *abi.TypeDef) (string, bool)

	symbols  map[string]struct{}
	entry    string
	where    []string
	diags    []*errors.Error
	maxDepth int
}

// New creates a converter. A maxDepth <= 0 selects DefaultMaxDepth.
func New(maxDepth int) *Converter {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Converter{
		maxDepth: maxDepth,
		symbols:  make(map[string]struct{}),
	}
}

// At sets the entry name and position used to attribute diagnostics.
func (c *Converter) At(entry string, where ...string) *Converter {
	c.entry = entry
	c.where = where
	return c
}

// Convert renders t in the given mode. When generics is non-empty, names
// listed there, and single-segment generic instantiations, are treated as
// free type parameters and left unprefixed in native mode.
func (c *Converter) Convert(t *abi.TypeDef, mode Mode, generics ...string) string {
	var scope map[string]struct{}
	if len(generics) > 0 {
		scope = make(map[string]struct{}, len(generics))
		for _, g := range generics {
			scope[g] = struct{}{}
		}
	}
	return c.convert(t, mode, scope, nil, 0)
}

// Symbols returns the sorted wire symbols emitted so far.
func (c *Converter) Symbols() []string {
	return sortedKeys(c.symbols)
}

// Diagnostics returns the degradations recorded so far.
func (c *Converter) Diagnostics() []*errors.Error {
	return c.diags
}

func (c *Converter) use(sym string) {
	c.symbols[sym] = struct{}{}
}

func (c *Converter) warn(e *errors.Error, path []string) {
	full := make([]string, 0, len(c.where)+len(path))
	full = append(full, c.where...)
	full = append(full, path...)
	e.Path = full
	e.Entry = c.entry
	c.diags = append(c.diags, e)
}

func (c *Converter) convert(t *abi.TypeDef, mode Mode, scope map[string]struct{}, path []string, depth int) string {
	if depth > c.maxDepth {
		c.warn(errors.DepthExceeded(errors.PhaseConvert, nil, c.maxDepth), path)
		return Unknown
	}
	if t == nil {
		c.warn(errors.FieldMissing(errors.PhaseConvert, nil, "type"), path)
		return Unknown
	}

	switch t.Kind {
	case abi.KindPath:
		return c.convertPath(t, mode, scope, path, depth)
	case abi.KindTuple:
		return c.convertTuple(t, mode, scope, path, depth)
	case abi.KindArray:
		return c.convertArray(t, mode, scope, path, depth)
	case abi.KindTypeAlias:
		if t.Target == nil {
			c.warn(errors.FieldMissing(errors.PhaseConvert, nil, "target"), path)
			return Unknown
		}
		return c.convert(t.Target, mode, scope, path, depth+1)
	default:
		c.warn(errors.UnknownType(errors.PhaseConvert, nil, "kind "+strconv.Quote(string(t.Kind))), path)
		return Unknown
	}
}

func (c *Converter) convertPath(t *abi.TypeDef, mode Mode, scope map[string]struct{}, path []string, depth int) string {
	name := t.Name()
	if name == "" {
		c.warn(errors.New(errors.PhaseConvert, errors.KindInvalidData).Detail("empty path").Build(), path)
		return Unknown
	}

	if s, ok := LookupScalar(name); ok {
		if mode == Wire {
			c.use(s.Codec())
			return s.Codec()
		}
		return s.Native()
	}

	args := t.GenericArgs
	switch name {
	case NameVec:
		var inner string
		if len(args) == 0 || args[0] == nil {
			c.warn(errors.Arity(errors.PhaseConvert, nil, name, len(args), 1), path)
			inner = Unknown
		} else {
			inner = c.convert(args[0], mode, scope, append(path, name), depth+1)
		}
		if mode == Wire {
			c.use("Vec")
			return "Vec.with(" + inner + ")"
		}
		return "Array<" + inner + ">"

	case NameOption:
		var inner string
		if len(args) == 0 || args[0] == nil {
			c.warn(errors.Arity(errors.PhaseConvert, nil, name, len(args), 1), path)
			inner = Unknown
		} else {
			inner = c.convert(args[0], mode, scope, append(path, name), depth+1)
		}
		if mode == Wire {
			c.use("Option")
			return "Option.with(" + inner + ")"
		}
		return inner + " | null"

	case NameResult:
		if len(args) != 2 || args[0] == nil || args[1] == nil {
			c.warn(errors.Arity(errors.PhaseConvert, nil, name, len(args), 2), path)
			return Unknown
		}
		ok := c.convert(args[0], mode, scope, append(path, "Ok"), depth+1)
		er := c.convert(args[1], mode, scope, append(path, "Err"), depth+1)
		if mode == Wire {
			c.use("Result")
			return "Result.with({ Ok: " + ok + ", Err: " + er + " })"
		}
		return "{ ok: " + ok + " | null, err: " + er + " | null }"
	}

	if mode == Wire && c.Expand != nil {
		if expr, ok := c.Expand(t); ok {
			return expr
		}
	}

	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = c.convert(a, mode, scope, append(path, name, strconv.Itoa(i)), depth+1)
	}
	generic := ""
	if len(rendered) > 0 {
		generic = "<" + strings.Join(rendered, ", ") + ">"
	}

	if mode == Wire {
		return name + generic
	}
	if scope != nil && len(t.Path) == 1 {
		if _, free := scope[name]; free || len(args) > 0 {
			return name + generic
		}
	}
	return c.nativeName(name) + generic
}

// nativeName applies the interface marker to a user type name.
func (c *Converter) nativeName(name string) string {
	if IsReservedCodec(name) || HasInterfaceMarker(name) {
		return name
	}
	if c.Bare != nil && c.Bare(name) {
		return name
	}
	return "I" + name
}

// HasInterfaceMarker reports whether name already reads as IName.
func HasInterfaceMarker(name string) bool {
	return len(name) >= 2 && name[0] == 'I' && name[1] >= 'A' && name[1] <= 'Z'
}

func (c *Converter) convertTuple(t *abi.TypeDef, mode Mode, scope map[string]struct{}, path []string, depth int) string {
	if t.TupleArgs == nil {
		c.warn(errors.FieldMissing(errors.PhaseConvert, nil, "tuple_args"), path)
		if mode == Wire {
			return Unknown
		}
		return "[" + Unknown + "]"
	}
	if len(t.TupleArgs) == 0 {
		if mode == Wire {
			c.use("Null")
			return "Null"
		}
		return "[]"
	}
	elems := make([]string, len(t.TupleArgs))
	for i, a := range t.TupleArgs {
		elems[i] = c.convert(a, mode, scope, append(path, strconv.Itoa(i)), depth+1)
	}
	if mode == Wire {
		c.use("Tuple")
		return "Tuple.with([" + strings.Join(elems, ", ") + "])"
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (c *Converter) convertArray(t *abi.TypeDef, mode Mode, scope map[string]struct{}, path []string, depth int) string {
	var elem string
	if t.Elem == nil {
		c.warn(errors.FieldMissing(errors.PhaseConvert, nil, "elem"), path)
		elem = Unknown
	} else {
		elem = c.convert(t.Elem, mode, scope, append(path, "elem"), depth+1)
	}

	if mode == Native {
		if hasTopLevelUnion(elem) {
			return "(" + elem + ")[]"
		}
		return elem + "[]"
	}
	if t.Len != nil {
		c.use("VecFixed")
		return "VecFixed.with(" + elem + ", " + strconv.Itoa(*t.Len) + ")"
	}
	c.use("Vec")
	return "Vec.with(" + elem + ")"
}

// hasTopLevelUnion reports whether s contains a '|' outside any brackets.
func hasTopLevelUnion(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '[', '(', '<':
			depth++
		case '}', ']', ')', '>':
			depth--
		case '|':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}
