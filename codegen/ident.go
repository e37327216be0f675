package codegen

import (
	"strconv"
	"strings"

	"github.com/wippyai/abigen/typeconv"
)

var tsReserved = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {}, "continue": {},
	"debugger": {}, "default": {}, "delete": {}, "do": {}, "else": {}, "enum": {},
	"export": {}, "extends": {}, "false": {}, "finally": {}, "for": {}, "function": {},
	"if": {}, "import": {}, "in": {}, "instanceof": {}, "new": {}, "null": {},
	"return": {}, "super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
	"yield": {}, "let": {}, "static": {}, "implements": {}, "interface": {},
	"package": {}, "private": {}, "protected": {}, "public": {}, "await": {},
	"arguments": {}, "eval": {}, "undefined": {},
}

// Identifiers the emitted module declares at top level.
var moduleNames = map[string]struct{}{
	"api": {}, "registry": {}, "registered": {}, "registerTypes": {},
	"initApi": {}, "encodeArg": {}, "hexToU8a": {},
	"ApiPromise": {}, "HttpProvider": {}, "TypeRegistry": {},
	"Registry": {}, "Codec": {}, "CodecClass": {},
}

// clashesWithModule reports whether a declared type name would redeclare an
// import or a top-level helper of the emitted module.
func clashesWithModule(name string) bool {
	if typeconv.IsReservedCodec(name) {
		return true
	}
	if _, ok := moduleNames[name]; ok {
		return true
	}
	_, ok := tsReserved[name]
	return ok
}

// Members of the codec Struct base class that a field getter must not shadow.
var structMembers = map[string]struct{}{
	"size": {}, "entries": {}, "keys": {}, "values": {}, "get": {}, "set": {},
	"has": {}, "delete": {}, "clear": {}, "forEach": {}, "registry": {},
	"hash": {}, "isEmpty": {}, "encodedLength": {}, "defKeys": {}, "Type": {},
	"createdAtHash": {}, "initialU8aLength": {}, "isStorageFallback": {},
	"eq": {}, "inspect": {}, "toHex": {}, "toHuman": {}, "toJSON": {},
	"toPrimitive": {}, "toRawType": {}, "toString": {}, "toU8a": {},
	"getT": {}, "getAtIndex": {}, "toArray": {}, "constructor": {},
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// isIdent reports whether s is a syntactically valid identifier.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

// safeIdent turns name into an identifier that is neither reserved nor one of
// the module's own top-level names.
func safeIdent(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isIdentPart(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" || !isIdentStart(s[0]) {
		s = "_" + s
	}
	if _, ok := tsReserved[s]; ok {
		return s + "_"
	}
	if _, ok := moduleNames[s]; ok {
		return s + "_"
	}
	return s
}

// propertyKey renders name as an object-literal key.
func propertyKey(name string) string {
	if isIdent(name) {
		return name
	}
	return quote(name)
}

// quote renders s as a single-quoted string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// namer hands out unique local identifiers within one function body.
type namer struct {
	used map[string]struct{}
}

func newNamer(reserved ...string) *namer {
	n := &namer{used: make(map[string]struct{})}
	for _, r := range reserved {
		n.used[r] = struct{}{}
	}
	return n
}

func (n *namer) take(base string) string {
	name := base
	for i := 2; ; i++ {
		if _, ok := n.used[name]; !ok {
			break
		}
		name = base + strconv.Itoa(i)
	}
	n.used[name] = struct{}{}
	return name
}
