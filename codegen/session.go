package codegen

import (
	"slices"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/typeconv"
)

// Fragment is the generated text for one ABI entry.
type Fragment struct {
	Entry     string
	Type      abi.EntryType
	Signature string
	Code      string
}

// Result is the output of one generation run.
type Result struct {
	// Dependencies maps struct, enum and alias names to the sorted user type
	// names they reference. Informational only.
	Dependencies map[string][]string
	Code         string
	// Imports is the sorted codec symbol list of the import statement.
	Imports   []string
	Warnings  []*errors.Error
	Fragments []Fragment
}

// Session owns every accumulator of exactly one generation run.
// It must not be reused or shared between goroutines.
type Session struct {
	conv *typeconv.Converter

	imports map[string]struct{}
	deps    map[string]map[string]struct{}

	structs   map[string]*abi.Entry
	enums     map[string]*abi.Entry
	aliases   map[string]*abi.Entry
	// factories maps aliases over Result to whether their error slot
	// refers to a generic, in which case the factory also takes ErrType.
	factories map[string]bool
	expanding map[string]struct{}

	opts Options

	aliasDecls  []string
	interfaces  []string
	classes     []string
	classNames  []string
	enumDecls   []string
	functions   []string
	fragments   []Fragment
	warnings    []*errors.Error
	convSeen    int
	depOrder    []string
	entryCounts map[abi.EntryType]int
}

// NewSession creates a session for one run.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		opts:        opts,
		conv:        typeconv.New(opts.MaxDepth),
		imports:     make(map[string]struct{}),
		deps:        make(map[string]map[string]struct{}),
		structs:     make(map[string]*abi.Entry),
		enums:       make(map[string]*abi.Entry),
		aliases:     make(map[string]*abi.Entry),
		factories:   make(map[string]bool),
		expanding:   make(map[string]struct{}),
		entryCounts: make(map[abi.EntryType]int),
	}
	s.conv.Bare = s.isBare
	s.conv.Expand = s.expand
	return s
}

// Generate runs a fresh session over entries.
func Generate(entries []abi.Entry, opts Options) *Result {
	return NewSession(opts).Run(entries)
}

// GenerateJSON parses an ABI document and generates code for it. Entries the
// parser skipped are reported as warnings.
func GenerateJSON(data []byte, opts Options) (*Result, error) {
	doc, err := abi.Parse(data)
	if err != nil {
		return nil, err
	}
	s := NewSession(opts)
	s.warnings = append(s.warnings, doc.Warnings...)
	return s.Run(doc.Entries), nil
}

// Run processes entries in order and assembles the output unit.
func (s *Session) Run(entries []abi.Entry) *Result {
	start := time.Now()
	s.scan(entries)

	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			s.warn(errors.New(errors.PhaseGenerate, errors.KindFieldMissing).
				Path("entries", strconv.Itoa(i)).
				Detail("entry of type %q has no name; skipped", e.Type).
				Build())
			continue
		}

		switch e.Type {
		case abi.EntryStruct:
			s.processStruct(e)
		case abi.EntryEnum:
			s.processEnum(e)
		case abi.EntryFunction:
			s.processFunction(e)
		case abi.EntryTypeAlias:
			s.processTypeAlias(e)
		default:
			s.warn(errors.New(errors.PhaseGenerate, errors.KindUnsupported).
				Entry(e.Name).
				Detail("unknown entry type %q; skipped", e.Type).
				Build())
			continue
		}
		s.entryCounts[e.Type]++
		s.drainConverter()
	}

	res := &Result{
		Code:         s.assemble(),
		Imports:      s.importList(),
		Warnings:     s.warnings,
		Fragments:    s.fragments,
		Dependencies: s.dependencyMap(),
	}

	Logger().Info("generated bindings",
		zap.Int("structs", s.entryCounts[abi.EntryStruct]),
		zap.Int("enums", s.entryCounts[abi.EntryEnum]),
		zap.Int("functions", s.entryCounts[abi.EntryFunction]),
		zap.Int("aliases", s.entryCounts[abi.EntryTypeAlias]),
		zap.Int("warnings", len(res.Warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

// scan records every declared name before any entry is processed, so that
// lookups do not depend on entry order.
func (s *Session) scan(entries []abi.Entry) {
	for i := range entries {
		e := &entries[i]
		if e.Name == "" {
			continue
		}
		switch e.Type {
		case abi.EntryStruct, abi.EntryEnum, abi.EntryTypeAlias:
			if clashesWithModule(e.Name) {
				s.warn(errors.New(errors.PhaseGenerate, errors.KindInvalidData).
					Entry(e.Name).
					Detail("type name redeclares an identifier the module imports or defines").
					Build())
			}
		}
		switch e.Type {
		case abi.EntryStruct:
			s.structs[e.Name] = e
		case abi.EntryEnum:
			s.enums[e.Name] = e
		case abi.EntryTypeAlias:
			s.aliases[e.Name] = e
			if isResultPath(e.Target) {
				s.factories[e.Name] = mentions(e.Target.GenericArgs[1], e.Generics, s.opts.MaxDepth)
			}
		}
	}
}

// isBare reports names declared as plain type aliases or enums.
func (s *Session) isBare(name string) bool {
	if _, ok := s.aliases[name]; ok {
		return true
	}
	_, ok := s.enums[name]
	return ok
}

// expand renders a reference to a declared alias as a codec expression.
func (s *Session) expand(t *abi.TypeDef) (string, bool) {
	if len(t.Path) != 1 {
		return "", false
	}
	name := t.Path[0]
	alias, ok := s.aliases[name]
	if !ok {
		return "", false
	}
	if _, busy := s.expanding[name]; busy {
		s.warn(errors.New(errors.PhaseConvert, errors.KindDepthExceeded).
			AbiType(name).
			Detail("cyclic type alias").
			Build())
		return typeconv.Unknown, true
	}
	s.expanding[name] = struct{}{}
	defer delete(s.expanding, name)

	args := t.GenericArgs
	if len(args) != len(alias.Generics) {
		s.warn(errors.Arity(errors.PhaseConvert, nil, t.String(), len(args), len(alias.Generics)))
		args = bindArgs(args, len(alias.Generics))
	}
	target := alias.Target.Substitute(alias.Generics, args)

	if errParam, ok := s.factories[name]; ok && len(alias.Generics) > 0 && isResultPath(target) {
		call := factoryName(name) + "(" + s.conv.Convert(target.GenericArgs[0], typeconv.Wire)
		if errParam {
			call += ", " + s.conv.Convert(target.GenericArgs[1], typeconv.Wire)
		}
		return call + ")", true
	}
	return s.conv.Convert(target, typeconv.Wire), true
}

// bindArgs fits args to n generic parameters. Missing arguments are empty
// paths, which render as unknown.
func bindArgs(args []*abi.TypeDef, n int) []*abi.TypeDef {
	out := make([]*abi.TypeDef, n)
	for i := range out {
		if i < len(args) {
			out[i] = args[i]
		} else {
			out[i] = &abi.TypeDef{Kind: abi.KindPath}
		}
	}
	return out
}

// mentions reports whether t refers to any of params.
func mentions(t *abi.TypeDef, params []string, depth int) bool {
	if t == nil || depth < 0 || len(params) == 0 {
		return false
	}
	if t.Kind == abi.KindPath && len(t.Path) == 1 && slices.Contains(params, t.Path[0]) {
		return true
	}
	for _, a := range t.GenericArgs {
		if mentions(a, params, depth-1) {
			return true
		}
	}
	for _, a := range t.TupleArgs {
		if mentions(a, params, depth-1) {
			return true
		}
	}
	return mentions(t.Elem, params, depth-1) || mentions(t.Target, params, depth-1)
}

func factoryName(alias string) string {
	return "create" + alias + "TypeResult"
}

// isResultPath reports whether t is directly a two-argument Result path.
func isResultPath(t *abi.TypeDef) bool {
	return t != nil && t.Kind == abi.KindPath && t.Name() == typeconv.NameResult && len(t.GenericArgs) == 2
}

// wire renders t as a codec expression and records the codec symbols it
// needs. The converter's own record covers alias expansions the collector
// cannot see.
func (s *Session) wire(t *abi.TypeDef) string {
	typeconv.CollectImports(t, s.imports, s.opts.MaxDepth)
	return s.conv.Convert(t, typeconv.Wire)
}

func (s *Session) native(t *abi.TypeDef, generics ...string) string {
	return s.conv.Convert(t, typeconv.Native, generics...)
}

func (s *Session) use(symbols ...string) {
	for _, sym := range symbols {
		s.imports[sym] = struct{}{}
	}
}

func (s *Session) warn(e *errors.Error) {
	Logger().Debug("generation degraded", zap.String("diagnostic", e.Error()))
	s.warnings = append(s.warnings, e)
}

// drainConverter moves diagnostics and symbols recorded by the converter
// into the session.
func (s *Session) drainConverter() {
	diags := s.conv.Diagnostics()
	for _, d := range diags[s.convSeen:] {
		s.warn(d)
	}
	s.convSeen = len(diags)
	s.use(s.conv.Symbols()...)
}

// dependsOn records an informational edge for single-segment user types.
func (s *Session) dependsOn(entry string, t *abi.TypeDef) {
	set, ok := s.deps[entry]
	if !ok {
		set = make(map[string]struct{})
		s.deps[entry] = set
		s.depOrder = append(s.depOrder, entry)
	}
	if t == nil || t.Kind != abi.KindPath || len(t.Path) != 1 {
		return
	}
	if name := t.Path[0]; name != "" && !typeconv.IsBuiltin(name) {
		set[name] = struct{}{}
	}
}

func (s *Session) dependencyMap() map[string][]string {
	out := make(map[string][]string, len(s.deps))
	for _, entry := range s.depOrder {
		names := make([]string, 0, len(s.deps[entry]))
		for n := range s.deps[entry] {
			names = append(names, n)
		}
		sort.Strings(names)
		out[entry] = names
	}
	return out
}

func (s *Session) importList() []string {
	set := make(map[string]struct{}, len(s.imports)+len(baselineImports))
	for k := range s.imports {
		set[k] = struct{}{}
	}
	for _, k := range baselineImports {
		set[k] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
