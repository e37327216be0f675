package codegen

import (
	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/typeconv"
)

// argShape is the encoding strategy chosen for a function input. It is
// decided from the type tree, never from a rendered type string.
type argShape uint8

const (
	// shapeScalar is a bit-width integer, bool or text. More than one scalar
	// input is encoded jointly as a Tuple.
	shapeScalar argShape = iota
	// shapeUserType is a named type constructed through its own codec class,
	// which a struct entry must declare.
	shapeUserType
	// shapeOther is anything else, encoded through its codec rendering.
	shapeOther
)

// param is the structural descriptor carried alongside each function input.
type param struct {
	typ    *abi.TypeDef
	name   string
	ident  string
	shape  argShape
	scalar typeconv.Scalar
}

// classify picks the encoding strategy for t.
func (s *Session) classify(t *abi.TypeDef) (argShape, typeconv.Scalar) {
	r := t.Resolve(s.opts.MaxDepth)
	if r == nil || r.Kind != abi.KindPath {
		return shapeOther, 0
	}

	name := r.Name()
	if sc, ok := typeconv.LookupScalar(name); ok {
		if sc.IsFloat() {
			return shapeOther, sc
		}
		return shapeScalar, sc
	}
	if name == "" || typeconv.IsBuiltin(name) {
		return shapeOther, 0
	}
	if _, ok := s.aliases[name]; ok {
		return shapeOther, 0
	}
	return shapeUserType, 0
}

// allScalars reports whether the joint tuple encoding applies: more than one
// input and every input a scalar.
func allScalars(params []param) bool {
	if len(params) < 2 {
		return false
	}
	for _, p := range params {
		if p.shape != shapeScalar {
			return false
		}
	}
	return true
}

// outputShape is the decoding strategy for a function's declared output.
type outputShape uint8

const (
	outputNone outputShape = iota
	// outputResult decodes through Result.with({ Ok, Err }).
	outputResult
	// outputAliasFactory decodes through a generic alias Result factory.
	outputAliasFactory
	// outputPassthrough returns the raw response.
	outputPassthrough
)

// classifyOutput picks the decoding strategy and, for outputResult, the Result
// node whose slots drive decoding. A non-generic alias over Result is looked
// through to its target.
func (s *Session) classifyOutput(t *abi.TypeDef) (outputShape, *abi.TypeDef) {
	if t == nil {
		return outputNone, nil
	}
	r := t.Resolve(s.opts.MaxDepth)
	if r == nil || r.Kind != abi.KindPath {
		return outputPassthrough, nil
	}
	if isResultPath(r) {
		return outputResult, r
	}
	name := r.Name()
	if len(r.Path) == 1 && len(r.GenericArgs) > 0 && name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		if _, ok := s.factories[name]; ok {
			return outputAliasFactory, r
		}
	}
	if a, ok := s.aliases[name]; ok && len(r.Path) == 1 && len(a.Generics) == 0 && isResultPath(a.Target) {
		return outputResult, a.Target
	}
	return outputPassthrough, nil
}
