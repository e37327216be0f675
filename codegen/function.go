package codegen

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wippyai/abigen/abi"
	"github.com/wippyai/abigen/errors"
)

var knownMethods = map[string]struct{}{
	abi.MethodInit:     {},
	abi.MethodGet:      {},
	abi.MethodPost:     {},
	abi.MethodCallback: {},
}

var unknownToken = regexp.MustCompile(`\bunknown\b`)

// processFunction emits the async wrapper of a fn entry: signature, argument
// encoding, remote dispatch and response decoding.
func (s *Session) processFunction(e *abi.Entry) {
	name := e.Name
	fn := safeIdent(name)
	if fn != name {
		s.warn(errors.New(errors.PhaseGenerate, errors.KindInvalidData).
			Entry(name).
			Detail("function renamed to %s", fn).
			Build())
	}

	method := e.Method
	if method == "" {
		method = abi.MethodPost
		s.warn(errors.FieldMissing(errors.PhaseGenerate, nil, "method").WithEntry(name))
	} else if _, ok := knownMethods[method]; !ok {
		s.warn(errors.New(errors.PhaseGenerate, errors.KindUnsupported).
			Entry(name).
			Value(method).
			Detail("unrecognized method tag %q", method).
			Build())
	}

	routing := safeIdent(s.opts.RoutingParam)
	locals := newNamer(routing, "response", "ResultType", "PayloadType", "payloadHex")

	params := make([]param, len(e.Inputs))
	sig := []string{routing + ": string"}
	for i, in := range e.Inputs {
		pname := in.Name
		if pname == "" {
			pname = "arg" + strconv.Itoa(i)
		}
		s.conv.At(name, "inputs", pname)
		shape, sc := s.classify(in.Type)
		p := param{
			typ:    in.Type,
			name:   pname,
			ident:  locals.take(safeIdent(pname)),
			shape:  shape,
			scalar: sc,
		}
		params[i] = p
		sig = append(sig, p.ident+": "+s.native(in.Type))
	}

	s.conv.At(name, "output")
	outShape, resultNode := s.classifyOutput(e.Output)
	var ret string
	switch outShape {
	case outputNone:
		ret = "void"
	case outputResult:
		ret = "Result<Codec, Codec>"
	case outputAliasFactory:
		ret = "unknown"
	default:
		ret = s.native(e.Output)
	}

	signature := "export async function " + fn + "(" + strings.Join(sig, ", ") + "): Promise<" + ret + ">"

	var b strings.Builder
	b.WriteString(signature)
	b.WriteString(" {\n")
	b.WriteString("  if (!api) throw new Error('API not initialized');\n")

	call := []string{routing, quote(name)}
	if allScalars(params) {
		s.use("Tuple")
		codecs := make([]string, len(params))
		args := make([]string, len(params))
		for i, p := range params {
			codecs[i] = p.scalar.Codec()
			args[i] = p.ident
		}
		s.use(codecs...)
		b.WriteString("  const PayloadType = Tuple.with([" + strings.Join(codecs, ", ") + "]);\n")
		b.WriteString("  const payloadHex = encodeArg(() => new PayloadType(registry, [" + strings.Join(args, ", ") + "]));\n")
		call = append(call, "payloadHex")
	} else {
		for _, p := range params {
			call = append(call, s.encodeParam(&b, name, p, locals))
		}
	}

	dispatch := "api.provider.send(" + quote(s.opts.DispatchPrefix+method) + ", [" + strings.Join(call, ", ") + "])"
	s.conv.At(name, "output")
	switch outShape {
	case outputNone:
		b.WriteString("  await " + dispatch + ";\n")
	case outputResult:
		s.use("Result")
		ok := s.wire(resultNode.GenericArgs[0])
		er := s.wire(resultNode.GenericArgs[1])
		b.WriteString("  const response = await " + dispatch + ";\n")
		b.WriteString("  const ResultType = Result.with({ Ok: " + ok + ", Err: " + er + " });\n")
		b.WriteString("  return new ResultType(registry, hexToU8a(response as string));\n")
	case outputAliasFactory:
		b.WriteString("  const response = await " + dispatch + ";\n")
		b.WriteString("  const ResultType = " + s.wire(resultNode) + ";\n")
		b.WriteString("  return new ResultType(registry, hexToU8a(response as string));\n")
	default:
		b.WriteString("  const response = await " + dispatch + ";\n")
		b.WriteString("  return response as " + ret + ";\n")
	}
	b.WriteString("}")

	code := b.String()
	s.functions = append(s.functions, code)
	s.fragments = append(s.fragments, Fragment{
		Entry:     name,
		Type:      abi.EntryFunction,
		Signature: signature,
		Code:      code,
	})
}

// encodeParam writes the construction of one input and returns the name of
// the local holding its hex encoding.
func (s *Session) encodeParam(b *strings.Builder, fn string, p param, locals *namer) string {
	s.conv.At(fn, "inputs", p.name)
	codec := s.wire(p.typ)
	hex := locals.take(p.ident + "Hex")

	if p.shape == shapeUserType {
		if _, ok := s.structs[p.typ.Resolve(s.opts.MaxDepth).Name()]; !ok {
			s.warn(errors.New(errors.PhaseGenerate, errors.KindNotFound).
				Entry(fn).
				Path("inputs", p.name).
				AbiType(p.typ.String()).
				Detail("no struct declares this codec class").
				Build())
		}
	}

	if unknownToken.MatchString(codec) {
		s.warn(errors.New(errors.PhaseGenerate, errors.KindUnknownType).
			Entry(fn).
			Path("inputs", p.name).
			Detail("argument sent as null").
			Build())
		b.WriteString("  const " + hex + " = null;\n")
		return hex
	}

	typ := locals.take(p.ident + "Type")
	b.WriteString("  const " + typ + " = " + codec + ";\n")
	b.WriteString("  const " + hex + " = encodeArg(() => new " + typ + "(registry, " + p.ident + "));\n")
	return hex
}
