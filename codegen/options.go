package codegen

import "github.com/wippyai/abigen/typeconv"

// Default option values.
const (
	DefaultImportPath     = "@polkadot/types-codec"
	DefaultRoutingParam   = "nucleusId"
	DefaultDispatchPrefix = "nucleus_"
	DefaultGenerator      = "abigen"
)

// Options configures one generation run.
type Options struct {
	// ImportPath is the module the codec classes are imported from.
	ImportPath string
	// RoutingParam names the implicit first parameter of every wrapper.
	RoutingParam string
	// DispatchPrefix is prepended to a function's method tag to form the
	// remote dispatch verb, e.g. nucleus_get.
	DispatchPrefix string
	// Generator names the tool in the file header.
	Generator string
	// MaxDepth bounds type-tree recursion. Zero selects typeconv.DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		ImportPath:     DefaultImportPath,
		RoutingParam:   DefaultRoutingParam,
		DispatchPrefix: DefaultDispatchPrefix,
		Generator:      DefaultGenerator,
		MaxDepth:       typeconv.DefaultMaxDepth,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ImportPath == "" {
		o.ImportPath = d.ImportPath
	}
	if o.RoutingParam == "" {
		o.RoutingParam = d.RoutingParam
	}
	if o.DispatchPrefix == "" {
		o.DispatchPrefix = d.DispatchPrefix
	}
	if o.Generator == "" {
		o.Generator = d.Generator
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = d.MaxDepth
	}
	return o
}
