package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/internal/wasmabi"
)

// DefaultAddr is the explorer listen address when none is configured.
const DefaultAddr = "127.0.0.1:3001"

// Config is the generator configuration as encoded in abigen.toml.
type Config struct {
	ImportPath     string `toml:"import-path"`
	RoutingParam   string `toml:"routing-param"`
	DispatchPrefix string `toml:"dispatch-prefix"`
	Generator      string `toml:"generator"`
	MaxDepth       int    `toml:"max-depth"`
	// Stamp appends the generated version trailer to written files.
	Stamp bool `toml:"stamp"`
	// Verify parses the emitted unit and fails on syntax errors.
	Verify bool `toml:"verify"`

	Server Server `toml:"server"`
	Wasm   Wasm   `toml:"wasm"`
}

// Server configures the explorer API.
type Server struct {
	Addr string `toml:"addr"`
}

// Wasm configures ABI extraction from compiled modules.
type Wasm struct {
	// Section is the custom section name holding the ABI JSON.
	Section string `toml:"section"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	d := codegen.DefaultOptions()
	return &Config{
		ImportPath:     d.ImportPath,
		RoutingParam:   d.RoutingParam,
		DispatchPrefix: d.DispatchPrefix,
		Generator:      d.Generator,
		MaxDepth:       d.MaxDepth,
		Stamp:          true,
		Server:         Server{Addr: DefaultAddr},
		Wasm:           Wasm{Section: wasmabi.DefaultSection},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Path(path).
			Cause(err).
			Detail("read config").
			Build()
	}
	return Parse(buf)
}

// Parse decodes TOML bytes over the defaults.
func Parse(buf []byte) (*Config, error) {
	c := Default()
	if err := toml.Unmarshal(buf, c); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values no generation run can use.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Path("max-depth").
			Value(c.MaxDepth).
			Detail("must not be negative").
			Build()
	}
	if c.ImportPath == "" {
		return errors.FieldMissing(errors.PhaseLoad, nil, "import-path")
	}
	return nil
}

// Options converts the configuration into generation options.
func (c *Config) Options() codegen.Options {
	return codegen.Options{
		ImportPath:     c.ImportPath,
		RoutingParam:   c.RoutingParam,
		DispatchPrefix: c.DispatchPrefix,
		Generator:      c.Generator,
		MaxDepth:       c.MaxDepth,
	}
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	b, err := toml.Marshal(*c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return b, nil
}
