package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/config"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/explorer"
	"github.com/wippyai/abigen/internal/tscheck"
	"github.com/wippyai/abigen/internal/wasmabi"
	"github.com/wippyai/abigen/witimport"
)

const version = "0.3.0"

const defaultOutputDir = "./output"

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

type flags struct {
	configFile  string
	witInput    bool
	section     string
	serve       bool
	addr        string
	interactive bool
	verify      bool
	stamp       bool
	verbose     bool
	showVersion bool

	importPath     string
	routingParam   string
	dispatchPrefix string
	maxDepth       int
}

func main() {
	var f flags
	flag.StringVar(&f.configFile, "config", "", "Path to abigen.toml")
	flag.BoolVar(&f.witInput, "wit", false, "Input is a WIT resolve in wasm-tools JSON form")
	flag.StringVar(&f.section, "section", "", "Custom section holding the ABI in a .wasm input (default \"abi\")")
	flag.BoolVar(&f.serve, "serve", false, "Serve the explorer API instead of generating")
	flag.StringVar(&f.addr, "addr", "", "Explorer listen address (default from config)")
	flag.BoolVar(&f.interactive, "i", false, "Browse the generated bindings in a TUI")
	flag.BoolVar(&f.verify, "verify", false, "Parse the emitted TypeScript and fail on syntax errors")
	flag.BoolVar(&f.stamp, "stamp", true, "Append a generated version trailer to the output file")
	flag.BoolVar(&f.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&f.showVersion, "version", false, "Print version and exit")
	flag.StringVar(&f.importPath, "import-path", "", "Module the codec classes are imported from")
	flag.StringVar(&f.routingParam, "routing-param", "", "Name of the routing parameter of every wrapper")
	flag.StringVar(&f.dispatchPrefix, "dispatch-prefix", "", "Prefix of the remote dispatch verb")
	flag.IntVar(&f.maxDepth, "max-depth", 0, "Type nesting limit")
	flag.Usage = usage
	flag.Parse()

	if f.showVersion {
		fmt.Printf("abigen %s\n", version)
		return
	}

	if err := run(f, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, paint(os.Stderr, failStyle, "Error: "+err.Error()))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: abigen [flags] <abi.json|module.wasm> [output-dir]")
	fmt.Fprintln(os.Stderr, "       abigen -wit [flags] <resolve.json> [output-dir]")
	fmt.Fprintln(os.Stderr, "       abigen -serve [-addr host:port]")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func run(f flags, args []string) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	log, err := newLogger(f.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	codegen.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if f.serve {
		return explorer.New(cfg.Options(), log).ListenAndServe(ctx, cfg.Server.Addr)
	}

	if len(args) == 0 {
		usage()
		return errors.InvalidInput(errors.PhaseLoad, "no input file")
	}
	input := args[0]
	outDir := defaultOutputDir
	if len(args) > 1 {
		outDir = args[1]
	}

	start := time.Now()
	res, err := generate(ctx, cfg, input, f.witInput)
	if err != nil {
		return err
	}

	if f.interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.Unsupported(errors.PhaseGenerate, "interactive mode needs a terminal")
		}
		return runInteractive(input, res)
	}

	if cfg.Verify {
		if err := verify(ctx, res.Code); err != nil {
			return err
		}
	}

	out, err := writeOutput(res, input, outDir, cfg.Stamp, time.Now())
	if err != nil {
		return err
	}
	printSummary(os.Stdout, res, out, time.Since(start))
	return nil
}

// loadConfig reads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func loadConfig(f flags) (*config.Config, error) {
	cfg := config.Default()
	if f.configFile != "" {
		var err error
		if cfg, err = config.Load(f.configFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "addr":
			cfg.Server.Addr = f.addr
		case "section":
			cfg.Wasm.Section = f.section
		case "verify":
			cfg.Verify = f.verify
		case "stamp":
			cfg.Stamp = f.stamp
		case "import-path":
			cfg.ImportPath = f.importPath
		case "routing-param":
			cfg.RoutingParam = f.routingParam
		case "dispatch-prefix":
			cfg.DispatchPrefix = f.dispatchPrefix
		case "max-depth":
			cfg.MaxDepth = f.maxDepth
		}
	})
	return cfg, cfg.Validate()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return zc.Build()
}

// generate loads input in whichever form it is given and runs one session.
func generate(ctx context.Context, cfg *config.Config, input string, wit bool) (*codegen.Result, error) {
	if wit {
		entries, warnings, err := witimport.Load(input)
		if err != nil {
			return nil, err
		}
		res := codegen.Generate(entries, cfg.Options())
		res.Warnings = append(warnings, res.Warnings...)
		return res, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Path(input).
			Cause(err).
			Detail("Failed to read ABI file").
			Build()
	}
	if wasmabi.IsWasm(data) {
		if data, err = wasmabi.Extract(ctx, data, cfg.Wasm.Section); err != nil {
			return nil, err
		}
	}
	return codegen.GenerateJSON(data, cfg.Options())
}

func verify(ctx context.Context, code string) error {
	rep, err := tscheck.Check(ctx, []byte(code))
	if err != nil {
		return err
	}
	if rep.OK() {
		return nil
	}
	lines := make([]string, len(rep.Errors))
	for i, e := range rep.Errors {
		lines[i] = "  " + e.Error()
	}
	return fmt.Errorf("generated code does not parse:\n%s", strings.Join(lines, "\n"))
}

// outputName maps the input file onto <basename>.ts.
func outputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".ts"
}

func writeOutput(res *codegen.Result, input, outDir string, stamp bool, now time.Time) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	code := res.Code
	if stamp {
		code += "\n// Generated Version: " + strconv.FormatInt(now.UnixMilli(), 10) + "\n"
	}
	path := filepath.Join(outDir, outputName(input))
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}
	return path, nil
}

func printSummary(w io.Writer, res *codegen.Result, path string, elapsed time.Duration) {
	fmt.Fprintln(w, paint(w, okStyle, fmt.Sprintf("Generated %s (%d entries, %d imports) in %s",
		path, len(res.Fragments), len(res.Imports), elapsed.Round(time.Millisecond))))
	for _, warn := range res.Warnings {
		fmt.Fprintln(w, paint(w, warnStyle, "warning: "+warn.Error()))
	}
}

// paint styles s only when w is a terminal.
func paint(w io.Writer, style lipgloss.Style, s string) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return style.Render(s)
	}
	return s
}
