package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/checkdenormal/backend"
	"github.com/wippyai/checkdenormal/wasmhost"
)

func main() {
	var (
		wasmFile    = flag.String("wasm", "", "Path to a core wasm module importing interflop functions")
		funcName    = flag.String("func", "", "Descriptor entry, or guest export with -wasm")
		argList     = flag.String("args", "", "Operands (comma-separated)")
		configPath  = flag.String("config", "", "Backend configuration file (.toml, .yaml)")
		checkOnly   = flag.Bool("check-only", false, "Use the check-only dispatch table")
		list        = flag.Bool("list", false, "List callable functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	wasmhost.SetLogger(log)

	opts := options{
		configPath: *configPath,
		checkOnly:  *checkOnly,
		cliArgs:    flag.Args(),
	}

	if *interactive {
		if err := runInteractive(opts, log); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *funcName == "" && !*list {
		usage()
		os.Exit(1)
	}

	if err := run(opts, log, *wasmFile, *funcName, *argList, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: checkdenormal -func add_double -args 0x1p-1030,0x1p-1031 [-- --flush-to-zero]")
	fmt.Fprintln(os.Stderr, "       checkdenormal -wasm <file.wasm> -func <export> -args 1.5,2.5")
	fmt.Fprintln(os.Stderr, "       checkdenormal [-wasm <file.wasm>] -list")
	fmt.Fprintln(os.Stderr, "       checkdenormal -i  (interactive mode)")
	fmt.Fprintln(os.Stderr)
	flag.PrintDefaults()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func run(opts options, log *zap.Logger, wasmFile, funcName, argList string, listOnly bool) error {
	s, err := newSession(opts, log)
	if err != nil {
		return err
	}
	defer s.close()

	out := newPrinter(os.Stdout)
	if wasmFile != "" {
		return runWASM(s, out, wasmFile, funcName, argList, listOnly)
	}

	if listOnly {
		out.header(backend.Name, s.desc.Mode().String())
		for _, e := range entries(&s.desc) {
			out.entry(e)
		}
		return nil
	}

	args, err := parseArgs(argList)
	if err != nil {
		return err
	}
	res, err := evalEntry(&s.desc, funcName, args)
	if err != nil {
		return err
	}
	out.result(funcName, []float64{res}, s.detections())
	return nil
}

func runWASM(s *session, out printer, wasmFile, funcName, argList string, listOnly bool) error {
	ctx := context.Background()

	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	rt, err := wasmhost.New(ctx, &s.desc)
	if err != nil {
		return err
	}
	defer rt.Close(ctx)

	mod, err := rt.LoadWASM(ctx, data)
	if err != nil {
		return err
	}

	if listOnly {
		out.header(wasmFile, s.desc.Mode().String())
		fmt.Fprintln(out.w, "Imports:")
		for _, imp := range mod.Imports() {
			fmt.Fprintf(out.w, "  %s.%s\n", imp.Module, imp.Name)
		}
		fmt.Fprintln(out.w, "Exports:")
		for _, name := range mod.Exports() {
			fmt.Fprintf(out.w, "  %s\n", out.render(funcStyle, name))
		}
		return nil
	}

	args, err := parseArgs(argList)
	if err != nil {
		return err
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		return err
	}
	defer inst.Close(ctx)

	res, err := inst.Call(ctx, funcName, args...)
	if err != nil {
		return err
	}
	out.result(funcName, res, s.detections())
	return nil
}
