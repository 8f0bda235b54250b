// Command tinyl compiles a tinyL program into virtual-register code.
//
//	tinyl [-config file] [-o file] [-format text|yaml] [-listing] [-run] [-inputs 1,2] [-monitor] [-v] <file.tinyl>
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tinyl/api"
	"github.com/sarchlab/tinyl/config"
	"github.com/sarchlab/tinyl/core"
	"github.com/sarchlab/tinyl/program"
	"github.com/tebeka/atexit"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
)

type options struct {
	configPath string
	output     string
	format     string
	listing    bool
	run        bool
	inputs     string
	monitor    bool
	verbose    bool
}

func newFlagSet(opts *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("tinyl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.output, "o", config.DefaultOutput, "output file")
	fs.StringVar(&opts.format, "format", config.FormatText, "output format (text or yaml)")
	fs.BoolVar(&opts.listing, "listing", false, "print the compiled program as a table")
	fs.BoolVar(&opts.run, "run", false, "run the compiled program after compiling")
	fs.StringVar(&opts.inputs, "inputs", "", "comma-separated values consumed by READ")
	fs.BoolVar(&opts.monitor, "monitor", false, "serve the akita monitor while running")
	fs.BoolVar(&opts.verbose, "v", false, "trace every token and instruction")

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Use of command:")
		fmt.Fprintln(stderr, "  tinyl [flags] <tinyL file>")
		fs.PrintDefaults()
	}

	return fs
}

func main() {
	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation of the command and returns its exit status.
func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitError
	}

	cfg, err := loadConfig(fs, &opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(stderr,
		&slog.HandlerOptions{Level: cfg.Level()})))

	prog, err := compile(fs.Arg(0), cfg, stdout)
	if err != nil {
		slog.Error("Compilation failed", "File", fs.Arg(0), "Error", err)
		return exitError
	}

	if cfg.Listing {
		core.PrintProgram(stdout, prog)
	}

	if cfg.Run {
		if err := runProgram(prog, cfg, stdout); err != nil {
			slog.Error("Program run failed", "Error", err)
			return exitError
		}
	}

	return exitOK
}

// loadConfig merges the configuration file with the flags given on the
// command line. Flags win.
func loadConfig(fs *flag.FlagSet, opts *options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	b := config.NewBuilder().From(cfg)

	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			b = b.WithOutput(opts.output)
		case "format":
			b = b.WithFormat(opts.format)
		case "listing":
			b = b.WithListing(opts.listing)
		case "run":
			b = b.WithRun(opts.run)
		case "inputs":
			values, err := parseInputs(opts.inputs)
			if err != nil {
				parseErr = err
			}
			b = b.WithInputs(values)
		case "monitor":
			b = b.WithMonitor(opts.monitor)
		case "v":
			if opts.verbose {
				b = b.WithLogLevel("trace")
			}
		}
	})

	if parseErr != nil {
		return cfg, parseErr
	}

	return b.Build()
}

func parseInputs(s string) ([]int32, error) {
	var values []int32

	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q", field)
		}

		values = append(values, int32(v))
	}

	return values, nil
}

// compile writes the code of the program at path to the configured output.
// Instructions emitted before an error stay in the output file.
func compile(path string, cfg config.Config, stdout io.Writer) (prog program.Program, err error) {
	infile, err := os.Open(path)
	if err != nil {
		return prog, fmt.Errorf("cannot open input file: %w", err)
	}
	defer infile.Close()

	src, err := core.ReadInput(infile)
	if err != nil {
		return prog, err
	}

	outfile, err := os.Create(cfg.Output)
	if err != nil {
		return prog, fmt.Errorf("cannot open output file: %w", err)
	}

	w := bufio.NewWriter(outfile)
	defer func() {
		err = errors.Join(err, w.Flush(), outfile.Close())
	}()

	emitter := core.Emitter(&prog)
	if cfg.Format == config.FormatText {
		emitter = core.MultiEmitter(core.NewTextEmitter(w), &prog)
	}

	if err := core.Compile(src, emitter); err != nil {
		return prog, err
	}

	if cfg.Format == config.FormatYAML {
		if err := prog.WriteYAML(w); err != nil {
			return prog, fmt.Errorf("cannot write output file: %w", err)
		}
	}

	core.LogProgram(prog)
	fmt.Fprintf(stdout, "Code written to file %q.\n", cfg.Output)

	return prog, nil
}

func runProgram(prog program.Program, cfg config.Config, stdout io.Writer) error {
	engine := sim.NewSerialEngine()

	driver := api.DriverBuilder{}.
		WithEngine(engine).
		WithFreq(sim.Freq(cfg.FreqGHz) * sim.GHz).
		Build("Driver")

	if cfg.Monitor {
		m := monitoring.NewMonitor()
		m.RegisterEngine(engine)
		m.RegisterComponent(driver)
		m.StartServer()
	}

	driver.FeedIn(cfg.Inputs)
	driver.MapProgram(prog)

	if err := driver.Run(); err != nil {
		return err
	}

	for _, v := range driver.Collect() {
		fmt.Fprintln(stdout, v)
	}

	slog.Info("Program finished", "Cycles", driver.Cycles())

	return nil
}
