// Command retailcalc runs one retail tool locally, without a model in the loop.
//
//	retailcalc -tool analyze_sales_data -input sales.json -format yaml
//
// The input is the tool's JSON argument object, read from a file or stdin.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/petasbytes/retail-agent/tools"
	"go.uber.org/zap"
)

type options struct {
	Tool   string
	Input  string
	Format string
	List   bool
	Debug  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var opts options

	fs := flag.NewFlagSet("retailcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -tool <name> [-input file|-] [-format json|yaml]\n", fs.Name())
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.Tool, "tool", "", "Tool to run (see -list)")
	fs.StringVar(&opts.Input, "input", "-", "Tool input JSON file, - for stdin")
	fs.StringVar(&opts.Format, "format", "json", "Output format: json or yaml")
	fs.BoolVar(&opts.List, "list", false, "List available tools and exit")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.Debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		defer func() { _ = logger.Sync() }()
	}

	if opts.List {
		for _, d := range tools.Registry() {
			fmt.Fprintln(stdout, d.Name)
		}
		return nil
	}
	if opts.Tool == "" {
		fs.Usage()
		return errors.New("missing -tool")
	}
	if opts.Format != "json" && opts.Format != "yaml" {
		return fmt.Errorf("unsupported format %q", opts.Format)
	}

	def, ok := tools.Lookup(opts.Tool)
	if !ok {
		return fmt.Errorf("unknown tool %q", opts.Tool)
	}

	input, err := readInput(opts.Input, stdin)
	if err != nil {
		return err
	}
	logger.Debug("running tool", zap.String("tool", def.Name), zap.Int("input_size", len(input)))

	start := time.Now()
	out, toolErr := def.Function(json.RawMessage(input))
	logger.Debug("tool finished", zap.Duration("elapsed", time.Since(start)), zap.Error(toolErr))
	if toolErr != nil {
		// The error payload is still a JSON document worth printing.
		out = toolErr.Error()
	}

	rendered, err := render([]byte(out), opts.Format)
	if err != nil {
		return err
	}
	if _, err := stdout.Write(rendered); err != nil {
		return err
	}
	if toolErr != nil {
		return fmt.Errorf("%s failed", def.Name)
	}
	return nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return b, nil
}
