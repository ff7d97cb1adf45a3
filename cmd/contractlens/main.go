// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"contractlens/internal/analyzer"
	"contractlens/internal/config"
	"contractlens/internal/errors"
	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("contractlens.cli")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	format     string
	diagram    string
	function   int
	noColor    bool
	files      []string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("contractlens", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "path to contractlens.yaml")
	fs.StringVar(&opts.format, "format", "", "output format: text, json or mermaid")
	fs.StringVar(&opts.diagram, "diagram", "", "diagram: flow, class or state")
	fs.IntVar(&opts.function, "function", -1, "index of a function whose sub-flow is shown")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: contractlens [flags] <file.sol|file.json>...")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	if len(opts.files) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no input files")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return 1
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.diagram != "" {
		cfg.Diagram.Mode = opts.diagram
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logPath)

	color.NoColor = opts.noColor || !cfg.UseColor(!color.NoColor)

	startTime := time.Now()

	var files []inputFile
	for _, path := range opts.files {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read file: %v\n", err)
			return 1
		}
		if strings.TrimSpace(string(source)) == "" {
			log.Warningf("skipping empty file %s", path)
			continue
		}
		files = append(files, inputFile{path: path, source: string(source)})
	}

	inputs := make([]analyzer.Input, 0, len(files))
	for _, f := range files {
		inputs = append(inputs, analyzer.Input{Name: inputName(f.path), Source: f.source})
	}

	a := analyzer.New(analyzer.Options{MaxInputBytes: cfg.Analysis.MaxInputBytes})
	batch, err := a.AnalyzeBatch(context.Background(), inputs, cfg.Analysis.Concurrency)

	var batchErr *errors.BatchError
	if err != nil && (!stderrors.As(err, &batchErr) || batchErr.Code == errors.ErrorNothingToAnalyze) {
		fmt.Fprintln(stderr, err)
		return 1
	}

	out := &printer{w: stdout, cfg: cfg, function: opts.function}
	status := 0

	// blank inputs were filtered above, so results line up with files
	for i, result := range batch.Results {
		f := files[i]
		if result.Err != nil {
			reportFailure(stderr, f.path, f.source, result.Err)
			continue
		}
		if err := out.print(f.path, result); err != nil {
			fmt.Fprintln(stderr, err)
			status = 1
		}
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Analysis failed after %s\n", formatDuration(time.Since(startTime)))
		return 1
	}
	if cfg.Output.Format == "text" {
		color.New(color.FgGreen).Fprintf(stdout, "Analyzed %d of %d inputs in %s\n",
			len(batch.Contracts()), len(batch.Results), formatDuration(time.Since(startTime)))
	}
	return status
}

type inputFile struct {
	path   string
	source string
}

// inputName is the file name without directory or extension
func inputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func reportFailure(w io.Writer, path, source string, err error) {
	var formatErr *errors.FormatError
	if stderrors.As(err, &formatErr) {
		fmt.Fprint(w, errors.NewErrorReporter(path, source).FormatFormatError(formatErr))
		return
	}
	fmt.Fprintf(w, "Error analyzing %s: %s\n", path, err)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
