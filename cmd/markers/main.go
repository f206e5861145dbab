package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-markers"
	markerscmd "github.com/goliatone/go-markers/internal/commands/markers"
	"github.com/goliatone/go-markers/internal/di"
	"github.com/goliatone/go-markers/internal/fixtures"
	"github.com/goliatone/go-markers/internal/validation"
)

var moduleBuilder = markers.New

var errChecksFailed = errors.New("one or more fixtures failed")

const usage = `usage: markers <command> [flags]

commands:
  hint     render markup with markers for a selection
  extract  strip markers from markup and print the selection they encoded
  check    run the fixtures in a directory
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("markers: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("command is required")
	}
	switch args[0] {
	case "hint":
		return runHint(ctx, args[1:], stdin, stdout, stderr)
	case "extract":
		return runExtract(ctx, args[1:], stdin, stdout, stderr)
	case "check":
		return runCheck(ctx, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

type commonFlags struct {
	config   string
	wrapper  string
	mode     string
	format   string
	logLevel string
	markdown bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "YAML configuration file")
	fs.StringVar(&c.wrapper, "wrapper", "", "Wrapper element used to parse and render fragments")
	fs.StringVar(&c.mode, "mode", "", "Parse mode: fragment or document")
	fs.StringVar(&c.format, "format", "text", "Output format: text, json or yaml")
	fs.StringVar(&c.logLevel, "log-level", "", "Enable logging to stderr at this level")
	fs.BoolVar(&c.markdown, "markdown", false, "Render markdown fixtures")
}

func (c *commonFlags) module(stderr io.Writer, adjust ...func(*markers.Config)) (*markers.Module, error) {
	cfg := markers.DefaultConfig()
	if c.config != "" {
		loaded, err := markers.LoadConfig(c.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.wrapper != "" {
		cfg.Markers.WrapperTag = c.wrapper
	}
	if c.mode != "" {
		cfg.Markers.ParseMode = c.mode
	}
	if c.logLevel != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = c.logLevel
	}
	if c.markdown {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
	}
	for _, fn := range adjust {
		fn(&cfg)
	}
	return moduleBuilder(cfg, di.WithLogWriter(stderr))
}

func runHint(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("markers-hint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	markup := fs.String("html", "", "Markup to render (defaults to -in or stdin)")
	in := fs.String("in", "", "File holding the markup")
	start := fs.String("start", "", "Start path, comma separated (e.g. 0,0,2)")
	end := fs.String("end", "", "End path, comma separated (defaults to -start)")
	selection := fs.String("selection", "", `Selection as JSON, e.g. {"start":[0,0,2],"end":[0,0,8]}`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sel, err := selectionFromFlags(*selection, *start, *end)
	if err != nil {
		return err
	}
	source, err := readMarkup(*markup, *in, stdin)
	if err != nil {
		return err
	}
	module, err := common.module(stderr)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var snapshot string
	if err := module.Commands().Hint.Execute(ctx, markerscmd.HintCommand{
		Markup:    source,
		Selection: sel,
		Result:    &snapshot,
	}); err != nil {
		return err
	}
	if common.format == "text" {
		_, err := fmt.Fprintln(stdout, snapshot)
		return err
	}
	return writeStructured(stdout, common.format, map[string]any{
		"selection": sel,
		"snapshot":  snapshot,
	})
}

func runExtract(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("markers-extract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	markup := fs.String("html", "", "Markup holding two markers (defaults to -in or stdin)")
	in := fs.String("in", "", "File holding the markup")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := readMarkup(*markup, *in, stdin)
	if err != nil {
		return err
	}
	module, err := common.module(stderr)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	var res markers.ExtractResult
	if err := module.Commands().Extract.Execute(ctx, markerscmd.ExtractCommand{Markup: source, Result: &res}); err != nil {
		return err
	}
	if common.format == "text" {
		_, err := fmt.Fprintf(stdout, "%s\nstart: %s\nend: %s\n", res.HTML, formatPath(res.Selection.Start), formatPath(res.Selection.End))
		return err
	}
	return writeStructured(stdout, common.format, res)
}

func runCheck(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("markers-check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	dir := fs.String("dir", "", "Fixture directory (defaults to the configured fixtures dir)")
	pattern := fs.String("pattern", "", "Glob pattern applied when discovering fixtures")
	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := common.module(stderr, func(cfg *markers.Config) {
		cfg.Features.Fixtures = true
		cfg.Fixtures.Enabled = true
		if *dir != "" {
			cfg.Fixtures.Dir = *dir
		}
		if *pattern != "" {
			cfg.Fixtures.Pattern = *pattern
		}
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := module.Commands().Fixtures
	if handler == nil {
		return markers.ErrFixturesFeatureRequired
	}
	var report markers.FixtureReport
	if err := handler.Execute(ctx, markerscmd.CheckFixturesCommand{Result: &report}); err != nil {
		return err
	}
	if common.format == "text" {
		if err := writeReport(stdout, report); err != nil {
			return err
		}
	} else if err := writeStructured(stdout, common.format, report); err != nil {
		return err
	}
	if !report.OK() {
		return errChecksFailed
	}
	return nil
}

func selectionFromFlags(raw, start, end string) (markers.Selection, error) {
	if strings.TrimSpace(raw) != "" {
		return validation.DecodeSelection([]byte(raw))
	}
	if strings.TrimSpace(start) == "" {
		return markers.Selection{}, errors.New("-start or -selection is required")
	}
	if strings.TrimSpace(end) == "" {
		end = start
	}
	startPath, err := parsePath(start)
	if err != nil {
		return markers.Selection{}, fmt.Errorf("-start: %w", err)
	}
	endPath, err := parsePath(end)
	if err != nil {
		return markers.Selection{}, fmt.Errorf("-end: %w", err)
	}
	sel := markers.Selection{Start: startPath, End: endPath}
	if err := validation.ValidateSelection(sel); err != nil {
		return markers.Selection{}, err
	}
	return sel, nil
}

func parsePath(raw string) (markers.Path, error) {
	parts := strings.Split(raw, ",")
	path := make(markers.Path, 0, len(parts))
	for _, part := range parts {
		value, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", raw, err)
		}
		path = append(path, value)
	}
	return path, nil
}

func formatPath(path markers.Path) string {
	parts := make([]string, len(path))
	for i, value := range path {
		parts[i] = strconv.Itoa(value)
	}
	return strings.Join(parts, ",")
}

func readMarkup(inline, file string, stdin io.Reader) (string, error) {
	if inline != "" {
		return inline, nil
	}
	if file != "" && file != "-" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func writeStructured(w io.Writer, format string, value any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(value)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeReport(w io.Writer, report markers.FixtureReport) error {
	for _, result := range report.Results {
		switch result.Status {
		case fixtures.StatusPassed:
			fmt.Fprintf(w, "ok    %s (%s)\n", result.Name, result.Path)
		case fixtures.StatusSkipped:
			fmt.Fprintf(w, "skip  %s (%s)\n", result.Name, result.Path)
		default:
			fmt.Fprintf(w, "FAIL  %s (%s)\n", result.Name, result.Path)
			for _, failure := range result.Failures {
				fmt.Fprintf(w, "      %s: %s\n", failure.Check, failure.Message)
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", report.Passed, report.Failed, report.Skipped)
	return err
}
