package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/caarlos0/env/v11"

	internalLoader "github.com/goliatone/go-schemagen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-schemagen/internal/openapi/parser"
	"github.com/goliatone/go-schemagen/pkg/check"
	schemaerrors "github.com/goliatone/go-schemagen/pkg/errors"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/orchestrator"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

const (
	exitOK = 0
	// Document and schema problems: the input is at fault.
	exitInputError = 1
	// Generation and write problems: the run is at fault.
	exitRunError = 2
)

// config carries the defaults every subcommand shares. Values come from
// SCHEMAGEN_* environment variables and can be overridden per invocation by
// flags.
type config struct {
	Schema      string `env:"SCHEMA"`
	Output      string `env:"OUTPUT" envDefault:"./generated"`
	Target      string `env:"TARGET" envDefault:"all"`
	EventBridge bool   `env:"EVENT_BRIDGE" envDefault:"true"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Yes         bool   `env:"YES"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "SCHEMAGEN_"}); err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: environment: %v\n", err)
		return exitInputError
	}

	if len(args) == 0 {
		usage()
		return exitInputError
	}

	switch args[0] {
	case "generate":
		return runGenerate(cfg, args[1:])
	case "check":
		return runCheck(cfg, args[1:])
	case "help", "-h", "--help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "schemagen: unknown command %q\n\n", args[0])
		usage()
		return exitInputError
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: schemagen <command> [flags]

Commands:
  generate   Generate typed bindings from an OpenAPI document
  check      Validate JSON payload files against a document schema

Environment:
  SCHEMAGEN_SCHEMA, SCHEMAGEN_OUTPUT, SCHEMAGEN_TARGET,
  SCHEMAGEN_EVENT_BRIDGE, SCHEMAGEN_LOG_LEVEL, SCHEMAGEN_YES
`)
}

func runGenerate(cfg config, args []string) int {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	schemaDoc := flags.String("schema", cfg.Schema, "OpenAPI document path or URL")
	output := flags.String("output", cfg.Output, "output directory, one subdirectory per target")
	target := flags.String("target", cfg.Target, "typescript, python, or all")
	eventBridge := flags.Bool("event-bridge", cfg.EventBridge, "generate publisher/consumer adapters")
	logLevel := flags.String("log-level", cfg.LogLevel, "debug, info, warn, error, or none")
	yes := flags.Bool("yes", cfg.Yes, "overwrite existing output without asking")
	if err := flags.Parse(args); err != nil {
		return exitInputError
	}

	src := parseSource(*schemaDoc)
	if src == nil {
		fmt.Fprintln(os.Stderr, "schemagen: a -schema path or URL is required")
		return exitInputError
	}

	targets, err := resolveTargets(*target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		return exitInputError
	}

	if !*yes && outputExists(*output) {
		overwrite := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Output directory %s already has content. Overwrite?", *output),
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil || !overwrite {
			fmt.Fprintln(os.Stderr, "schemagen: aborted")
			return exitInputError
		}
	}

	logger := newLogger(*logLevel)

	gen := orchestrator.New(orchestrator.WithLogger(logger))
	result, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:    src,
		OutputDir: *output,
		Targets:   targets,
		EventBus:  *eventBridge,
	})
	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.Path, warning.Message)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		return exitCode(err)
	}

	fmt.Printf("Generated %d artifacts under %s (root event: %s)\n",
		len(result.Written), *output, result.Root.SchemaName)
	return exitOK
}

func runCheck(cfg config, args []string) int {
	flags := flag.NewFlagSet("check", flag.ContinueOnError)
	schemaDoc := flags.String("schema", cfg.Schema, "OpenAPI document path or URL")
	schemaName := flags.String("name", "", "schema to validate against (default: inferred root)")
	if err := flags.Parse(args); err != nil {
		return exitInputError
	}
	payloads := flags.Args()
	if len(payloads) == 0 {
		fmt.Fprintln(os.Stderr, "schemagen: check needs at least one payload file")
		return exitInputError
	}

	src := parseSource(*schemaDoc)
	if src == nil {
		fmt.Fprintln(os.Stderr, "schemagen: a -schema path or URL is required")
		return exitInputError
	}

	ctx := context.Background()
	loader := internalLoader.New(pkgopenapi.NewLoaderOptions())
	doc, err := loader.Load(ctx, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		return exitCode(err)
	}
	parsed, err := internalParser.New(pkgopenapi.NewParserOptions()).Parse(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		return exitCode(err)
	}

	root := *schemaName
	if root == "" {
		root = schema.InferRoot(parsed).SchemaName
	}

	checker, err := check.New(parsed, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schemagen: %v\n", err)
		return exitInputError
	}

	failed := 0
	for _, path := range payloads {
		if err := checker.ValidateFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("OK   %s\n", path)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "schemagen: %d of %d payloads failed\n", failed, len(payloads))
		return exitInputError
	}
	return exitOK
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}

// resolveTargets maps the -target flag to emitter names. "all" (or empty)
// selects every registered target.
func resolveTargets(raw string) ([]string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "all":
		return nil, nil
	case "typescript", "python":
		return []string{value}, nil
	default:
		return nil, fmt.Errorf("unknown target %q (expected typescript, python, or all)", raw)
	}
}

func outputExists(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slogLevel = slog.LevelDebug
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	case "none":
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	default:
		slogLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if schemaerrors.IsInitialization(err) || schemaerrors.IsSchema(err) {
		return exitInputError
	}
	switch schemaerrors.CodeOf(err) {
	case schemaerrors.CodeGenerationFailed, schemaerrors.CodeFileWriteFailed:
		return exitRunError
	}
	return exitInputError
}
