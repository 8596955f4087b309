// Package orchestrator coordinates the full pipeline from OpenAPI document to
// written artifacts: load, parse, dependency ordering, root inference, and
// per-target emission.
package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	internalLoader "github.com/goliatone/go-schemagen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-schemagen/internal/openapi/parser"
	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emitters/python"
	"github.com/goliatone/go-schemagen/pkg/emitters/typescript"
	"github.com/goliatone/go-schemagen/pkg/errors"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects an emitter registry. The default registry carries the
// typescript and python emitters.
func WithRegistry(registry *emit.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithWriter injects a custom artifact writer.
func WithWriter(writer Writer) Option {
	return func(o *Orchestrator) {
		o.writer = writer
	}
}

// Orchestrator runs the generation pipeline. Missing dependencies are
// initialised with the built-in implementations so callers can start with a
// single constructor call.
type Orchestrator struct {
	loader        pkgopenapi.Loader
	parser        pkgopenapi.Parser
	registry      *emit.Registry
	writer        Writer
	logger        *slog.Logger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.writer == nil {
		o.writer = NewFileWriter()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.registry == nil {
		registry := emit.NewRegistry()
		for _, build := range []func() (emit.Emitter, error){
			func() (emit.Emitter, error) { return typescript.New() },
			func() (emit.Emitter, error) { return python.New() },
		} {
			emitter, err := build()
			if err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: initialise emitters: %w", err)
				return
			}
			if err := registry.Register(emitter); err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: initialise emitters: %w", err)
				return
			}
		}
		o.registry = registry
	}
}

// Request describes one generation run.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document allows callers to bypass the loader when they already hold the
	// raw payload.
	Document *pkgopenapi.Document

	// OutputDir is the root directory artifacts are written under, one
	// subdirectory per target.
	OutputDir string

	// Targets lists emitter names to run. Empty means every registered target.
	Targets []string

	// EventBus gates publisher/consumer artifact generation.
	EventBus bool
}

// Result reports what a run produced.
type Result struct {
	// Root is the inferred root event binding.
	Root schema.RootBinding

	// Written lists the artifact paths created, in write order.
	Written []string

	// Warnings aggregates non-fatal degradations across all targets.
	Warnings []emit.Warning
}

// Generate executes the pipeline. Failures before emission abort the run with
// nothing written. During emission each target is isolated: a failing target
// is skipped and reported while the remaining targets still complete, and the
// per-target errors are joined into the returned error.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, stderrors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}
	if req.OutputDir == "" {
		return Result{}, stderrors.New("orchestrator: output directory is required")
	}

	logger := o.logger.With(slog.String("run_id", uuid.NewString()))

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return Result{}, err
	}

	parsed, err := o.parser.Parse(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("parsed document",
		slog.String("title", parsed.Title),
		slog.Int("schemas", len(parsed.Schemas)),
		slog.Int("operations", len(parsed.Operations)))

	ordered, err := schema.SortDependencies(parsed)
	if err != nil {
		return Result{}, err
	}

	root := schema.InferRoot(parsed)
	logger.Info("inferred root event",
		slog.String("schema", root.SchemaName),
		slog.String("operation", root.OperationPath))

	targets := req.Targets
	if len(targets) == 0 {
		targets = o.registry.List()
	}

	result := Result{Root: root}
	var targetErrs []error
	for _, target := range targets {
		written, warnings, err := o.generateTarget(ctx, logger, target, emit.Request{
			Document: parsed,
			Ordered:  ordered,
			Root:     root,
			EventBus: req.EventBus,
		}, req.OutputDir)
		result.Written = append(result.Written, written...)
		result.Warnings = append(result.Warnings, warnings...)
		if err != nil {
			logger.Error("target failed",
				slog.String("target", target),
				slog.String("error", err.Error()))
			targetErrs = append(targetErrs, err)
		}
	}

	for _, warning := range result.Warnings {
		logger.Warn("schema shape degraded",
			slog.String("schema", warning.Schema),
			slog.String("path", warning.Path),
			slog.String("message", warning.Message))
	}

	return result, stderrors.Join(targetErrs...)
}

func (o *Orchestrator) generateTarget(ctx context.Context, logger *slog.Logger, target string, req emit.Request, outputDir string) ([]string, []emit.Warning, error) {
	emitter, err := o.registry.Get(target)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeGenerationFailed, fmt.Sprintf("unknown target %q", target), err)
	}

	artifacts, warnings, err := emitter.Emit(ctx, req)
	if err != nil {
		return nil, warnings, errors.Wrap(errors.CodeGenerationFailed, fmt.Sprintf("target %q", target), err)
	}

	targetDir := filepath.Join(outputDir, target)
	var written []string
	for _, artifact := range artifacts {
		path := filepath.Join(targetDir, artifact.Filename)
		if err := o.writer.Write(path, artifact.Content); err != nil {
			return written, warnings, errors.Wrap(errors.CodeFileWriteFailed, fmt.Sprintf("target %q: write %s", target, artifact.Filename), err)
		}
		written = append(written, path)
	}
	logger.Info("target complete",
		slog.String("target", target),
		slog.Int("artifacts", len(written)))
	return written, warnings, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, stderrors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return doc, nil
}
