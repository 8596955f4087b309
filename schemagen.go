// Package schemagen generates statically typed bindings (models, runtime
// validators, JSON marshalling, and event-bus adapters) from an OpenAPI 3.0
// document. The root package re-exports the pipeline entry points; the
// heavy lifting lives in pkg/orchestrator and the per-target emitters.
package schemagen

import (
	"context"

	internalLoader "github.com/goliatone/go-schemagen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-schemagen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/orchestrator"
)

// Request aliases the orchestrator request for root-level callers.
type Request = orchestrator.Request

// Result aliases the orchestrator result for root-level callers.
type Result = orchestrator.Result

// NewLoader constructs a loader using the internal implementation while
// keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the OpenAPI source and writes the artifact sets for the
// requested targets under outputDir. It is the simplest entry point for
// callers that just want generated bindings on disk.
func Generate(ctx context.Context, source pkgopenapi.Source, outputDir string, targets []string, options ...orchestrator.Option) (Result, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, Request{
		Source:    source,
		OutputDir: outputDir,
		Targets:   targets,
		EventBus:  true,
	})
}
