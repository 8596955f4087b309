package openapi

import (
	"context"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Parser normalises OpenAPI documents into the schema IR consumed by the
// emitters. The implementation lives under internal/openapi/parser.
type Parser interface {
	Parse(ctx context.Context, doc Document) (schema.Document, error)
}

// ParserOptions exposes toggles for parsing behaviour.
type ParserOptions struct {
	// ValidateDocument runs kin-openapi structural validation on the loaded
	// document before the IR is built. Defaults to true.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithDocumentValidation toggles kin-openapi document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the resulting
// configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ValidateDocument: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level schemagen package to avoid import cycles.
