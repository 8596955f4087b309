// Package emit defines the contract between the orchestrator and the
// per-language artifact emitters, plus the registry they are discovered
// through. Emitters are pure: they return text artifacts and warnings, and
// never touch the filesystem.
package emit

import (
	"context"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Artifact is one generated output file for a single target language. It is
// ephemeral: rendered, written by the orchestrator, then discarded.
type Artifact struct {
	Filename string
	Content  []byte
}

// Warning is the sole non-fatal signal in the pipeline: an unsupported schema
// shape degraded to an unconstrained type. One warning is produced per
// occurrence.
type Warning struct {
	Schema  string
	Path    string
	Message string
}

// DedupeWarnings collapses warnings that point at the same definition site.
// Emitters resolve a node once per artifact pass, so the same occurrence can
// surface repeatedly; the contract is one warning per occurrence.
func DedupeWarnings(warnings []Warning) []Warning {
	if len(warnings) < 2 {
		return warnings
	}
	seen := make(map[string]struct{}, len(warnings))
	deduped := make([]Warning, 0, len(warnings))
	for _, warning := range warnings {
		if _, ok := seen[warning.Path]; ok {
			continue
		}
		seen[warning.Path] = struct{}{}
		deduped = append(deduped, warning)
	}
	return deduped
}

// Request carries the read-only inputs every emitter consumes. Ordered holds
// the named schemas in dependency order; Document.Schemas keeps declaration
// order for emitters that need it.
type Request struct {
	Document schema.Document
	Ordered  []schema.Named
	Root     schema.RootBinding

	// EventBus gates publisher/consumer artifact generation.
	EventBus bool
}

// Emitter renders the fixed artifact set for one target language.
type Emitter interface {
	Name() string
	Emit(ctx context.Context, req Request) ([]Artifact, []Warning, error)
}
