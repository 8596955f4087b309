// Package python renders the Python artifact set: pydantic models, validator
// combinators, marshaller/unmarshaller classes, shared utilities, and the
// optional event-bus publisher/consumer scaffolds.
package python

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emit/template"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Name is the target identifier used by the emitter registry.
const Name = "python"

// Emitter implements emit.Emitter for the Python target.
type Emitter struct {
	engine *template.Engine
}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the emitter with its embedded template set.
func New() (*Emitter, error) {
	engine, err := template.New(template.WithFS(TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("python: template engine: %w", err)
	}
	return &Emitter{engine: engine}, nil
}

// Name returns the registry identifier.
func (e *Emitter) Name() string {
	return Name
}

// Emit renders the full artifact set from the shared IR.
func (e *Emitter) Emit(ctx context.Context, req emit.Request) ([]emit.Artifact, []emit.Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	res := &resolver{}

	artifacts := []emit.Artifact{
		{Filename: "models.py", Content: []byte(renderModels(req, res))},
		{Filename: "validator.py", Content: []byte(renderValidators(req, res))},
		{Filename: "marshaller.py", Content: []byte(renderMarshaller(req))},
	}

	common, err := e.engine.Render("common.py", templateContext(req))
	if err != nil {
		return nil, nil, fmt.Errorf("python: render common.py: %w", err)
	}
	artifacts = append(artifacts, emit.Artifact{Filename: "common.py", Content: []byte(common)})

	if req.EventBus {
		for _, name := range []string{"publisher.py", "consumer.py"} {
			content, err := e.engine.Render(name, templateContext(req))
			if err != nil {
				return nil, nil, fmt.Errorf("python: render %s: %w", name, err)
			}
			artifacts = append(artifacts, emit.Artifact{Filename: name, Content: []byte(content)})
		}
	}

	return artifacts, emit.DedupeWarnings(res.warnings), nil
}

func templateContext(req emit.Request) map[string]any {
	return map[string]any{
		"title":        req.Document.Title,
		"root_type":    req.Root.SchemaName,
		"root_snake":   SnakeCase(req.Root.SchemaName),
		"event_source": emit.EventSource(req.Document.Title),
	}
}

func header(req emit.Request) string {
	return fmt.Sprintf("# Code generated by schemagen from %q. DO NOT EDIT.\n\n", req.Document.Title)
}

// renderModels emits pydantic models in dependency order so every referenced
// class is defined before its first use.
func renderModels(req emit.Request, res *resolver) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString("from typing import Any, Dict, List, Literal, Optional\n\n")
	b.WriteString("from pydantic import BaseModel\n\n")
	b.WriteString("# ISO 8601 calendar date string, e.g. \"2024-01-15\".\n")
	b.WriteString("ISODate = str\n\n")
	b.WriteString("# ISO 8601 UTC date-time string, e.g. \"2024-01-15T10:30:00.000Z\".\n")
	b.WriteString("ISODateTime = str\n\n")

	for _, named := range req.Ordered {
		if named.Node.Kind == schema.KindObject && len(named.Node.Properties) > 0 {
			fmt.Fprintf(&b, "\nclass %s(BaseModel):\n", named.Name)
			if named.Node.Description != "" {
				fmt.Fprintf(&b, "    \"\"\"%s\"\"\"\n\n", named.Node.Description)
			}
			for _, field := range named.Node.Fields() {
				// Nullability is folded into Optional by resolve; optional
				// fields additionally get a None default.
				fieldRes := res.resolve(field.Node, named.Name+"."+field.Name, 0)
				annotation := fieldRes.Annotation
				suffix := ""
				if !field.Required {
					if !field.Nullable {
						annotation = "Optional[" + annotation + "]"
					}
					suffix = " = None"
				}
				fmt.Fprintf(&b, "    %s: %s%s\n", field.Name, annotation, suffix)
			}
			b.WriteString("\n")
			continue
		}
		nodeRes := res.resolve(named.Node, named.Name, 0)
		fmt.Fprintf(&b, "\n%s = %s\n", named.Name, nodeRes.Annotation)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// renderValidators emits one module-level validator per named schema in
// dependency order. Each is a callable taking (value, path) and raising
// SchemaRegistryError on the first violation.
func renderValidators(req emit.Request, res *resolver) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString("from .common import (\n")
	b.WriteString("    _any,\n    _array,\n    _boolean,\n    _date,\n    _datetime,\n    _enum,\n")
	b.WriteString("    _field,\n    _integer,\n    _nullable,\n    _number,\n    _record,\n    _ref,\n    _string,\n")
	b.WriteString(")\n\n")

	for _, named := range req.Ordered {
		nodeRes := res.resolve(named.Node, named.Name, 0)
		fmt.Fprintf(&b, "%s = %s\n\n", ValidatorName(named.Name), nodeRes.Validator)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderMarshaller(req emit.Request) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString(`import json
from typing import Any, Union

from . import models, validator
from .common import SchemaRegistryError, SchemaRegistryErrorCode, get_logger

logger = get_logger(__name__)


class Marshaller:
    """Converts typed payload objects to JSON text, validating first."""
`)

	for _, named := range req.Document.Schemas {
		name := named.Name
		snake := SnakeCase(name)
		fmt.Fprintf(&b, `
    @staticmethod
    def marshal_%[2]s(data: "models.%[1]s") -> str:
        logger.debug("Marshalling %[1]s")
        payload = data.model_dump(mode="json", exclude_unset=True)
        validator.%[3]s(payload, "%[1]s")
        try:
            return json.dumps(payload)
        except (TypeError, ValueError) as exc:
            raise SchemaRegistryError(
                SchemaRegistryErrorCode.MARSHAL_ERROR,
                f"Failed to marshal %[1]s: {exc}",
                exc,
            ) from exc
`, name, snake, ValidatorName(name))
	}

	b.WriteString(`

class Unmarshaller:
    """Converts JSON text back into typed payload objects, validating first."""
`)

	for _, named := range req.Document.Schemas {
		name := named.Name
		snake := SnakeCase(name)
		fmt.Fprintf(&b, `
    @staticmethod
    def unmarshal_%[2]s(raw: Union[str, bytes, Any]) -> "models.%[1]s":
        logger.debug("Unmarshalling %[1]s")
        if isinstance(raw, (str, bytes)):
            try:
                payload = json.loads(raw)
            except ValueError as exc:
                raise SchemaRegistryError(
                    SchemaRegistryErrorCode.PARSE_ERROR,
                    f"Invalid JSON for %[1]s: {exc}",
                    exc,
                ) from exc
        else:
            payload = raw
        validator.%[3]s(payload, "%[1]s")
        return models.%[1]s.model_validate(payload)
`, name, snake, ValidatorName(name))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
