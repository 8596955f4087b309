// Package typescript renders the TypeScript artifact set: interface models,
// zod validators, marshaller/unmarshaller classes, shared utilities, and the
// optional event-bus publisher/consumer scaffolds.
package typescript

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emit/template"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Name is the target identifier used by the emitter registry.
const Name = "typescript"

// Emitter implements emit.Emitter for the TypeScript target.
type Emitter struct {
	engine *template.Engine
}

// Ensure the implementation satisfies the public interface.
var _ emit.Emitter = (*Emitter)(nil)

// New constructs the emitter with its embedded template set.
func New() (*Emitter, error) {
	engine, err := template.New(template.WithFS(TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("typescript: template engine: %w", err)
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
		{Filename: "models.ts", Content: []byte(e.renderModels(req, res))},
		{Filename: "validator.ts", Content: []byte(e.renderValidators(req, res))},
		{Filename: "marshaller.ts", Content: []byte(renderMarshaller(req))},
		{Filename: "unmarshaller.ts", Content: []byte(renderUnmarshaller(req))},
	}

	common, err := e.engine.Render("common.ts", templateContext(req))
	if err != nil {
		return nil, nil, fmt.Errorf("typescript: render common.ts: %w", err)
	}
	artifacts = append(artifacts, emit.Artifact{Filename: "common.ts", Content: []byte(common)})

	if req.EventBus {
		for _, name := range []string{"publisher.ts", "consumer.ts"} {
			content, err := e.engine.Render(name, templateContext(req))
			if err != nil {
				return nil, nil, fmt.Errorf("typescript: render %s: %w", name, err)
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
		"event_source": emit.EventSource(req.Document.Title),
	}
}

func header(req emit.Request) string {
	return fmt.Sprintf("// Code generated by schemagen from %q. DO NOT EDIT.\n\n", req.Document.Title)
}

// renderModels emits one type declaration per named schema in declaration
// order; TypeScript tolerates forward references between types.
func (e *Emitter) renderModels(req emit.Request, res *resolver) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString("/** ISO 8601 calendar date string (e.g. \"2024-01-15\") */\n")
	b.WriteString("export type ISO8601Date = string;\n\n")
	b.WriteString("/** ISO 8601 UTC date-time string (e.g. \"2024-01-15T10:30:00.000Z\") */\n")
	b.WriteString("export type ISO8601DateTime = string;\n\n")

	for _, named := range req.Document.Schemas {
		if named.Node.Description != "" {
			fmt.Fprintf(&b, "/** %s */\n", named.Node.Description)
		}
		if named.Node.Kind == schema.KindObject && len(named.Node.Properties) > 0 {
			fmt.Fprintf(&b, "export interface %s {\n", named.Name)
			for _, field := range named.Node.Fields() {
				fieldRes := res.resolve(field.Node, named.Name+"."+field.Name, 2)
				if field.Description != "" {
					fmt.Fprintf(&b, "  /** %s */\n", field.Description)
				}
				optional := ""
				if !field.Required {
					optional = "?"
				}
				fmt.Fprintf(&b, "  %s%s: %s;\n", field.Name, optional, fieldRes.Type)
			}
			b.WriteString("}\n\n")
			continue
		}
		nodeRes := res.resolve(named.Node, named.Name, 0)
		fmt.Fprintf(&b, "export type %s = %s;\n\n", named.Name, nodeRes.Type)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// renderValidators emits one zod schema per named schema in dependency
// order. The z.lazy wrapper keeps self references legal without relaxing the
// ordering guarantee.
func (e *Emitter) renderValidators(req emit.Request, res *resolver) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString("import { z } from \"zod\";\n\n")

	for _, named := range req.Ordered {
		nodeRes := res.resolve(named.Node, named.Name, 2)
		fmt.Fprintf(&b, "export const %sSchema = z.lazy(() =>\n  %s);\n\n", named.Name, nodeRes.Validator)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderMarshaller(req emit.Request) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString(`import { z } from "zod";
import * as models from "./models";
import * as validator from "./validator";
import { SchemaRegistryError, SchemaRegistryErrorCode, ILogger, ConsoleLogger } from "./common";

/**
 * Converts typed payload objects to their JSON interchange text, validating
 * before encoding.
 */
export class Marshaller {
  private static logger: ILogger = new ConsoleLogger();

  static setLogger(logger: ILogger) {
    this.logger = logger;
  }
`)

	for _, named := range req.Document.Schemas {
		name := named.Name
		fmt.Fprintf(&b, `
  static marshal%[1]s(data: models.%[1]s): string {
    try {
      this.logger.debug("Marshalling %[1]s");
      validator.%[1]sSchema.parse(data);
      return JSON.stringify(data);
    } catch (error) {
      if (error instanceof z.ZodError) {
        throw new SchemaRegistryError(
          SchemaRegistryErrorCode.VALIDATION_ERROR,
          `+"`Invalid %[1]s data: ${error.message}`"+`,
          error
        );
      }
      throw new SchemaRegistryError(
        SchemaRegistryErrorCode.MARSHAL_ERROR,
        `+"`Failed to marshal %[1]s: ${error instanceof Error ? error.message : \"Unknown error\"}`"+`,
        error
      );
    }
  }
`, name)
	}
	b.WriteString("}\n")
	return b.String()
}

func renderUnmarshaller(req emit.Request) string {
	var b strings.Builder
	b.WriteString(header(req))
	b.WriteString(`import { z } from "zod";
import * as models from "./models";
import * as validator from "./validator";
import { SchemaRegistryError, SchemaRegistryErrorCode, ILogger, ConsoleLogger } from "./common";

/**
 * Converts JSON interchange text back into typed payload objects, validating
 * before returning.
 */
export class Unmarshaller {
  private static logger: ILogger = new ConsoleLogger();

  static setLogger(logger: ILogger) {
    this.logger = logger;
  }
`)

	for _, named := range req.Document.Schemas {
		name := named.Name
		fmt.Fprintf(&b, `
  static unmarshal%[1]s(json: unknown): models.%[1]s {
    try {
      this.logger.debug("Unmarshalling %[1]s");
      const data = typeof json === "string" ? JSON.parse(json) : json;
      return validator.%[1]sSchema.parse(data) as models.%[1]s;
    } catch (error) {
      if (error instanceof SyntaxError) {
        throw new SchemaRegistryError(
          SchemaRegistryErrorCode.PARSE_ERROR,
          `+"`Invalid JSON for %[1]s: ${error.message}`"+`,
          error
        );
      }
      if (error instanceof z.ZodError) {
        throw new SchemaRegistryError(
          SchemaRegistryErrorCode.VALIDATION_ERROR,
          `+"`Invalid %[1]s data: ${error.message}`"+`,
          error
        );
      }
      throw new SchemaRegistryError(
        SchemaRegistryErrorCode.UNMARSHAL_ERROR,
        `+"`Failed to unmarshal %[1]s: ${error instanceof Error ? error.message : \"Unknown error\"}`"+`,
        error
      );
    }
  }
`, name)
	}
	b.WriteString("}\n")
	return b.String()
}
