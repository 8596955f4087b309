// Package check validates JSON payloads against a parsed document, giving a
// fast answer to "would this payload pass the generated validators" without
// running any generated code. The named schemas are lowered to a JSON Schema
// draft-7 document and compiled once per checker.
package check

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Checker validates payloads against one named schema of a document.
type Checker struct {
	compiled *jsonschema.Schema
	root     string
}

// New lowers the document to JSON Schema draft-7 rooted at the named schema
// and compiles it.
func New(doc schema.Document, root string) (*Checker, error) {
	if _, ok := doc.Schema(root); !ok {
		return nil, fmt.Errorf("check: schema %q not found in document", root)
	}

	lowered := map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"$ref":        "#/definitions/" + root,
		"definitions": lowerDefinitions(doc),
	}
	raw, err := json.Marshal(lowered)
	if err != nil {
		return nil, fmt.Errorf("check: encode schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true
	if err := compiler.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("check: add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("check: compile schema: %w", err)
	}

	return &Checker{compiled: compiled, root: root}, nil
}

// Validate checks one JSON payload.
func (c *Checker) Validate(payload []byte) error {
	var value any
	if err := json.Unmarshal(payload, &value); err != nil {
		return fmt.Errorf("check: payload is not valid JSON: %w", err)
	}
	if err := c.compiled.Validate(value); err != nil {
		return fmt.Errorf("check: payload does not match %s: %w", c.root, err)
	}
	return nil
}

// ValidateFile checks the JSON payload stored at path.
func (c *Checker) ValidateFile(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("check: read payload: %w", err)
	}
	return c.Validate(payload)
}

func lowerDefinitions(doc schema.Document) map[string]any {
	definitions := make(map[string]any, len(doc.Schemas))
	for _, named := range doc.Schemas {
		definitions[named.Name] = lowerNode(named.Node)
	}
	return definitions
}

// lowerNode translates one IR node to its draft-7 representation. Nullable
// nodes become an anyOf with an explicit null branch so absent, null, and
// valid value keep their distinct treatment.
func lowerNode(node schema.Node) map[string]any {
	base := lowerBase(node)
	if !node.Nullable {
		return base
	}
	return map[string]any{
		"anyOf": []any{
			map[string]any{"type": "null"},
			base,
		},
	}
}

func lowerBase(node schema.Node) map[string]any {
	switch node.Kind {
	case schema.KindReference:
		return map[string]any{"$ref": "#/definitions/" + node.Target}
	case schema.KindPrimitive:
		return lowerPrimitive(node)
	case schema.KindArray:
		return map[string]any{
			"type":  "array",
			"items": lowerNode(*node.Items),
		}
	case schema.KindObject:
		properties := make(map[string]any, len(node.Properties))
		for _, prop := range node.Properties {
			properties[prop.Name] = lowerNode(prop.Node)
		}
		lowered := map[string]any{
			"type":       "object",
			"properties": properties,
		}
		if len(node.Required) > 0 {
			lowered["required"] = node.Required
		}
		return lowered
	default:
		return map[string]any{}
	}
}

func lowerPrimitive(node schema.Node) map[string]any {
	lowered := map[string]any{}
	switch node.Type {
	case schema.TypeString:
		lowered["type"] = "string"
		switch node.Format {
		case schema.FormatDate:
			lowered["pattern"] = `^\d{4}-\d{2}-\d{2}$`
		case schema.FormatDateTime:
			lowered["format"] = "date-time"
		}
		if len(node.Enum) > 0 {
			values := make([]any, 0, len(node.Enum))
			for _, value := range node.Enum {
				values = append(values, value)
			}
			lowered["enum"] = values
		}
	case schema.TypeInteger:
		lowered["type"] = "integer"
	case schema.TypeNumber:
		lowered["type"] = "number"
	case schema.TypeBoolean:
		lowered["type"] = "boolean"
	}
	return lowered
}
