package parser

import (
	"context"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Parser implements pkgopenapi.Parser. kin-openapi provides document-level
// structural validation; the IR itself is assembled from a yaml.v3 node walk
// because kin-openapi stores components.schemas and paths as Go maps, losing
// the declaration order the emitters depend on.
type Parser struct {
	options pkgopenapi.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Parse converts a Document into the schema IR and runs the structural gate.
// Gate violations carry their coded schema errors; anything the gate cannot
// express surfaces through kin-openapi validation as an unparseable-document
// error.
func (p *Parser) Parse(ctx context.Context, doc pkgopenapi.Document) (schema.Document, error) {
	if err := ctx.Err(); err != nil {
		return schema.Document{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return schema.Document{}, generr.New(generr.CodeDocumentUnparseable,
			"document payload is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return schema.Document{}, generr.Wrap(generr.CodeDocumentUnparseable,
			"decode document", err)
	}
	mapping := documentMapping(&root)
	if mapping == nil {
		return schema.Document{}, generr.New(generr.CodeDocumentUnparseable,
			"document root is not a mapping")
	}

	out := schema.Document{
		Title:      infoTitle(mapping),
		Operations: collectOperations(mapping),
		Schemas:    collectSchemas(mapping),
	}

	// The gate runs before kin-openapi validation so coded schema errors win
	// over generic structural complaints about the same defect.
	if err := schema.Validate(out); err != nil {
		return schema.Document{}, err
	}

	if p.options.ValidateDocument {
		if err := p.validateDocument(ctx, raw); err != nil {
			return schema.Document{}, err
		}
	}

	return out, nil
}

func (p *Parser) validateDocument(ctx context.Context, raw []byte) error {
	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return generr.Wrap(generr.CodeDocumentUnparseable, "load document", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return generr.Wrap(generr.CodeDocumentUnparseable, "validate document", err)
	}
	return nil
}

func infoTitle(mapping *yaml.Node) string {
	info := mappingValue(mapping, "info")
	if info == nil {
		return ""
	}
	title := mappingValue(info, "title")
	if title == nil {
		return ""
	}
	return strings.TrimSpace(title.Value)
}

// collectOperations walks paths in declaration order, and methods in their
// declared order within each path item.
func collectOperations(mapping *yaml.Node) []schema.Operation {
	paths := mappingValue(mapping, "paths")
	if paths == nil {
		return nil
	}

	var operations []schema.Operation
	eachMappingEntry(paths, func(path string, item *yaml.Node) {
		eachMappingEntry(item, func(method string, op *yaml.Node) {
			if !isHTTPMethod(method) {
				return
			}
			operations = append(operations, schema.Operation{
				Method:     strings.ToUpper(method),
				Path:       path,
				Summary:    scalarValue(op, "summary"),
				RequestRef: requestBodyRef(op),
			})
		})
	})
	return operations
}

// requestBodyRef returns the target name when the operation's request body
// declares an application/json schema that is a direct local reference.
// Inline schemas and other media types yield an empty name.
func requestBodyRef(op *yaml.Node) string {
	body := mappingValue(op, "requestBody")
	content := mappingValue(body, "content")
	mediaType := mappingValue(content, "application/json")
	schemaNode := mappingValue(mediaType, "schema")
	if schemaNode == nil {
		return ""
	}
	ref := scalarValue(schemaNode, "$ref")
	if ref == "" {
		return ""
	}
	return localRefTarget(ref)
}

func collectSchemas(mapping *yaml.Node) []schema.Named {
	components := mappingValue(mapping, "components")
	schemas := mappingValue(components, "schemas")
	if schemas == nil {
		return nil
	}

	var named []schema.Named
	eachMappingEntry(schemas, func(name string, value *yaml.Node) {
		named = append(named, schema.Named{Name: name, Node: buildNode(value)})
	})
	return named
}

func isHTTPMethod(key string) bool {
	switch strings.ToLower(key) {
	case "get", "put", "post", "delete", "patch", "head", "options", "trace":
		return true
	default:
		return false
	}
}

// localRefTarget resolves a $ref string to a schema name. Non-local
// references keep their raw form so the gate reports them as unresolved.
func localRefTarget(ref string) string {
	const prefix = "#/components/schemas/"
	if target, ok := strings.CutPrefix(ref, prefix); ok && !strings.Contains(target, "/") {
		return target
	}
	return ref
}

func documentMapping(root *yaml.Node) *yaml.Node {
	node := resolveAlias(root)
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolveAlias(node.Content[0])
	}
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}
