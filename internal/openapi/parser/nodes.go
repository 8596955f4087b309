package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// buildNode turns one schema mapping into its IR node. The kind is decided
// here, exactly once; nothing downstream re-probes for $ref/type/properties.
func buildNode(value *yaml.Node) schema.Node {
	node := resolveAlias(value)
	if node == nil || node.Kind != yaml.MappingNode {
		return schema.Node{Kind: schema.KindAny}
	}

	out := schema.Node{
		Description: scalarValue(node, "description"),
		Nullable:    boolValue(node, "nullable"),
	}

	if ref := scalarValue(node, "$ref"); ref != "" {
		out.Kind = schema.KindReference
		out.Target = localRefTarget(ref)
		return out
	}

	typ := strings.ToLower(scalarValue(node, "type"))
	properties := mappingValue(node, "properties")
	items := mappingValue(node, "items")

	switch {
	case typ == schema.TypeString, typ == schema.TypeInteger, typ == schema.TypeNumber, typ == schema.TypeBoolean:
		out.Kind = schema.KindPrimitive
		out.Type = typ
		out.Format = scalarValue(node, "format")
		out.Enum = sequenceValues(node, "enum")
	case typ == "array" || items != nil:
		out.Kind = schema.KindArray
		if items != nil {
			item := buildNode(items)
			out.Items = &item
		}
	case typ == "object" || properties != nil:
		out.Kind = schema.KindObject
		out.Required = sequenceValues(node, "required")
		eachMappingEntry(properties, func(name string, prop *yaml.Node) {
			out.Properties = append(out.Properties, schema.Property{
				Name: name,
				Node: buildNode(prop),
			})
		})
	default:
		out.Kind = schema.KindAny
	}
	return out
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// mappingValue returns the value node for a key, or nil. Nil mappings are
// tolerated so lookups chain through absent intermediate sections.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	mapping = resolveAlias(mapping)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolveAlias(mapping.Content[i+1])
		}
	}
	return nil
}

// eachMappingEntry visits key/value pairs in declaration order.
func eachMappingEntry(mapping *yaml.Node, visit func(key string, value *yaml.Node)) {
	mapping = resolveAlias(mapping)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		visit(mapping.Content[i].Value, resolveAlias(mapping.Content[i+1]))
	}
}

func scalarValue(mapping *yaml.Node, key string) string {
	value := mappingValue(mapping, key)
	if value == nil || value.Kind != yaml.ScalarNode {
		return ""
	}
	return value.Value
}

func boolValue(mapping *yaml.Node, key string) bool {
	return scalarValue(mapping, key) == "true"
}

func sequenceValues(mapping *yaml.Node, key string) []string {
	seq := mappingValue(mapping, key)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	values := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		item = resolveAlias(item)
		if item != nil && item.Kind == yaml.ScalarNode {
			values = append(values, item.Value)
		}
	}
	return values
}
