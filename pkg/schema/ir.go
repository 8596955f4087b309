// Package schema holds the intermediate representation shared by every
// emitter: a parsed document, its named schemas as a closed tagged union of
// nodes, the dependency graph over named schemas, and root-event inference.
// The IR is immutable after parsing; everything derived from it is recomputed
// per run.
package schema

import "slices"

// Kind discriminates the Node union. It is decided once at parse time so
// downstream code never probes for $ref/properties/items presence again.
type Kind string

const (
	// KindReference points at another named schema; references are never
	// inlined, which keeps recursion over self-referential structures bounded.
	KindReference Kind = "reference"
	// KindPrimitive covers string, integer, number, and boolean scalars.
	KindPrimitive Kind = "primitive"
	// KindArray wraps a homogeneous item node.
	KindArray Kind = "array"
	// KindObject carries ordered properties and a required set.
	KindObject Kind = "object"
	// KindAny marks shapes the parser could not discriminate. Nested
	// occurrences degrade to an unconstrained type plus a warning; a named
	// schema of this kind fails the structural gate.
	KindAny Kind = "any"
)

const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"

	FormatDate     = "date"
	FormatDateTime = "date-time"
)

// Node is one typed definition site in the source document. Exactly the
// fields belonging to its Kind are populated; Nullable and Description are
// modifiers valid on any variant.
type Node struct {
	Kind Kind

	// Target names the referenced schema (KindReference).
	Target string

	// Type, Format and Enum describe scalars (KindPrimitive).
	Type   string
	Format string
	Enum   []string

	// Items is the element node (KindArray). A nil Items on an array is a
	// schema error surfaced by the structural gate.
	Items *Node

	// Properties preserves declaration order (KindObject). Required lists the
	// property names the schema marks mandatory.
	Properties []Property
	Required   []string

	Nullable    bool
	Description string
}

// Property is one ordered object member.
type Property struct {
	Name string
	Node Node
}

// PropertyField is the per-field view emitters consume: the node plus the
// optionality and nullability resolved against the parent object. Derived on
// demand, never stored.
type PropertyField struct {
	Name        string
	Node        Node
	Required    bool
	Nullable    bool
	Description string
}

// IsRequired reports whether the object marks the given property mandatory.
func (n Node) IsRequired(name string) bool {
	return slices.Contains(n.Required, name)
}

// Fields derives the ordered PropertyField view of an object node.
func (n Node) Fields() []PropertyField {
	if n.Kind != KindObject || len(n.Properties) == 0 {
		return nil
	}
	fields := make([]PropertyField, 0, len(n.Properties))
	for _, prop := range n.Properties {
		fields = append(fields, PropertyField{
			Name:        prop.Name,
			Node:        prop.Node,
			Required:    n.IsRequired(prop.Name),
			Nullable:    prop.Node.Nullable,
			Description: prop.Node.Description,
		})
	}
	return fields
}

// Named pairs a schema name with its node. Slices of Named preserve the
// document declaration order, which is meaningful for emission.
type Named struct {
	Name string
	Node Node
}

// Operation captures the slice of an OpenAPI operation that root inference
// needs: its method, path, and the name of a directly referenced
// application/json request schema, if any.
type Operation struct {
	Method     string
	Path       string
	Summary    string
	RequestRef string
}

// Document is the root parsed artifact. Operations and Schemas keep the
// declaration order of the source document.
type Document struct {
	Title      string
	Operations []Operation
	Schemas    []Named
}

// Schema looks up a named schema.
func (d Document) Schema(name string) (Node, bool) {
	for _, named := range d.Schemas {
		if named.Name == name {
			return named.Node, true
		}
	}
	return Node{}, false
}

// Names returns schema names in declaration order.
func (d Document) Names() []string {
	names := make([]string, 0, len(d.Schemas))
	for _, named := range d.Schemas {
		names = append(names, named.Name)
	}
	return names
}
