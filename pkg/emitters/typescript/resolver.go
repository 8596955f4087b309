package typescript

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// resolution pairs the structural type expression with the runtime zod
// validator expression for one schema node.
type resolution struct {
	Type      string
	Validator string
}

// resolver performs the recursive node descent for the TypeScript target.
// References resolve to the target schema's declared name and are never
// inlined, so self-referential structures stay bounded.
type resolver struct {
	warnings []emit.Warning
}

// resolve returns the co-located type/validator pair for a node. indent is
// the column at which a multi-line validator expression continues.
func (r *resolver) resolve(node schema.Node, path string, indent int) resolution {
	res := r.resolveBase(node, path, indent)
	if node.Nullable {
		res.Type = res.Type + " | null"
		res.Validator = res.Validator + ".nullable()"
	}
	return res
}

func (r *resolver) resolveBase(node schema.Node, path string, indent int) resolution {
	switch node.Kind {
	case schema.KindReference:
		return resolution{
			Type:      node.Target,
			Validator: node.Target + "Schema",
		}
	case schema.KindPrimitive:
		return r.resolvePrimitive(node)
	case schema.KindArray:
		item := r.resolve(*node.Items, path+"[]", indent)
		itemType := item.Type
		if strings.ContainsAny(itemType, "|{ ") {
			itemType = "(" + itemType + ")"
		}
		return resolution{
			Type:      itemType + "[]",
			Validator: "z.array(" + item.Validator + ")",
		}
	case schema.KindObject:
		if len(node.Properties) == 0 {
			return resolution{
				Type:      "Record<string, unknown>",
				Validator: "z.record(z.unknown())",
			}
		}
		return r.resolveObject(node, path, indent)
	default:
		r.warnings = append(r.warnings, emit.Warning{
			Schema:  firstSegment(path),
			Path:    path,
			Message: "unrecognized schema shape resolved to an unconstrained type",
		})
		return resolution{Type: "unknown", Validator: "z.unknown()"}
	}
}

func firstSegment(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

func (r *resolver) resolvePrimitive(node schema.Node) resolution {
	switch node.Type {
	case schema.TypeString:
		if len(node.Enum) > 0 {
			literals := make([]string, 0, len(node.Enum))
			quoted := make([]string, 0, len(node.Enum))
			for _, value := range node.Enum {
				literals = append(literals, fmt.Sprintf("%q", value))
				quoted = append(quoted, fmt.Sprintf("%q", value))
			}
			return resolution{
				Type:      strings.Join(literals, " | "),
				Validator: "z.enum([" + strings.Join(quoted, ", ") + "])",
			}
		}
		switch node.Format {
		case schema.FormatDate:
			return resolution{
				Type:      "ISO8601Date",
				Validator: `z.string().regex(/^\d{4}-\d{2}-\d{2}$/)`,
			}
		case schema.FormatDateTime:
			return resolution{
				Type:      "ISO8601DateTime",
				Validator: "z.string().datetime()",
			}
		}
		return resolution{Type: "string", Validator: "z.string()"}
	case schema.TypeInteger:
		return resolution{Type: "number", Validator: "z.number().int()"}
	case schema.TypeNumber:
		return resolution{Type: "number", Validator: "z.number()"}
	case schema.TypeBoolean:
		return resolution{Type: "boolean", Validator: "z.boolean()"}
	default:
		return resolution{Type: "unknown", Validator: "z.unknown()"}
	}
}

// resolveObject renders a z.object literal. Field order follows declaration
// order; a nullable, non-required field composes .nullable() before
// .optional() so absent, explicit null, and valid value stay three distinct
// acceptance paths.
func (r *resolver) resolveObject(node schema.Node, path string, indent int) resolution {
	pad := strings.Repeat(" ", indent)
	inner := strings.Repeat(" ", indent+2)

	var typeFields []string
	var validatorFields []string
	for _, field := range node.Fields() {
		fieldRes := r.resolve(field.Node, path+"."+field.Name, indent+2)

		typeName := field.Name
		if !field.Required {
			typeName += "?"
		}
		typeFields = append(typeFields, fmt.Sprintf("%s%s: %s;", inner, typeName, fieldRes.Type))

		validator := fieldRes.Validator
		if !field.Required {
			validator += ".optional()"
		}
		validatorFields = append(validatorFields, fmt.Sprintf("%s%s: %s,", inner, field.Name, validator))
	}

	return resolution{
		Type:      "{\n" + strings.Join(typeFields, "\n") + "\n" + pad + "}",
		Validator: "z.object({\n" + strings.Join(validatorFields, "\n") + "\n" + pad + "})",
	}
}
