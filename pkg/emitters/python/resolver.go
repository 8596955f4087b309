package python

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// resolution pairs the model type annotation with the runtime validator
// combinator expression for one schema node.
type resolution struct {
	Annotation string
	Validator  string
}

// resolver performs the recursive node descent for the Python target.
// References resolve to the target schema's class and validator names and are
// never inlined.
type resolver struct {
	warnings []emit.Warning
}

// resolve returns the annotation/validator pair for a node. A nullable node
// widens the annotation to Optional and wraps the validator so explicit None
// passes.
func (r *resolver) resolve(node schema.Node, path string, indent int) resolution {
	res := r.resolveBase(node, path, indent)
	if node.Nullable {
		res.Annotation = "Optional[" + res.Annotation + "]"
		res.Validator = "_nullable(" + res.Validator + ")"
	}
	return res
}

func (r *resolver) resolveBase(node schema.Node, path string, indent int) resolution {
	switch node.Kind {
	case schema.KindReference:
		// The thunk defers the name lookup to call time so self-referential
		// schemas stay legal at module level.
		return resolution{
			Annotation: node.Target,
			Validator:  "_ref(lambda: " + ValidatorName(node.Target) + ")",
		}
	case schema.KindPrimitive:
		return r.resolvePrimitive(node)
	case schema.KindArray:
		item := r.resolve(*node.Items, path+"[]", indent)
		return resolution{
			Annotation: "List[" + item.Annotation + "]",
			Validator:  "_array(" + item.Validator + ")",
		}
	case schema.KindObject:
		if len(node.Properties) == 0 {
			return resolution{
				Annotation: "Dict[str, Any]",
				Validator:  "_record([])",
			}
		}
		return r.resolveObject(node, path, indent)
	default:
		r.warnings = append(r.warnings, emit.Warning{
			Schema:  firstSegment(path),
			Path:    path,
			Message: "unrecognized schema shape resolved to an unconstrained type",
		})
		return resolution{Annotation: "Any", Validator: "_any()"}
	}
}

func (r *resolver) resolvePrimitive(node schema.Node) resolution {
	switch node.Type {
	case schema.TypeString:
		if len(node.Enum) > 0 {
			literals := make([]string, 0, len(node.Enum))
			for _, value := range node.Enum {
				literals = append(literals, fmt.Sprintf("%q", value))
			}
			joined := strings.Join(literals, ", ")
			return resolution{
				Annotation: "Literal[" + joined + "]",
				Validator:  "_enum([" + joined + "])",
			}
		}
		switch node.Format {
		case schema.FormatDate:
			return resolution{Annotation: "ISODate", Validator: "_date()"}
		case schema.FormatDateTime:
			return resolution{Annotation: "ISODateTime", Validator: "_datetime()"}
		}
		return resolution{Annotation: "str", Validator: "_string()"}
	case schema.TypeInteger:
		return resolution{Annotation: "int", Validator: "_integer()"}
	case schema.TypeNumber:
		return resolution{Annotation: "float", Validator: "_number()"}
	case schema.TypeBoolean:
		return resolution{Annotation: "bool", Validator: "_boolean()"}
	default:
		return resolution{Annotation: "Any", Validator: "_any()"}
	}
}

// resolveObject renders a _record combinator. Field order follows declaration
// order; optionality and nullability stay separate acceptance paths via the
// _field keyword arguments.
func (r *resolver) resolveObject(node schema.Node, path string, indent int) resolution {
	pad := strings.Repeat(" ", indent)
	inner := strings.Repeat(" ", indent+4)

	var fields []string
	for _, field := range node.Fields() {
		// Nullability is carried by _field, not by wrapping the value
		// validator, so resolve against the base shape here.
		base := field.Node
		base.Nullable = false
		fieldRes := r.resolve(base, path+"."+field.Name, indent+4)

		fields = append(fields, fmt.Sprintf(
			"%s_field(%q, %s, required=%s, nullable=%s),",
			inner, field.Name, fieldRes.Validator,
			pyBool(field.Required), pyBool(field.Nullable),
		))
	}

	return resolution{
		Annotation: "Dict[str, Any]",
		Validator:  "_record([\n" + strings.Join(fields, "\n") + "\n" + pad + "])",
	}
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

func firstSegment(path string) string {
	if i := strings.IndexAny(path, ".["); i >= 0 {
		return path[:i]
	}
	return path
}

// SnakeCase converts a PascalCase schema name to the snake_case identifier
// used for generated functions, e.g. "BillEvent" becomes "bill_event".
func SnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidatorName returns the module-level validator identifier for a schema.
func ValidatorName(name string) string {
	return "validate_" + SnakeCase(name)
}
