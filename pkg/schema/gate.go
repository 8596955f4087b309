package schema

import (
	"fmt"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
)

// Validate is the structural gate run before any artifact is produced. It
// fails when components.schemas is missing or empty, when a named schema has
// no discriminable shape, when an array node lacks items, or when a reference
// does not resolve to a named schema. Any violation aborts generation with no
// partial output.
func Validate(doc Document) error {
	if len(doc.Schemas) == 0 {
		return generr.New(generr.CodeMissingComponents,
			"document does not declare components.schemas")
	}

	for _, named := range doc.Schemas {
		if named.Node.Kind == KindAny {
			return generr.Newf(generr.CodeMissingType,
				"schema %q has no discriminable shape (expected object, scalar, or array)", named.Name)
		}
		if err := validateNode(doc, named.Name, named.Name, named.Node); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(doc Document, schemaName, path string, node Node) error {
	switch node.Kind {
	case KindReference:
		if _, ok := doc.Schema(node.Target); !ok {
			return generr.Newf(generr.CodeUnresolvedRef,
				"%s references undeclared schema %q", path, node.Target)
		}
	case KindArray:
		if node.Items == nil {
			return generr.Newf(generr.CodeArrayWithoutItems,
				"%s is an array without items", path)
		}
		return validateNode(doc, schemaName, path+"[]", *node.Items)
	case KindObject:
		for _, prop := range node.Properties {
			if err := validateNode(doc, schemaName, fmt.Sprintf("%s.%s", path, prop.Name), prop.Node); err != nil {
				return err
			}
		}
	}
	return nil
}
