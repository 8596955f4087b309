package schema

import "strings"

// RootBinding names the schema chosen to represent the primary event payload
// plus the operation that nominated it, when one did. Computed once per run,
// never persisted.
type RootBinding struct {
	SchemaName    string
	OperationPath string
}

// InferRoot selects the root event schema. It scans operations in document
// declaration order for the first POST whose request body declares an
// application/json schema that is a direct reference; failing that, it falls
// back to the first schema in components.schemas. The gate guarantees at
// least one schema exists, so inference itself never fails.
func InferRoot(doc Document) RootBinding {
	for _, op := range doc.Operations {
		if !strings.EqualFold(op.Method, "POST") || op.RequestRef == "" {
			continue
		}
		if _, ok := doc.Schema(op.RequestRef); ok {
			return RootBinding{SchemaName: op.RequestRef, OperationPath: op.Path}
		}
	}
	if len(doc.Schemas) > 0 {
		return RootBinding{SchemaName: doc.Schemas[0].Name}
	}
	return RootBinding{}
}
