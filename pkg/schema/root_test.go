package schema

import "testing"

func TestInferRoot_PicksFirstPostWithDirectReference(t *testing.T) {
	doc := Document{
		Operations: []Operation{
			{Method: "GET", Path: "/bills"},
			{Method: "POST", Path: "/bills/import", RequestRef: ""},
			{Method: "POST", Path: "/events/bill", RequestRef: "BillEvent"},
			{Method: "POST", Path: "/events/project", RequestRef: "ProjectEvent"},
		},
		Schemas: []Named{
			{Name: "ProjectEvent", Node: objectOf(Property{Name: "id", Node: stringNode()})},
			{Name: "BillEvent", Node: objectOf(Property{Name: "id", Node: stringNode()})},
		},
	}

	root := InferRoot(doc)
	if root.SchemaName != "BillEvent" {
		t.Fatalf("root = %q, want BillEvent", root.SchemaName)
	}
	if root.OperationPath != "/events/bill" {
		t.Fatalf("operation path = %q", root.OperationPath)
	}
}

func TestInferRoot_FallsBackToFirstDeclaredSchema(t *testing.T) {
	doc := Document{
		Operations: []Operation{
			{Method: "GET", Path: "/bills"},
		},
		Schemas: []Named{
			{Name: "Bill", Node: objectOf(Property{Name: "id", Node: stringNode()})},
			{Name: "Project", Node: objectOf(Property{Name: "id", Node: stringNode()})},
		},
	}

	root := InferRoot(doc)
	if root.SchemaName != "Bill" || root.OperationPath != "" {
		t.Fatalf("unexpected binding: %+v", root)
	}
}

func TestInferRoot_IgnoresPostsReferencingUnknownSchemas(t *testing.T) {
	doc := Document{
		Operations: []Operation{
			{Method: "POST", Path: "/events", RequestRef: "Missing"},
		},
		Schemas: []Named{
			{Name: "Bill", Node: objectOf(Property{Name: "id", Node: stringNode()})},
		},
	}

	if root := InferRoot(doc); root.SchemaName != "Bill" {
		t.Fatalf("root = %q, want fallback Bill", root.SchemaName)
	}
}
