package parser

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
)

func parseFixture(t *testing.T) schema.Document {
	t.Helper()
	p := New(pkgopenapi.NewParserOptions())
	doc, err := p.Parse(context.Background(), testsupport.BillEventDocument())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func parseRaw(t *testing.T, raw string) (schema.Document, error) {
	t.Helper()
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithDocumentValidation(false)))
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("inline.yaml"), []byte(raw))
	return p.Parse(context.Background(), doc)
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	doc := parseFixture(t)

	if doc.Title != "Bill Events" {
		t.Fatalf("title = %q", doc.Title)
	}

	wantSchemas := []string{"BillEvent", "Bill", "Project", "LineItem", "Approval", "Metadata"}
	if diff := cmp.Diff(wantSchemas, doc.Names()); diff != "" {
		t.Fatalf("schema order (-want +got):\n%s", diff)
	}

	bill, ok := doc.Schema("Bill")
	if !ok {
		t.Fatal("Bill schema missing")
	}
	var props []string
	for _, prop := range bill.Properties {
		props = append(props, prop.Name)
	}
	wantProps := []string{
		"billId", "billNumber", "billType", "billDate", "dueDate",
		"paidDate", "billStatus", "totalAmountInCents", "amountPaidInCents",
	}
	if diff := cmp.Diff(wantProps, props); diff != "" {
		t.Fatalf("property order (-want +got):\n%s", diff)
	}
}

func TestParse_DecidesNodeKindsOnce(t *testing.T) {
	doc := parseFixture(t)

	event, _ := doc.Schema("BillEvent")
	if event.Kind != schema.KindObject {
		t.Fatalf("BillEvent kind = %q", event.Kind)
	}
	fields := event.Fields()
	if fields[0].Node.Kind != schema.KindReference || fields[0].Node.Target != "Bill" {
		t.Fatalf("bill field should reference Bill: %+v", fields[0].Node)
	}
	lineItems := fields[2].Node
	if lineItems.Kind != schema.KindArray || lineItems.Items == nil {
		t.Fatalf("lineItems should be an array: %+v", lineItems)
	}
	if lineItems.Items.Kind != schema.KindReference || lineItems.Items.Target != "LineItem" {
		t.Fatalf("lineItems items should reference LineItem: %+v", lineItems.Items)
	}

	bill, _ := doc.Schema("Bill")
	byName := make(map[string]schema.PropertyField)
	for _, field := range bill.Fields() {
		byName[field.Name] = field
	}
	if got := byName["billDate"].Node; got.Type != schema.TypeString || got.Format != schema.FormatDate {
		t.Fatalf("billDate node: %+v", got)
	}
	if !byName["dueDate"].Nullable || byName["dueDate"].Required {
		t.Fatalf("dueDate should be nullable and optional: %+v", byName["dueDate"])
	}
	if got := byName["billType"].Node.Enum; !cmp.Equal(got, []string{"STANDARD", "QUICK"}) {
		t.Fatalf("billType enum: %v", got)
	}
	if got := byName["totalAmountInCents"].Node.Type; got != schema.TypeInteger {
		t.Fatalf("totalAmountInCents type: %q", got)
	}
}

func TestParse_CollectsOperationsInDeclarationOrder(t *testing.T) {
	doc := parseFixture(t)

	want := []schema.Operation{
		{Method: "GET", Path: "/bills", Summary: "List bills"},
		{Method: "POST", Path: "/events/bill", Summary: "Publish a bill event", RequestRef: "BillEvent"},
	}
	if diff := cmp.Diff(want, doc.Operations); diff != "" {
		t.Fatalf("operations (-want +got):\n%s", diff)
	}
}

func TestParse_UnknownShapeBecomesAnyNode(t *testing.T) {
	doc, err := parseRaw(t, `
openapi: 3.0.3
info:
  title: Odd Shapes
  version: 1.0.0
paths: {}
components:
  schemas:
    Holder:
      type: object
      properties:
        mystery:
          description: no type keyword at all
`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	holder, _ := doc.Schema("Holder")
	if holder.Properties[0].Node.Kind != schema.KindAny {
		t.Fatalf("mystery should degrade to KindAny: %+v", holder.Properties[0].Node)
	}
}

func TestParse_GateFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		code generr.Code
	}{
		{
			name: "missing components",
			raw: `
openapi: 3.0.3
info: {title: T, version: 1.0.0}
paths: {}
`,
			code: generr.CodeMissingComponents,
		},
		{
			name: "named schema without shape",
			raw: `
openapi: 3.0.3
info: {title: T, version: 1.0.0}
paths: {}
components:
  schemas:
    Mystery:
      description: nothing discriminable
`,
			code: generr.CodeMissingType,
		},
		{
			name: "array without items",
			raw: `
openapi: 3.0.3
info: {title: T, version: 1.0.0}
paths: {}
components:
  schemas:
    Bag:
      type: object
      properties:
        things:
          type: array
`,
			code: generr.CodeArrayWithoutItems,
		},
		{
			name: "unresolved reference",
			raw: `
openapi: 3.0.3
info: {title: T, version: 1.0.0}
paths: {}
components:
  schemas:
    Holder:
      type: object
      properties:
        other:
          $ref: '#/components/schemas/Missing'
`,
			code: generr.CodeUnresolvedRef,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseRaw(t, tc.raw)
			if generr.CodeOf(err) != tc.code {
				t.Fatalf("code = %q, want %q (err: %v)", generr.CodeOf(err), tc.code, err)
			}
		})
	}
}

func TestParse_RejectsUndecodableDocuments(t *testing.T) {
	_, err := parseRaw(t, "{ not: [valid")
	if generr.CodeOf(err) != generr.CodeDocumentUnparseable {
		t.Fatalf("unexpected error: %v", err)
	}
}
