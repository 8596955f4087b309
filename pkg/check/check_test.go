package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	parser "github.com/goliatone/go-schemagen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
)

func billDocument(t *testing.T) schema.Document {
	t.Helper()
	p := parser.New(pkgopenapi.NewParserOptions())
	doc, err := p.Parse(context.Background(), testsupport.BillEventDocument())
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

const validBill = `{
  "billId": "bill-1",
  "billNumber": "INV-1001",
  "billType": "STANDARD",
  "billDate": "2024-01-15",
  "dueDate": null,
  "paidDate": null,
  "billStatus": "OPEN",
  "totalAmountInCents": 125000,
  "amountPaidInCents": null
}`

func TestCheckerAcceptsValidPayload(t *testing.T) {
	checker, err := New(billDocument(t), "Bill")
	if err != nil {
		t.Fatalf("new checker: %v", err)
	}

	if err := checker.Validate([]byte(validBill)); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

func TestCheckerRejectsBadPayloads(t *testing.T) {
	checker, err := New(billDocument(t), "Bill")
	if err != nil {
		t.Fatalf("new checker: %v", err)
	}

	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `{"billId":`},
		{"missing required field", `{"billId": "bill-1"}`},
		{"enum violation", `{"billId": "b", "billNumber": "n", "billType": "UNKNOWN", "billDate": "2024-01-15", "billStatus": "OPEN", "totalAmountInCents": 1}`},
		{"bad date format", `{"billId": "b", "billNumber": "n", "billType": "STANDARD", "billDate": "15/01/2024", "billStatus": "OPEN", "totalAmountInCents": 1}`},
		{"null on non-nullable", `{"billId": null, "billNumber": "n", "billType": "STANDARD", "billDate": "2024-01-15", "billStatus": "OPEN", "totalAmountInCents": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := checker.Validate([]byte(tc.payload)); err == nil {
				t.Error("expected the payload to be rejected")
			}
		})
	}
}

func TestCheckerValidateFile(t *testing.T) {
	checker, err := New(billDocument(t), "Bill")
	if err != nil {
		t.Fatalf("new checker: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bill.json")
	if err := os.WriteFile(path, []byte(validBill), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}

	if err := checker.ValidateFile(path); err != nil {
		t.Errorf("valid payload file rejected: %v", err)
	}
	if err := checker.ValidateFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing payload file")
	}
}

func TestCheckerUnknownRoot(t *testing.T) {
	if _, err := New(billDocument(t), "Nope"); err == nil {
		t.Error("expected an error for an unknown root schema")
	}
}
