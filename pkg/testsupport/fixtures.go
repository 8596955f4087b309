// Package testsupport provides fixture documents shared across package tests.
package testsupport

import (
	"errors"
	"fmt"
	"os"

	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
)

// BillEventYAML is a complete OpenAPI 3.0 document for the bill-event domain.
// BillEvent is deliberately declared first even though it depends on every
// other schema, so declaration order and dependency order disagree.
const BillEventYAML = `openapi: 3.0.3
info:
  title: Bill Events
  version: 1.0.0
paths:
  /bills:
    get:
      summary: List bills
      responses:
        '200':
          description: OK
  /events/bill:
    post:
      summary: Publish a bill event
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/BillEvent'
      responses:
        '202':
          description: Accepted
components:
  schemas:
    BillEvent:
      type: object
      description: Envelope for bill lifecycle events.
      required:
        - bill
        - project
        - lineItems
        - approval
        - eventMetadata
      properties:
        bill:
          $ref: '#/components/schemas/Bill'
        project:
          $ref: '#/components/schemas/Project'
        lineItems:
          type: array
          items:
            $ref: '#/components/schemas/LineItem'
        approval:
          $ref: '#/components/schemas/Approval'
        eventMetadata:
          $ref: '#/components/schemas/Metadata'
    Bill:
      type: object
      required:
        - billId
        - billNumber
        - billType
        - billDate
        - billStatus
        - totalAmountInCents
      properties:
        billId:
          type: string
          description: Unique bill identifier.
        billNumber:
          type: string
        billType:
          type: string
          enum:
            - STANDARD
            - QUICK
        billDate:
          type: string
          format: date
        dueDate:
          type: string
          format: date
          nullable: true
        paidDate:
          type: string
          format: date
          nullable: true
        billStatus:
          type: string
          enum:
            - OPEN
            - PARTIALLY_PAID
            - PAID
        totalAmountInCents:
          type: integer
        amountPaidInCents:
          type: integer
          nullable: true
    Project:
      type: object
      required:
        - projectId
        - projectName
        - lotType
        - projectStatus
      properties:
        projectId:
          type: string
        projectName:
          type: string
        lotType:
          type: string
          enum:
            - BOYL
            - BOOL
        projectStatus:
          type: string
    LineItem:
      type: object
      required:
        - lineId
        - amountInCents
        - costCodeId
        - costCodeNumber
        - costClassification
      properties:
        lineId:
          type: string
        amountInCents:
          type: integer
        costCodeId:
          type: string
        costCodeNumber:
          type: string
        costClassification:
          type: string
        memo:
          type: string
          nullable: true
    Approval:
      type: object
      required:
        - approvalStatus
      properties:
        approvalStatus:
          type: string
          enum:
            - APPROVED
            - REVERSED
        approvedAt:
          type: string
          format: date-time
          nullable: true
        approvedBy:
          type: string
          nullable: true
    Metadata:
      type: object
      required:
        - idempotencyKey
        - correlationId
        - eventTimeStamp
        - schemaVersion
      properties:
        idempotencyKey:
          type: string
        correlationId:
          type: string
        eventTimeStamp:
          type: string
          format: date-time
        schemaVersion:
          type: string
`

// BillEventDocument wraps the fixture in an openapi.Document.
func BillEventDocument() pkgopenapi.Document {
	return pkgopenapi.MustNewDocument(
		pkgopenapi.SourceFromFS("fixtures/bill-event.yaml"),
		[]byte(BillEventYAML),
	)
}

// LoadDocumentFromPath returns a Document for an on-disk fixture.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}
