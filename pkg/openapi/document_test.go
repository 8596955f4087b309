package openapi

import (
	"bytes"
	"testing"
)

func TestNewDocumentValidatesInputs(t *testing.T) {
	if _, err := NewDocument(nil, []byte("openapi: 3.0.3")); err == nil {
		t.Error("expected an error for a nil source")
	}
	if _, err := NewDocument(SourceFromFile("spec.yaml"), nil); err == nil {
		t.Error("expected an error for an empty payload")
	}
}

func TestDocumentRawIsDefensive(t *testing.T) {
	payload := []byte("openapi: 3.0.3")
	doc := MustNewDocument(SourceFromFile("spec.yaml"), payload)

	payload[0] = 'x'
	if !bytes.Equal(doc.Raw(), []byte("openapi: 3.0.3")) {
		t.Error("document should copy the payload at construction")
	}

	raw := doc.Raw()
	raw[0] = 'x'
	if !bytes.Equal(doc.Raw(), []byte("openapi: 3.0.3")) {
		t.Error("Raw should return a copy")
	}
}

func TestSourceKinds(t *testing.T) {
	if kind := SourceFromFile("a.yaml").Kind(); kind != SourceKindFile {
		t.Errorf("kind = %q, want %q", kind, SourceKindFile)
	}
	if kind := SourceFromFS("a.yaml").Kind(); kind != SourceKindFS {
		t.Errorf("kind = %q, want %q", kind, SourceKindFS)
	}
	if kind := SourceFromURL("https://example.com/a.yaml").Kind(); kind != SourceKindURL {
		t.Errorf("kind = %q, want %q", kind, SourceKindURL)
	}
}

func TestSourceFromURLPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an invalid URL")
		}
	}()
	SourceFromURL("://not-a-url")
}
