package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	schemaerrors "github.com/goliatone/go-schemagen/pkg/errors"
	pkgopenapi "github.com/goliatone/go-schemagen/pkg/openapi"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
)

func fixtureDocument(t *testing.T) *pkgopenapi.Document {
	t.Helper()
	doc := testsupport.BillEventDocument()
	return &doc
}

func TestGenerateWritesAllTargets(t *testing.T) {
	outputDir := t.TempDir()

	result, err := New().Generate(context.Background(), Request{
		Document:  fixtureDocument(t),
		OutputDir: outputDir,
		EventBus:  true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if result.Root.SchemaName != "BillEvent" {
		t.Errorf("root schema = %q, want BillEvent", result.Root.SchemaName)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}

	expected := []string{
		filepath.Join("typescript", "models.ts"),
		filepath.Join("typescript", "validator.ts"),
		filepath.Join("typescript", "marshaller.ts"),
		filepath.Join("typescript", "unmarshaller.ts"),
		filepath.Join("typescript", "common.ts"),
		filepath.Join("typescript", "publisher.ts"),
		filepath.Join("typescript", "consumer.ts"),
		filepath.Join("python", "models.py"),
		filepath.Join("python", "validator.py"),
		filepath.Join("python", "marshaller.py"),
		filepath.Join("python", "common.py"),
		filepath.Join("python", "publisher.py"),
		filepath.Join("python", "consumer.py"),
	}
	for _, rel := range expected {
		path := filepath.Join(outputDir, rel)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing artifact %s: %v", rel, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", rel)
		}
	}
	if len(result.Written) != len(expected) {
		t.Errorf("written = %d paths, want %d", len(result.Written), len(expected))
	}
}

func TestGenerateSingleTarget(t *testing.T) {
	outputDir := t.TempDir()

	result, err := New().Generate(context.Background(), Request{
		Document:  fixtureDocument(t),
		OutputDir: outputDir,
		Targets:   []string{"python"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, path := range result.Written {
		if filepath.Base(filepath.Dir(path)) != "python" {
			t.Errorf("unexpected artifact outside the python target: %s", path)
		}
	}
	if _, err := os.Stat(filepath.Join(outputDir, "typescript")); !os.IsNotExist(err) {
		t.Error("typescript directory should not exist for a python-only run")
	}
}

func TestGenerateUnknownTargetIsolated(t *testing.T) {
	outputDir := t.TempDir()

	result, err := New().Generate(context.Background(), Request{
		Document:  fixtureDocument(t),
		OutputDir: outputDir,
		Targets:   []string{"rust", "typescript"},
	})
	if err == nil {
		t.Fatal("expected an error for the unknown target")
	}
	if code := schemaerrors.CodeOf(err); code != schemaerrors.CodeGenerationFailed {
		t.Errorf("code = %q, want %q", code, schemaerrors.CodeGenerationFailed)
	}

	// The healthy target still completes.
	if _, statErr := os.Stat(filepath.Join(outputDir, "typescript", "models.ts")); statErr != nil {
		t.Errorf("typescript artifacts should still be written: %v", statErr)
	}
	if len(result.Written) == 0 {
		t.Error("result should report the paths the healthy target wrote")
	}
}

func TestGenerateSchemaErrorWritesNothing(t *testing.T) {
	outputDir := t.TempDir()

	raw := `openapi: 3.0.3
info:
  title: Broken
  version: 1.0.0
paths: {}
components:
  schemas:
    Loop:
      type: object
      properties:
        next:
          $ref: '#/components/schemas/Other'
      required: [next]
    Other:
      type: object
      properties:
        back:
          $ref: '#/components/schemas/Loop'
      required: [back]
`
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("broken.yaml"), []byte(raw))

	_, err := New().Generate(context.Background(), Request{
		Document:  &doc,
		OutputDir: outputDir,
	})
	if err == nil {
		t.Fatal("expected a dependency cycle error")
	}
	if code := schemaerrors.CodeOf(err); code != schemaerrors.CodeDependencyCycle {
		t.Errorf("code = %q, want %q", code, schemaerrors.CodeDependencyCycle)
	}

	entries, readErr := os.ReadDir(outputDir)
	if readErr != nil {
		t.Fatalf("read output dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("output dir should stay empty on a schema error, found %d entries", len(entries))
	}
}

func TestGenerateRequiresSourceOrDocument(t *testing.T) {
	_, err := New().Generate(context.Background(), Request{OutputDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected an error without a source or document")
	}
}

type failingWriter struct{}

func (failingWriter) Write(string, []byte) error {
	return errors.New("disk full")
}

func TestGenerateWriteFailureCode(t *testing.T) {
	_, err := New(WithWriter(failingWriter{})).Generate(context.Background(), Request{
		Document:  fixtureDocument(t),
		OutputDir: t.TempDir(),
		Targets:   []string{"typescript"},
	})
	if err == nil {
		t.Fatal("expected a write failure")
	}
	if !schemaerrors.IsWrite(err) {
		t.Errorf("error should carry the file-write code, got %v", err)
	}
}
