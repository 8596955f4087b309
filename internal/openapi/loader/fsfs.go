package loader

import (
	"context"
	"errors"
	"io/fs"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
)

// loadFromFS reads a document out of the configured fs.FS, which is how
// embedded fixtures and tests feed the pipeline.
func loadFromFS(ctx context.Context, filesystem fs.FS, name string) ([]byte, error) {
	if filesystem == nil {
		return nil, generr.New(generr.CodeDocumentNotFound,
			"openapi loader: no filesystem configured for fs sources")
	}
	if name == "" {
		return nil, generr.New(generr.CodeDocumentNotFound,
			"openapi loader: fs path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(filesystem, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: no document at "+name, err)
	}
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: read "+name, err)
	}
	return data, nil
}
