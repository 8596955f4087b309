package loader

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	generr "github.com/goliatone/go-schemagen/pkg/errors"
)

// loadFile reads a document from the operating system filesystem. Relative
// paths resolve against the working directory.
func loadFile(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, generr.New(generr.CodeDocumentNotFound,
			"openapi loader: file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: resolve "+path, err)
	}

	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: no document at "+abs, err)
	}
	if err != nil {
		return nil, generr.Wrap(generr.CodeDocumentNotFound,
			"openapi loader: read "+abs, err)
	}
	return data, nil
}
