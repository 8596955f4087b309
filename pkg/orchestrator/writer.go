package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists one artifact at a path, creating parent directories.
type Writer interface {
	Write(path string, content []byte) error
}

// FileWriter writes artifacts to the local filesystem. Each file lands via a
// temp file plus rename so readers never observe a partial artifact.
type FileWriter struct {
	dirMode  os.FileMode
	fileMode os.FileMode
}

var _ Writer = (*FileWriter)(nil)

// NewFileWriter constructs a writer with the default 0o755/0o644 modes.
func NewFileWriter() *FileWriter {
	return &FileWriter{
		dirMode:  0o755,
		fileMode: 0o644,
	}
}

// Write creates the parent directory, stages the content in a temp file, and
// renames it into place.
func (w *FileWriter) Write(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, w.dirMode); err != nil {
		return fmt.Errorf("orchestrator: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, w.fileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: stage %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("orchestrator: write %s: %w", path, err)
	}
	return nil
}
