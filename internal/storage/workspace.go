package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the scoped scratch directory one conversion run owns. A run
// acquires it before extraction and must release it on every exit path; a
// second run reuses the same named location, clearing prior contents first.
type Workspace struct {
	path string
}

func NewWorkspace(path string) *Workspace {
	if path == "" {
		path = filepath.Join(os.TempDir(), "schoology-convert")
	}
	return &Workspace{path: path}
}

func (w *Workspace) Path() string { return w.path }

// Acquire clears any leftover contents and recreates the directory.
func (w *Workspace) Acquire() error {
	if err := os.RemoveAll(w.path); err != nil {
		return fmt.Errorf("clear workspace: %w", err)
	}
	if err := os.MkdirAll(w.path, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}

// Release removes the workspace directory and everything under it.
func (w *Workspace) Release() error {
	return os.RemoveAll(w.path)
}

// PersistBlob writes the blob under the workspace and returns its path.
// The extractor uses this for its one bounded decompress-from-disk retry.
func (w *Workspace) PersistBlob(name string, b []byte) (string, error) {
	dst := filepath.Join(w.path, filepath.Clean(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}
