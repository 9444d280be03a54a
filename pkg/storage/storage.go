// Package storage implements object storage for uploaded post images on the
// local file system. Objects are served back under BaseURL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores objects below a root directory.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the root directory if needed.
func NewLocal(root, baseURL string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	return &Local{root: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the absolute directory objects are written to.
func (l *Local) Root() string { return l.root }

// safePath rejects keys that escape the root (directory traversal).
func (l *Local) safePath(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if key == "" || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: invalid key %q", key)
	}
	abs := filepath.Join(l.root, cleaned)
	if !strings.HasPrefix(abs, l.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("storage: key escapes root: %s", key)
	}
	return abs, nil
}

// Upload writes r to key via a temp file + rename and returns the public URL.
func (l *Local) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := l.safePath(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("storage: temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("storage: rename: %w", err)
	}
	return l.baseURL + "/" + filepath.ToSlash(filepath.Clean(key)), nil
}

// Delete removes key. A missing object is not an error.
func (l *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := l.safePath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: delete: %w", err)
	}
	return nil
}
