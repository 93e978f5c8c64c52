package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local stores files on the local filesystem under a public root directory,
// served by the HTTP layer under baseURL.
type Local struct {
	root    string
	baseURL string
}

func NewLocal(root, baseURL string) *Local {
	return &Local{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (l *Local) Save(ctx context.Context, path string, contentType string, body io.Reader) (string, error) {
	full, err := l.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create storage directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}

	return l.URL(path), nil
}

func (l *Local) Delete(ctx context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(full); os.IsNotExist(err) {
		return ErrNotFound
	}

	if err := os.Remove(full); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func (l *Local) URL(path string) string {
	return l.baseURL + "/" + strings.TrimPrefix(path, "/")
}

// resolve joins path under the root and rejects traversal outside it.
func (l *Local) resolve(path string) (string, error) {
	full := filepath.Join(l.root, filepath.FromSlash(path))
	rootAbs, err := filepath.Abs(l.root)
	if err != nil {
		return "", err
	}
	fullAbs, err := filepath.Abs(full)
	if err != nil {
		return "", err
	}
	if fullAbs != rootAbs && !strings.HasPrefix(fullAbs, rootAbs+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}
	return fullAbs, nil
}
