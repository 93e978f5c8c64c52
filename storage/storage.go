package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a stored object reference does not resolve.
var ErrNotFound = errors.New("stored file not found")

// Storage persists uploaded binaries by reference path. The rest of the
// application only ever stores and compares these references; file bytes stay
// behind this interface.
type Storage interface {
	// Save writes the object under path and returns a publicly resolvable URL.
	Save(ctx context.Context, path string, contentType string, body io.Reader) (url string, err error)
	// Delete removes the object at path. Returns ErrNotFound when absent.
	Delete(ctx context.Context, path string) error
	// URL resolves a stored path to its public URL.
	URL(path string) string
}
