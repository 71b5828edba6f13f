// Package storage persists uploaded page images behind a small
// backend-agnostic interface.
package storage

import (
	"context"
	"time"
)

// Store saves image blobs and hands back stable references. URL turns a
// reference into something a browser can fetch.
type Store interface {
	// Save writes data under a name derived from filename and returns
	// the storage reference.
	Save(ctx context.Context, filename string, data []byte) (string, error)
	// Delete removes a stored blob. Deleting a missing reference is not
	// an error.
	Delete(ctx context.Context, ref string) error
	// URL returns the public URL for a reference.
	URL(ref string) string
	// List returns all stored references.
	List(ctx context.Context) ([]string, error)
	// ModTime returns when a stored blob was last written.
	ModTime(ctx context.Context, ref string) (time.Time, error)
}
