// Package photostore holds uploaded image payloads outside the database.
// Rows reference a payload by its storage key.
package photostore

import (
	"context"
	"io"
)

type PhotoStore interface {
	// Save stores r under a fresh key grouped by kind ("catch", "scenery",
	// "location") and returns the key.
	Save(ctx context.Context, kind, mimeType string, r io.Reader) (storageKey string, err error)
	// Get opens the payload. A missing key yields a domain.ErrNotFound error.
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	// Delete removes the payload. Deleting a missing key is not an error.
	Delete(ctx context.Context, storageKey string) error
}
