// Package objstore keeps binary objects (uploaded papers) outside the
// database.
package objstore

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when the key holds no object.
var ErrNotFound = errors.New("objstore: object not found")

// Store is a flat key/value object store.
type Store interface {
	// Put writes size bytes from body under key, replacing any existing
	// object.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Exists reports whether key holds an object.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// PresignGet returns a URL that downloads key without credentials
	// until ttl passes.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
