// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO,
// Cloudflare R2, AWS S3).
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// ObjectInfo describes a stored object without its content.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is the interface for reading and writing blobs by key.
type Storage interface {
	// Upload streams data to the store under the given key. size must be the
	// exact byte count.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key. Deleting an absent key is
	// not an error; callers that need existence semantics Stat first.
	Delete(ctx context.Context, key string) error
	// Stat returns metadata for an object, or ErrNotFound.
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	// Get opens an object for reading along with its metadata, or ErrNotFound.
	// The caller owns the returned reader and must close it.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// List returns metadata for every object whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
