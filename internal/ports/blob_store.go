package ports

import (
	"context"
	"errors"
	"io"
)

var ErrBlobNotFound = errors.New("blob not found")

// Blob is an object read from storage. The caller must close Body.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	ETag          string
}

// Contract for binary asset storage (gallery images).
type BlobStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Return ErrBlobNotFound when key does not exist.
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}
