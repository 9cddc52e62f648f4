package ports

import (
	"context"
	"io"
)

// ObjectStorage abstracts the object store (MinIO).
type ObjectStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadInput is a single file to store.
type UploadInput struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// UploadService validates and stores user-supplied images.
type UploadService interface {
	UploadSingle(ctx context.Context, input UploadInput) (string, error)
	UploadMultiple(ctx context.Context, inputs []UploadInput) ([]string, error)
}
