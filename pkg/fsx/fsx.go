package fsx

import (
	"context"
	"io"
)

// FileReader reads stored files.
type FileReader interface {
	// ReadFile returns the full content of the file at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileStream returns a reader for the file at path. The caller is
	// responsible for closing it.
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileSystem abstracts the blob store holding uploaded files.
type FileSystem interface {
	FileReader

	// WriteFile stores data at path, overwriting any existing object.
	WriteFile(ctx context.Context, path string, data []byte) error

	// DeleteFile removes the object at path.
	DeleteFile(ctx context.Context, path string) error

	// Join builds a storage path from segments.
	Join(parts ...string) string
}
