package usecases

import (
	"context"
	"io"
)

// FileStore persists attachment blobs by stored filename.
type FileStore interface {
	// Save never overwrites; a taken name fails with an error wrapping
	// fs.ErrExist before r is read.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// DetectContentType sniffs the stored file's signature.
	DetectContentType(ctx context.Context, name string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove deletes the file; a missing file is not an error.
	Remove(ctx context.Context, name string) error
}

// Sanitizer cleans user-supplied HTML.
type Sanitizer interface {
	Sanitize(html string) string
}

// UploadedFile is an attachment received with a request.
type UploadedFile struct {
	Name    string
	Size    int64
	Content io.Reader
}
