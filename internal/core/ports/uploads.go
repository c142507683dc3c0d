package ports

import (
	"context"
	"io"

	"github.com/matchday/club-api/internal/core/domain"
)

// UploadPart is one file part of a multipart request.
type UploadPart struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FileStore persists attachment bytes under a category.
type FileStore interface {
	// Save writes r to category/name, creating the category lazily, and
	// returns the number of bytes written. It never replaces an existing
	// file: a taken name fails with an error matching fs.ErrExist.
	Save(ctx context.Context, category, name string, r io.Reader) (int64, error)
	Remove(category, name string) error
	// URL returns the public reference for a stored file.
	URL(category, name string) string
}

// Uploader validates and persists the parts of one request.
type Uploader interface {
	Store(ctx context.Context, category string, parts []UploadPart) ([]domain.StoredFile, error)
}
