package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskStore implements ports.FileStore on a local directory. Files live at
// <root>/<category>/<name> and are served under <urlPrefix>/<category>/<name>.
type DiskStore struct {
	root      string
	urlPrefix string
}

func NewDiskStore(root, urlPrefix string) *DiskStore {
	return &DiskStore{root: root, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

// Root returns the directory files are written under.
func (s *DiskStore) Root() string {
	return s.root
}

// Save writes r to a temporary file and links it into place, so a failed
// write never leaves a partial file under its final name and an existing
// file is never replaced. Category directories are created on first use.
func (s *DiskStore) Save(ctx context.Context, category, name string, r io.Reader) (int64, error) {
	target, err := s.path(category, name)
	if err != nil {
		return 0, err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, &ctxReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return 0, fmt.Errorf("write upload: %w", err)
	}

	if err := os.Link(tmp.Name(), target); err != nil {
		return 0, fmt.Errorf("move upload into place: %w", err)
	}
	return n, nil
}

// Remove deletes a stored file. Removing a missing file is not an error.
func (s *DiskStore) Remove(category, name string) error {
	target, err := s.path(category, name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func (s *DiskStore) URL(category, name string) string {
	return path.Join(s.urlPrefix, category, name)
}

// path resolves category/name under the root and refuses anything that
// would escape it.
func (s *DiskStore) path(category, name string) (string, error) {
	if category == "" || name == "" ||
		strings.ContainsAny(category, `/\`) || strings.ContainsAny(name, `/\`) ||
		category == ".." || name == ".." || category == "." || name == "." {
		return "", fmt.Errorf("invalid upload path %q/%q", category, name)
	}
	return filepath.Join(s.root, category, name), nil
}

// ctxReader stops a copy once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
