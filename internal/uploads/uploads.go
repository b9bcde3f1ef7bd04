// Package uploads owns the image upload directory: naming, placement
// and removal of files referenced by posts and product images.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"storefront/internal/apperr"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Path returns the on-disk location of a stored filename.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// Ext validates the upload's extension and returns it lowercased.
func Ext(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return ext, nil
	}
	return "", apperr.Validationf("unsupported image format")
}

// SaveTimestamped stores the upload under a timestamp-derived name
// and returns that name.
func (s *Store) SaveTimestamped(fh *multipart.FileHeader) (string, error) {
	ext, err := Ext(fh)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	if err := s.SaveAs(fh, name); err != nil {
		return "", err
	}
	return name, nil
}

// SaveAs stores the upload under the given name.
func (s *Store) SaveAs(fh *multipart.FileHeader, name string) error {
	src, err := fh.Open()
	if err != nil {
		return apperr.Wrap(err, "could not read upload")
	}
	defer src.Close()

	dst, err := os.Create(s.Path(name))
	if err != nil {
		return apperr.Wrap(err, "could not store upload")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return apperr.Wrap(err, "could not store upload")
	}
	return nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error: a delete interrupted after the file step must be retryable.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(err, "could not remove file")
	}
	return nil
}

// Exists reports whether a stored filename is present on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}
