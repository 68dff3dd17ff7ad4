package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions lists the proof document types accepted for upload.
// Only the filename extension is checked; file contents are never
// inspected.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ErrDisallowedExtension is returned when an upload has an unsupported
// file extension.
var ErrDisallowedExtension = fmt.Errorf("file extension not allowed")

// LocalStore stores uploaded proof documents on the local filesystem.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a store rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Allowed reports whether the filename has an accepted extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the upload to disk under a unique name and returns the stored
// filename. The stored name keeps the original base name with a short
// random suffix so collisions between identically named uploads cannot
// occur.
func (s *LocalStore) Save(filename string, content io.Reader) (string, error) {
	if !Allowed(filename) {
		return "", ErrDisallowedExtension
	}

	base := sanitizeFilename(filepath.Base(filename))
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	stored := fmt.Sprintf("%s_%s%s", name, uuid.New().String()[:8], ext)

	f, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return stored, nil
}

// Open opens a stored file for reading.
func (s *LocalStore) Open(stored string) (io.ReadCloser, error) {
	// Reject any path that escapes the upload directory.
	if stored != filepath.Base(stored) {
		return nil, fmt.Errorf("invalid stored filename")
	}
	return os.Open(filepath.Join(s.dir, stored))
}

// Remove deletes a stored file. A missing file is not an error; the record
// it belonged to is already gone.
func (s *LocalStore) Remove(stored string) error {
	if stored == "" || stored != filepath.Base(stored) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, stored))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the absolute path of a stored file.
func (s *LocalStore) Path(stored string) string {
	return filepath.Join(s.dir, stored)
}

// sanitizeFilename strips path separators and characters that are unsafe in
// a filename.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
