// Package storage is the file-storage collaborator: it persists uploaded
// car images under a public directory and hands back the URL to serve them.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type FileStore struct {
	dir     string
	baseURL string
}

func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Save writes the uploaded content to disk under a unique name and returns
// the public URL. The original name only contributes its extension, so
// repeated uploads never clobber each other.
func (s *FileStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		return "", errors.New("file has no extension")
	}
	name := uuid.New().String() + ext

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

// Dir exposes the storage directory so the server can mount it as static.
func (s *FileStore) Dir() string {
	return s.dir
}
