package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes blobs under a root directory and serves them from a
// static URL prefix.
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStorage) Save(filename string, r io.Reader) (string, error) {
	// Keep uploads flat; strip any path component from the caller's name.
	filename = filepath.Base(filename)
	path := filepath.Join(s.root, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return s.baseURL + "/" + filename, nil
}

func (s *LocalStorage) Remove(url string) error {
	name := filepath.Base(url)
	if name == "" || name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
