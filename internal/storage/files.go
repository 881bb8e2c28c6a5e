package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// FileStore caches uploaded document files on disk under a single
// directory. Filenames are flattened to their basename so uploads can
// never escape the directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

// Exists reports whether a file with this name is already cached.
func (s *FileStore) Exists(filename string) bool {
	_, err := os.Stat(s.path(filename))
	return err == nil
}

// Save writes the file contents, replacing any previous version.
func (s *FileStore) Save(filename string, data []byte) error {
	if err := os.WriteFile(s.path(filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// Read returns the cached contents of a file.
// Returns ErrNotFound if the file is not cached.
func (s *FileStore) Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.path(filename))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// List returns the names of all cached files, sorted.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a cached file. Deleting a missing file is not an error.
func (s *FileStore) Delete(filename string) error {
	err := os.Remove(s.path(filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// DeleteAll removes every cached file, keeping the directory itself.
func (s *FileStore) DeleteAll() error {
	names, err := s.List()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.Delete(name); err != nil {
			return err
		}
	}
	return nil
}
