package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
)

const fileSuffix = ".json"

// LocalStorage implements ports.LocalStorage with one file per namespace.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates a LocalStorage rooted at dir. The directory is
// created on first write.
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

// Get reads the value stored under namespace.
// Returns nil, false and a nil error if no file exists.
func (s *LocalStorage) Get(ctx context.Context, namespace string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(namespace))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes value atomically (temp file, then rename).
func (s *LocalStorage) Set(ctx context.Context, namespace string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}

	path := s.Path(namespace)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Remove deletes the file for namespace.
func (s *LocalStorage) Remove(ctx context.Context, namespace string) error {
	err := os.Remove(s.Path(namespace))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Dir returns the directory values are stored in.
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Path returns the file that holds namespace.
func (s *LocalStorage) Path(namespace string) string {
	return filepath.Join(s.dir, url.PathEscape(namespace)+fileSuffix)
}
