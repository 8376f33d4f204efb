// Package memory provides a process-local ports.LocalStorage.
package memory

import (
	"context"
	"sync"
)

// LocalStorage keeps values in a map. Nothing survives the process.
type LocalStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewLocalStorage creates an empty LocalStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under namespace.
func (s *LocalStorage) Get(ctx context.Context, namespace string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[namespace]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under namespace.
func (s *LocalStorage) Set(ctx context.Context, namespace string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[namespace] = append([]byte(nil), value...)
	return nil
}

// Remove deletes namespace.
func (s *LocalStorage) Remove(ctx context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, namespace)
	return nil
}
