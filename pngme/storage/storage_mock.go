package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MockStorage is a simple in-memory ImageStore implementation for tests.
type MockStorage struct {
	mu     sync.RWMutex
	images map[string][]byte
	writes int
}

// NewMockStorage constructs an empty MockStorage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		images: make(map[string][]byte),
	}
}

// ReadImage returns a copy of the named image.
func (m *MockStorage) ReadImage(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.images[name]
	if !ok {
		return nil, fmt.Errorf("mock storage: %s: %w", name, ErrImageNotFound)
	}
	return append([]byte(nil), data...), nil
}

// WriteImage stores a copy of data under name.
func (m *MockStorage) WriteImage(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.images[name] = append([]byte(nil), data...)
	m.writes++
	return nil
}

// AddImage seeds the mock storage without counting as a write.
func (m *MockStorage) AddImage(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.images[name] = append([]byte(nil), data...)
}

// Names returns the stored image names in sorted order.
func (m *MockStorage) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.images))
	for name := range m.images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Writes returns how many times WriteImage succeeded.
func (m *MockStorage) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.writes
}
