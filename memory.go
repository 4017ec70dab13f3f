package salstore

import (
	"context"
	"sync"
)

// Memory implements ItemStore with thread-safe in-memory storage.
// It is the stand-in for a browser's local storage outside the browser.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	disabled bool
}

// NewMemory creates an empty, available in-memory ItemStore.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Available reports false after SetAvailable(false).
func (m *Memory) Available() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.disabled
}

// SetAvailable simulates the storage being enabled or disabled.
func (m *Memory) SetAvailable(available bool) {
	m.mu.Lock()
	m.disabled = !available
	m.mu.Unlock()
}

func (m *Memory) GetItem(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	v, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrItemNotFound
	}
	return clone(v), nil
}

func (m *Memory) SetItem(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = clone(value)
	return nil
}

func clone(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
