package salstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// mockImpl records every call and lets tests override behavior per call.
type mockImpl struct {
	name string

	mu        sync.Mutex
	calls     map[string]int
	flushed   []Snapshot
	domSaved  []DOMSnapshot
	available bool

	loadFunc        func(ctx context.Context) (Snapshot, error)
	flushFunc       func(ctx context.Context, s Snapshot) error
	loadDOMDataFunc func(ctx context.Context) (DOMSnapshot, error)
}

func newMockImpl(name string) *mockImpl {
	return &mockImpl{name: name, calls: map[string]int{}, available: true}
}

func (m *mockImpl) record(op string) {
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
}

func (m *mockImpl) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *mockImpl) Name() string { return m.name }

func (m *mockImpl) IsAvailable() bool {
	m.record("IsAvailable")
	return m.available
}

func (m *mockImpl) Flush(ctx context.Context, s Snapshot) error {
	m.record("Flush")
	m.mu.Lock()
	m.flushed = append(m.flushed, s)
	m.mu.Unlock()
	if m.flushFunc != nil {
		return m.flushFunc(ctx, s)
	}
	return nil
}

func (m *mockImpl) Load(ctx context.Context) (Snapshot, error) {
	m.record("Load")
	if m.loadFunc != nil {
		return m.loadFunc(ctx)
	}
	return Snapshot{}, nil
}

func (m *mockImpl) LoadDOMData(ctx context.Context) (DOMSnapshot, error) {
	m.record("LoadDOMData")
	if m.loadDOMDataFunc != nil {
		return m.loadDOMDataFunc(ctx)
	}
	return DOMSnapshot{}, nil
}

func (m *mockImpl) SaveDOMData(ctx context.Context, s DOMSnapshot) error {
	m.record("SaveDOMData")
	m.mu.Lock()
	m.domSaved = append(m.domSaved, s)
	m.mu.Unlock()
	return nil
}

func (m *mockImpl) lastFlushed() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.flushed) == 0 {
		return nil
	}
	return m.flushed[len(m.flushed)-1]
}

// mockLogger captures log messages for testing
type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockLogger) add(level, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, level+": "+fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(ctx context.Context, format string, args ...interface{}) {
	m.add("INFO", format, args...)
}

func (m *mockLogger) Warn(ctx context.Context, format string, args ...interface{}) {
	m.add("WARN", format, args...)
}

func (m *mockLogger) Error(ctx context.Context, format string, args ...interface{}) {
	m.add("ERROR", format, args...)
}

func (m *mockLogger) Debug(ctx context.Context, format string, args ...interface{}) {
	m.add("DEBUG", format, args...)
}

func (m *mockLogger) contains(substring string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if strings.Contains(msg, substring) {
			return true
		}
	}
	return false
}

// newActiveStore registers impl in a fresh registry, activates it and returns a store over it.
func newActiveStore(impl Implementation, opts ...Option[string]) *Store[string] {
	reg := NewRegistry()
	reg.MustAdd(impl)
	if err := reg.SetActive(impl.Name()); err != nil {
		panic(err)
	}
	return New[string](append([]Option[string]{WithRegistry[string](reg)}, opts...)...)
}
