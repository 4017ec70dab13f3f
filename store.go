package salstore

import (
	"context"
	"sort"
	"sync"
)

// Option customizes Store behavior.
type Option[TKey ~string] func(*Store[TKey])

// WithRegistry specifies the registry the store delegates to.
// If not provided, NewRegistry() is used.
func WithRegistry[TKey ~string](r *Registry) Option[TKey] {
	return func(s *Store[TKey]) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithAutoFlush enables flushing after every successful Set or SetNX.
func WithAutoFlush[TKey ~string](enabled bool) Option[TKey] {
	return func(s *Store[TKey]) {
		s.autoFlush = enabled
	}
}

// WithLogger specifies a logger for operation logging.
// If not provided, a no-op logger is used (no logging).
func WithLogger[TKey ~string](logger Logger) Option[TKey] {
	return func(s *Store[TKey]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLogTag sets a tag prefix for all log messages.
func WithLogTag[TKey ~string](tag string) Option[TKey] {
	return func(s *Store[TKey]) {
		s.logTag = tag
	}
}

// Store is a key/value facade over the active implementation of a Registry.
// Contents live in memory and reach the backend only through Flush
// (explicitly, via auto-flush, or via Clear(ctx, true)).
type Store[TKey ~string] struct {
	registry *Registry
	logger   Logger
	logTag   string

	mu        sync.Mutex
	data      Snapshot
	autoFlush bool
}

// New creates an empty Store. Call Load to read persisted contents.
func New[TKey ~string](opts ...Option[TKey]) *Store[TKey] {
	s := &Store[TKey]{
		registry: NewRegistry(),
		logger:   defaultLogger,
		data:     Snapshot{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store[TKey]) logf(level string, ctx context.Context, format string, args ...interface{}) {
	Logf(s.logger, s.logTag, level, ctx, format, args...)
}

// Registry returns the registry the store delegates to.
func (s *Store[TKey]) Registry() *Registry { return s.registry }

// Implementation returns the currently active implementation.
func (s *Store[TKey]) Implementation() Implementation { return s.registry.Current() }

// Available reports whether the active implementation is available.
func (s *Store[TKey]) Available() bool { return s.registry.Current().IsAvailable() }

// AutoFlush reports whether auto-flush is enabled.
func (s *Store[TKey]) AutoFlush() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoFlush
}

// SetAutoFlush toggles auto-flush.
func (s *Store[TKey]) SetAutoFlush(enabled bool) {
	s.mu.Lock()
	s.autoFlush = enabled
	s.mu.Unlock()
}

// Load replaces the in-memory contents with what the active implementation returns.
// Nothing is merged with the previous contents.
func (s *Store[TKey]) Load(ctx context.Context) error {
	impl := s.registry.Current()
	data, err := impl.Load(ctx)
	if err != nil {
		s.logf("error", ctx, "Load via %s failed: %v", impl.Name(), err)
		return err
	}
	if data == nil {
		data = Snapshot{}
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.logf("debug", ctx, "Load via %s: %d keys", impl.Name(), len(data))
	return nil
}

// Flush hands the whole in-memory contents to the active implementation.
func (s *Store[TKey]) Flush(ctx context.Context) error {
	impl := s.registry.Current()
	snap := s.Snapshot()
	if err := impl.Flush(ctx, snap); err != nil {
		s.logf("error", ctx, "Flush via %s failed: %v", impl.Name(), err)
		return err
	}
	return nil
}

// Snapshot returns a copy of the in-memory contents.
func (s *Store[TKey]) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSnapshot(s.data)
}

// Keys returns the stored keys in sorted order.
func (s *Store[TKey]) Keys() []TKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]TKey, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, TKey(k))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Lookup returns the value stored under key and whether it was present.
func (s *Store[TKey]) Lookup(key TKey) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[string(key)]
	return v, ok
}

// Get returns the value stored under key, or nil.
func (s *Store[TKey]) Get(key TKey) any {
	v, _ := s.Lookup(key)
	return v
}

// GetOr returns the value stored under key, or def when key is absent.
// A present key is returned as-is even when its value is nil.
func (s *Store[TKey]) GetOr(key TKey, def any) any {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Set stores value under key, overwriting any previous value.
// The returned error can only come from auto-flush.
func (s *Store[TKey]) Set(ctx context.Context, key TKey, value any) error {
	_, err := s.set(ctx, key, value, true)
	return err
}

// SetNX stores value only if key is absent. It reports whether value was stored.
func (s *Store[TKey]) SetNX(ctx context.Context, key TKey, value any) (bool, error) {
	return s.set(ctx, key, value, false)
}

func (s *Store[TKey]) set(ctx context.Context, key TKey, value any, allowOverwrite bool) (bool, error) {
	s.mu.Lock()
	if _, ok := s.data[string(key)]; ok && !allowOverwrite {
		s.mu.Unlock()
		return false, nil
	}
	s.data[string(key)] = value
	flush := s.autoFlush
	s.mu.Unlock()

	if flush {
		if err := s.Flush(ctx); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Delete removes key and reports whether it was present.
func (s *Store[TKey]) Delete(key TKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[string(key)]; !ok {
		return false
	}
	delete(s.data, string(key))
	return true
}

// Contains reports whether key is present.
func (s *Store[TKey]) Contains(key TKey) bool {
	_, ok := s.Lookup(key)
	return ok
}

// Clear empties the in-memory contents and, if flush is set, persists the empty state.
func (s *Store[TKey]) Clear(ctx context.Context, flush bool) error {
	s.mu.Lock()
	s.data = Snapshot{}
	s.mu.Unlock()
	if flush {
		return s.Flush(ctx)
	}
	return nil
}

// cloneSnapshot copies the map and any nested maps or slices, so the caller
// cannot mutate the store through the result.
func cloneSnapshot(src Snapshot) Snapshot {
	dst := make(Snapshot, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case Snapshot:
		return cloneSnapshot(t)
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
