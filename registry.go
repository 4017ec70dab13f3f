package salstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrValidation    = errors.New("salstore: invalid implementation")
	ErrDuplicateName = errors.New("salstore: duplicate implementation name")
	ErrNotFound      = errors.New("salstore: implementation not found")
)

// Validator is implemented by implementations that can check their own shape
// at registration time.
type Validator interface {
	Validate() error
}

// Registry holds the known implementations and the active one.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	impls   map[string]Implementation
	current Implementation
}

// NewRegistry creates a Registry with the Empty implementation registered and active.
func NewRegistry() *Registry {
	e := Empty()
	return &Registry{
		impls:   map[string]Implementation{e.Name(): e},
		current: e,
	}
}

// Add registers impl. It does not activate it.
func (r *Registry) Add(impl Implementation) error {
	if impl == nil {
		return fmt.Errorf("%w: nil implementation", ErrValidation)
	}
	name := impl.Name()
	if name == "" {
		return fmt.Errorf("%w: implementation has no name", ErrValidation)
	}
	if v, ok := impl.(Validator); ok {
		if err := v.Validate(); err != nil {
			if !errors.Is(err, ErrValidation) {
				err = fmt.Errorf("%w: %v", ErrValidation, err)
			}
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.impls[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	r.impls[name] = impl
	return nil
}

// MustAdd is like Add but panics on error.
func (r *Registry) MustAdd(impl Implementation) {
	if err := r.Add(impl); err != nil {
		panic(err)
	}
}

// SetActive makes the implementation registered under name the current one.
// On failure the current implementation is left unchanged.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	impl, ok := r.impls[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	r.current = impl
	return nil
}

// Current returns the active implementation. It is never nil.
func (r *Registry) Current() Implementation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Lookup returns the implementation registered under name.
func (r *Registry) Lookup(name string) (Implementation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.impls[name]
	return impl, ok
}

// Implementations returns a copy of the registered implementations keyed by name.
func (r *Registry) Implementations() map[string]Implementation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Implementation, len(r.impls))
	for name, impl := range r.impls {
		out[name] = impl
	}
	return out
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.impls))
	for name := range r.impls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
