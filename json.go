package salstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrItemNotFound is returned by an ItemStore for a key it does not hold.
var ErrItemNotFound = errors.New("salstore: item not found")

// Default item keys of the JSON implementation.
const (
	DefaultStorageKey = "chasStorage"
	DefaultDOMDataKey = "chasStorage_domData"
)

// ItemStore is a flat string-keyed byte store, such as a browser's local storage.
// Implementations must be thread-safe.
type ItemStore interface {
	Available() bool
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
}

// JSONOption customizes an implementation built by NewJSON.
type JSONOption func(*jsonImpl)

// WithStorageKey sets the item key holding the key/value snapshot.
func WithStorageKey(key string) JSONOption {
	return func(j *jsonImpl) {
		if key != "" {
			j.storageKey = key
		}
	}
}

// WithDOMDataKey sets the item key holding the DOM snapshot.
func WithDOMDataKey(key string) JSONOption {
	return func(j *jsonImpl) {
		if key != "" {
			j.domDataKey = key
		}
	}
}

type jsonImpl struct {
	name       string
	items      ItemStore
	storageKey string
	domDataKey string
}

// NewJSON returns an implementation that keeps each snapshot as a JSON object
// under its own key of items. A missing or empty item loads as an empty mapping.
// Availability is checked on every call; while items is unavailable, loads
// return empty mappings and writes are skipped.
func NewJSON(name string, items ItemStore, opts ...JSONOption) Implementation {
	j := &jsonImpl{
		name:       name,
		items:      items,
		storageKey: DefaultStorageKey,
		domDataKey: DefaultDOMDataKey,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *jsonImpl) Name() string { return j.name }

func (j *jsonImpl) IsAvailable() bool {
	return j.items != nil && j.items.Available()
}

func (j *jsonImpl) Validate() error {
	if j.items == nil {
		return fmt.Errorf("%w: implementation %q has no item store", ErrValidation, j.name)
	}
	return nil
}

func (j *jsonImpl) Flush(ctx context.Context, snapshot Snapshot) error {
	if snapshot == nil {
		snapshot = Snapshot{}
	}
	return j.write(ctx, j.storageKey, snapshot)
}

func (j *jsonImpl) Load(ctx context.Context) (Snapshot, error) {
	out := Snapshot{}
	if err := j.read(ctx, j.storageKey, &out); err != nil {
		return Snapshot{}, err
	}
	if out == nil {
		out = Snapshot{}
	}
	return out, nil
}

func (j *jsonImpl) LoadDOMData(ctx context.Context) (DOMSnapshot, error) {
	out := DOMSnapshot{}
	if err := j.read(ctx, j.domDataKey, &out); err != nil {
		return DOMSnapshot{}, err
	}
	if out == nil {
		out = DOMSnapshot{}
	}
	return out, nil
}

func (j *jsonImpl) SaveDOMData(ctx context.Context, snapshot DOMSnapshot) error {
	if snapshot == nil {
		snapshot = DOMSnapshot{}
	}
	return j.write(ctx, j.domDataKey, snapshot)
}

func (j *jsonImpl) read(ctx context.Context, key string, dst any) error {
	if !j.IsAvailable() {
		return nil
	}
	raw, err := j.items.GetItem(ctx, key)
	if errors.Is(err, ErrItemNotFound) || (err == nil && len(raw) == 0) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("salstore: read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("salstore: decode %s: %w", key, err)
	}
	return nil
}

func (j *jsonImpl) write(ctx context.Context, key string, v any) error {
	if !j.IsAvailable() {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("salstore: encode %s: %w", key, err)
	}
	if err := j.items.SetItem(ctx, key, raw); err != nil {
		return fmt.Errorf("salstore: write %s: %w", key, err)
	}
	return nil
}
