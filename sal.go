package salstore

import (
	"context"
	"fmt"
)

// Snapshot is the key/value contents of a store. Values must be JSON-compatible:
// nil, bool, numbers, string, []any or map[string]any.
type Snapshot map[string]any

// DOMRecord is the captured state of a single element. Every field is optional
// and present only if it was selected for capture.
type DOMRecord struct {
	Value       *string `json:"value,omitempty"`
	Checked     *bool   `json:"checked,omitempty"`
	InnerMarkup *string `json:"innerHTML,omitempty"`
	Visible     *bool   `json:"visible,omitempty"`
}

// DOMSnapshot maps element identifiers to their captured state.
type DOMSnapshot map[string]DOMRecord

// Implementation is a pluggable persistence backend (a Storage Abstraction Layer).
// Implementations own no data beyond what is passed to them.
type Implementation interface {
	// Name identifies the implementation inside a Registry.
	Name() string

	// IsAvailable reports whether the backing resource can be used right now.
	IsAvailable() bool

	Flush(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (Snapshot, error)
	LoadDOMData(ctx context.Context) (DOMSnapshot, error)
	SaveDOMData(ctx context.Context, snapshot DOMSnapshot) error
}

// Funcs builds an Implementation out of plain functions.
// Every function field is required; a nil field fails registration with ErrValidation.
type Funcs struct {
	ImplName        string
	IsAvailableFunc func() bool
	FlushFunc       func(ctx context.Context, snapshot Snapshot) error
	LoadFunc        func(ctx context.Context) (Snapshot, error)
	LoadDOMDataFunc func(ctx context.Context) (DOMSnapshot, error)
	SaveDOMDataFunc func(ctx context.Context, snapshot DOMSnapshot) error
}

func (f *Funcs) Name() string      { return f.ImplName }
func (f *Funcs) IsAvailable() bool { return f.IsAvailableFunc() }

func (f *Funcs) Flush(ctx context.Context, snapshot Snapshot) error {
	return f.FlushFunc(ctx, snapshot)
}

func (f *Funcs) Load(ctx context.Context) (Snapshot, error) {
	return f.LoadFunc(ctx)
}

func (f *Funcs) LoadDOMData(ctx context.Context) (DOMSnapshot, error) {
	return f.LoadDOMDataFunc(ctx)
}

func (f *Funcs) SaveDOMData(ctx context.Context, snapshot DOMSnapshot) error {
	return f.SaveDOMDataFunc(ctx, snapshot)
}

// Validate reports the first missing capability.
func (f *Funcs) Validate() error {
	switch {
	case f.IsAvailableFunc == nil:
		return fmt.Errorf("%w: implementation %q has no function IsAvailable", ErrValidation, f.ImplName)
	case f.FlushFunc == nil:
		return fmt.Errorf("%w: implementation %q has no function Flush", ErrValidation, f.ImplName)
	case f.LoadFunc == nil:
		return fmt.Errorf("%w: implementation %q has no function Load", ErrValidation, f.ImplName)
	case f.LoadDOMDataFunc == nil:
		return fmt.Errorf("%w: implementation %q has no function LoadDOMData", ErrValidation, f.ImplName)
	case f.SaveDOMDataFunc == nil:
		return fmt.Errorf("%w: implementation %q has no function SaveDOMData", ErrValidation, f.ImplName)
	}
	return nil
}

// EmptyName is the name of the inert implementation every Registry starts with.
const EmptyName = "empty"

type empty struct{}

// Empty returns the inert implementation: never available, loads return empty
// mappings and writes are discarded.
func Empty() Implementation { return empty{} }

func (empty) Name() string                                     { return EmptyName }
func (empty) IsAvailable() bool                                { return false }
func (empty) Flush(context.Context, Snapshot) error            { return nil }
func (empty) Load(context.Context) (Snapshot, error)           { return Snapshot{}, nil }
func (empty) LoadDOMData(context.Context) (DOMSnapshot, error) { return DOMSnapshot{}, nil }
func (empty) SaveDOMData(context.Context, DOMSnapshot) error   { return nil }
