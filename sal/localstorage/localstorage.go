//go:build js && wasm

// Package localstorage provides a salstore.ItemStore backed by the browser's
// window.localStorage.
package localstorage

import (
	"context"
	"syscall/js"

	"github.com/khicago/salstore"
)

// Name is the name Register uses.
const Name = "browser"

// Store implements salstore.ItemStore over window.localStorage.
type Store struct{}

// New returns a Store. Availability is checked on each call.
func New() *Store { return &Store{} }

func (*Store) kv() (v js.Value, ok bool) {
	defer func() {
		// Reading localStorage throws when storage is disabled.
		if recover() != nil {
			ok = false
		}
	}()
	v = js.Global().Get("localStorage")
	return v, !v.IsUndefined() && !v.IsNull()
}

// Available reports whether window.localStorage is present and readable.
func (s *Store) Available() bool {
	_, ok := s.kv()
	return ok
}

func (s *Store) GetItem(ctx context.Context, key string) ([]byte, error) {
	kv, ok := s.kv()
	if !ok {
		return nil, salstore.ErrItemNotFound
	}
	value := kv.Call("getItem", key)
	if value.IsNull() {
		return nil, salstore.ErrItemNotFound
	}
	return []byte(value.String()), nil
}

func (s *Store) SetItem(ctx context.Context, key string, value []byte) error {
	kv, ok := s.kv()
	if !ok {
		return nil
	}
	kv.Call("setItem", key, string(value))
	return nil
}

// Register adds the "browser" implementation to reg and activates it.
func Register(reg *salstore.Registry) error {
	if err := reg.Add(salstore.NewJSON(Name, New())); err != nil {
		return err
	}
	return reg.SetActive(Name)
}
