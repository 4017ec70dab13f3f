// Package salstore provides a key/value store over a pluggable Storage Abstraction Layer (SAL).
//
// # Overview
//
// Call sites talk to a Store; persistence is done by whichever Implementation is
// active in the Store's Registry. Swapping the backend (browser local storage,
// a SQLite file, an in-memory map) never touches call sites.
//
// # Architecture
//
// 1. Implementation: backend interface (Name, IsAvailable, Flush, Load, LoadDOMData, SaveDOMData)
// 2. Registry: named implementations plus the active one; starts with the inert "empty" implementation
// 3. Store[TKey]: in-memory snapshot with Load/Flush/Get/Set/SetNX/Delete/Contains/Clear
//
// DOM element state is handled by the domstate subpackage over the same Registry.
//
// # Quick Start
//
//	reg := salstore.NewRegistry()
//	reg.MustAdd(salstore.NewJSON("memory", salstore.NewMemory()))
//	_ = reg.SetActive("memory")
//
//	store := salstore.New[string](salstore.WithRegistry[string](reg))
//	ctx := context.Background()
//
//	_ = store.Load(ctx)
//	_ = store.Set(ctx, "theme", "dark")
//	_ = store.Flush(ctx)
//
// # Custom Implementations
//
// Implement Implementation directly, or assemble one from functions with Funcs:
//
//	reg.Add(&salstore.Funcs{
//	    ImplName:        "custom",
//	    IsAvailableFunc: func() bool { return true },
//	    // FlushFunc, LoadFunc, LoadDOMDataFunc, SaveDOMDataFunc ...
//	})
//
// Backends that are plain byte stores only need to satisfy ItemStore and can be
// wrapped with NewJSON, which keeps each snapshot as a JSON object under its own key.
//
// # Write-back
//
// Set, SetNX, Delete and Clear only change memory. Flush persists the whole
// snapshot. With auto-flush enabled, every successful Set or SetNX is followed
// by a Flush; Delete and Clear are not.
//
// # Error Handling
//
//	err := reg.SetActive("missing")
//	if errors.Is(err, salstore.ErrNotFound) {
//	    // Handle unknown implementation
//	}
//
// Available errors: ErrValidation, ErrDuplicateName, ErrNotFound, ErrItemNotFound.
// An unavailable backend is not an error: loads yield empty mappings and writes are skipped.
package salstore
