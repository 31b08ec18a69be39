package pumpkindb

import (
	"crypto/rand"
	"encoding/hex"
)

// HandleTable is a generic, mutex-free (environments are single-threaded)
// registry mapping an opaque id to a live resource, valid only for as long
// as its owning scope lives. Adapted from quasar's Table, which maps a name
// to a persisted position; here the mapping is purely in-memory since
// cursors and subscriptions are scoped to a transaction or environment
// lifetime rather than durable state (spec §3's lifecycle rules).
type HandleTable[T any] struct {
	entries map[string]T
}

// NewHandleTable returns an empty handle table.
func NewHandleTable[T any]() *HandleTable[T] {
	return &HandleTable[T]{entries: map[string]T{}}
}

// New allocates a fresh opaque id for value and stores it.
func (t *HandleTable[T]) New(value T) string {
	id := newHandleID()
	t.entries[id] = value
	return id
}

// Get looks up a handle by id.
func (t *HandleTable[T]) Get(id string) (T, bool) {
	v, ok := t.entries[id]
	return v, ok
}

// Delete removes a handle.
func (t *HandleTable[T]) Delete(id string) {
	delete(t.entries, id)
}

// Count returns the number of live handles.
func (t *HandleTable[T]) Count() int {
	return len(t.entries)
}

// Each iterates over all live handles in unspecified order.
func (t *HandleTable[T]) Each(fn func(id string, value T)) {
	for id, v := range t.entries {
		fn(id, v)
	}
}

// Clear removes every handle, used when an environment or transaction ends.
func (t *HandleTable[T]) Clear() {
	t.entries = map[string]T{}
}

func newHandleID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
