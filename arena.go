package pumpkindb

// Arena owns every value produced at runtime by an environment. Values
// pushed straight from the submitted program buffer are zero-copy slices
// into that buffer and are never arena-allocated; only values computed by
// an instruction (concatenation, hashing, HLC timestamps, etc.) are arena
// values. Go's garbage collector makes a real slab allocator unnecessary for
// correctness, but the distinction still matters operationally: arena
// values outlive the program buffer and may be safely retained (e.g. in the
// bus or the dictionary) after the environment that produced them ends,
// whereas borrowed values must be cloned before being retained that way.
type Arena struct {
	owned int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Own records that v was produced at runtime (as opposed to borrowed from
// the program buffer) and returns it unchanged. Instructions that allocate
// new values should route them through Own so the environment's bookkeeping
// (e.g. for diagnostics) stays accurate.
func (a *Arena) Own(v Value) Value {
	a.owned++
	return v
}

// Borrow returns a zero-copy slice of the program buffer. It exists purely
// to document, at call sites, that the returned value must not outlive buf.
func (a *Arena) Borrow(buf []byte) Value {
	return Value(buf)
}

// Allocated reports how many values this arena has produced, for tests and
// diagnostics.
func (a *Arena) Allocated() int {
	return a.owned
}
