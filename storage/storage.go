// Package storage defines the narrow, transactional key-value contract the
// PumpkinDB core consumes (spec.md §4.7 and §6) and an implementation backed
// by cockroachdb/pebble (via the 256dpi/pebble fork, matching the teacher
// repository's storage driver). The core only ever talks to the Backend
// interface; swapping the embedded engine never touches VM or scheduler code.
package storage

import "io"

// Backend is the storage contract: single writer, many bounded readers,
// ordered traversal, point lookup, insert-if-absent with duplicate
// detection, and commit/rollback.
type Backend interface {
	// BeginWrite blocks until the single process-wide write slot is free
	// and returns a new write transaction.
	BeginWrite() (Txn, error)

	// BeginRead blocks until a read slot is available (bounded by
	// MaxReadTransactions) and returns a new read-only transaction that
	// observes a stable snapshot of the store.
	BeginRead() (Txn, error)

	// MaxKeySize reports the configured maximum key size, exposed to
	// programs via $SYSTEM/MAXKEYSIZE.
	MaxKeySize() int

	// Close releases all backend resources.
	Close() error
}

// Txn is a single read or write transaction.
type Txn interface {
	// Writable reports whether this is a write transaction.
	Writable() bool

	// Get performs a point lookup. ok is false if the key is absent.
	Get(key []byte) (value []byte, ok bool, err error)

	// Put inserts a key that must not already exist. It returns
	// ErrDuplicateKey if the key is already associated. Write transactions
	// only.
	Put(key, value []byte) error

	// Cursor opens a new ordered cursor over the transaction's view of the
	// key space. Cursors opened from a write transaction observe the
	// transaction's own uncommitted writes.
	Cursor() (Cursor, error)

	// Commit persists a write transaction's mutations. Read transactions
	// treat Commit as a no-op release of the snapshot.
	Commit() error

	// Rollback discards a write transaction's mutations (or releases a
	// read transaction's snapshot) without persisting anything.
	Rollback() error
}

// Cursor provides ordered traversal within the transaction that created it.
// A cursor is invalid once its owning transaction ends.
type Cursor interface {
	io.Closer

	First() bool
	Last() bool
	Next() bool
	Prev() bool
	SeekGE(key []byte) bool
	SeekLT(key []byte) bool

	// Valid reports whether the cursor is currently positioned on an entry.
	Valid() bool

	// Key and Value return the current entry. Callers must not retain the
	// returned slices past the next cursor operation.
	Key() []byte
	Value() []byte
}

// Errors returned by Backend implementations, wrapped by the core into
// *pumpkindb.Error as appropriate.
var (
	ErrDuplicateKey  = simpleError("storage: key already associated")
	ErrNotFound      = simpleError("storage: key not found")
	ErrNoWriteSlot   = simpleError("storage: write transaction already active")
	ErrNoReadSlot    = simpleError("storage: read transaction limit reached")
	ErrNotWritable   = simpleError("storage: transaction is read-only")
	ErrTxnFinished   = simpleError("storage: transaction has already ended")
	ErrCursorInvalid = simpleError("storage: cursor not positioned")
)

type simpleError string

func (e simpleError) Error() string { return string(e) }
