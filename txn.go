package pumpkindb

import "github.com/pumpkindb/pumpkindb/storage"

// TxnKind tags whether the environment's active transaction is a read or a
// write transaction (spec §3).
type TxnKind int

const (
	// TxnNone means no transaction is active.
	TxnNone TxnKind = iota
	TxnRead
	TxnWrite
)

// activeTxn is the environment's transaction slot: at most one active
// transaction at a time, tagged Read or Write, owning the cursor table that
// is only valid while it is live.
type activeTxn struct {
	kind      TxnKind
	txn       storage.Txn
	id        uint64
	commit    bool
	cursors   *HandleTable[storage.Cursor]
}

func newActiveTxn(kind TxnKind, txn storage.Txn, id uint64) *activeTxn {
	return &activeTxn{
		kind:    kind,
		txn:     txn,
		id:      id,
		cursors: NewHandleTable[storage.Cursor](),
	}
}

// end releases every cursor owned by the transaction and commits or rolls
// back the underlying storage transaction, per spec §3's lifecycle rule
// that a transaction ends at its body's normal exit or on error/rollback.
func (t *activeTxn) end() error {
	t.cursors.Each(func(_ string, c storage.Cursor) {
		_ = c.Close()
	})
	t.cursors.Clear()

	if t.kind == TxnWrite && t.commit {
		return t.txn.Commit()
	}
	return t.txn.Rollback()
}
