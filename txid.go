package pumpkindb

import "sync/atomic"

// txidCounter backs the TXID instruction: a process-wide, strictly
// increasing counter, the same locally-monotonic-generator shape quasar's
// seq package uses for ledger sequences, simplified here to a single atomic
// counter since TXID carries no wall-clock component.
var txidCounter uint64

// nextTXID allocates a fresh, unique, monotonically increasing transaction
// identifier (spec §4.7).
func nextTXID() uint64 {
	return atomic.AddUint64(&txidCounter, 1)
}

// encodeTXID renders a TXID in its fixed 8-byte big-endian wire form.
func encodeTXID(id uint64) Value {
	v := make(Value, 8)
	for i := 7; i >= 0; i-- {
		v[i] = byte(id)
		id >>= 8
	}
	return v
}

// EncodeTXID is the exported form of encodeTXID, used by the TXID
// instruction in the isa package.
func EncodeTXID(id uint64) Value {
	return encodeTXID(id)
}
