package pumpkindb

import "bytes"

// Value is a variable-length byte sequence, the only data type the VM knows
// about. Interpretation is by convention only (see spec.md Glossary: UINT,
// INT, SIZED INT/FLOAT, HLC, UUID, JSON, STRING).
type Value []byte

// Clone returns an owned copy of the value, detached from any arena or
// program buffer it was borrowed from.
func (v Value) Clone() Value {
	if v == nil {
		return nil
	}
	c := make(Value, len(v))
	copy(c, v)
	return c
}

// Equal reports byte-for-byte equality.
func (v Value) Equal(o Value) bool {
	return bytes.Equal(v, o)
}

// Less reports lexicographic ordering, shorter-is-lesser on a common prefix,
// as required by spec §4.4's comparison totality property.
func (v Value) Less(o Value) bool {
	return bytes.Compare(v, o) < 0
}

// Compare returns -1, 0 or 1 following bytes.Compare's convention.
func (v Value) Compare(o Value) int {
	return bytes.Compare(v, o)
}

// boolean value conventions used throughout the instruction set.
var (
	True  = Value{0x01}
	False = Value{0x00}
)

// AsBool converts a single-byte boolean value, failing with InvalidValue for
// anything else.
func AsBool(v Value) (bool, error) {
	if len(v) != 1 {
		return false, errInvalidValue(v)
	}
	switch v[0] {
	case 0x01:
		return true, nil
	case 0x00:
		return false, nil
	default:
		return false, errInvalidValue(v)
	}
}

// FromBool converts a bool into its wire boolean convention.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}
