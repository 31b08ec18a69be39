package pumpkindb

import (
	"github.com/256dpi/turing/coding"

	"github.com/pumpkindb/pumpkindb/internal/wire"
)

// encodeValues and decodeValues adapt the internal/wire helpers to the root
// package's Value type, used by WRAP/UNWRAP/STACK.

func encodeValues(values [][]byte) ([]byte, *coding.Ref) {
	return wire.EncodeValues(values)
}

func decodeValues(v Value) ([][]byte, error) {
	return wire.DecodeValues(v)
}

// ValidProgram reports whether v decodes as a well-formed program without
// executing it, backing EVAL/VALID?.
func ValidProgram(v Value) bool {
	return wire.Validate(v)
}

// EncodeValues wire-encodes a sequence of values as consecutive data-push
// tokens, exported for instruction modules that build closures at runtime
// (e.g. TRY's caught-error triple).
func EncodeValues(values []Value) ([]byte, *coding.Ref) {
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = v
	}
	return wire.EncodeValues(raw)
}
