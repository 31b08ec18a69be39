package isa

import (
	"testing"

	"github.com/pumpkindb/pumpkindb"
	"github.com/pumpkindb/pumpkindb/internal/wire"
	"github.com/pumpkindb/pumpkindb/storage"
)

// newEngineEnv starts a real engine against a temporary pebble directory and
// returns an environment bound to it, registering cleanup on t.
func newEngineEnv(t *testing.T) *pumpkindb.Environment {
	t.Helper()
	engine, err := pumpkindb.Open(pumpkindb.EngineConfig{
		Storage: storage.Config{Directory: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return pumpkindb.NewEnvironment(engine)
}

// instrToken builds a raw wire instruction token for name, per the wire
// format's tag byte: 0x80|len(name) followed by the name bytes.
func instrToken(name string) []byte {
	return append([]byte{byte(0x80 | len(name))}, name...)
}

// program concatenates push tokens and instruction tokens into a single
// wire-encoded program, in the order given. Pass a []byte for a data push,
// or a string for an instruction name.
func program(parts ...interface{}) []byte {
	var out []byte
	for _, p := range parts {
		switch v := p.(type) {
		case []byte:
			out = append(out, wire.EncodePush(v)...)
		case string:
			out = append(out, instrToken(v)...)
		}
	}
	return out
}
