// Package isa implements the built-in instruction set of the PumpkinDB
// virtual machine: the stack, control-flow, numeric, binary, timestamp,
// identity, hashing, JSON, storage, messaging and terminal modules. Each
// module registers its handlers with the pumpkindb package's dispatcher in
// its own init(), so that importing this package (blank or otherwise) is
// sufficient to wire every instruction; pumpkindb itself never imports isa,
// avoiding an import cycle between the dispatcher and the handlers.
package isa

import "github.com/pumpkindb/pumpkindb"

// reg is a short alias kept local to this package purely to cut the
// boilerplate of every module's init(); it forwards straight to
// pumpkindb.Register.
func reg(name string, protect bool, h pumpkindb.Handler) {
	pumpkindb.Register(name, protect, h)
}
