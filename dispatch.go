package pumpkindb

import "context"

// Handler is the signature every built-in instruction and every dictionary
// closure ultimately runs through. It operates on env.Stack (the
// environment's current stack, which EVAL/TIMES/cursor iteration may swap
// out for a fresh one for the duration of a closure call).
type Handler func(ctx context.Context, env *Environment) error

// builtins holds every built-in instruction module, populated by the isa
// package's init() functions via Register. All modules share this one flat
// map, populated in import order; since each built-in name is unique across
// modules in practice, a single lookup resolves it. Registering a name twice
// replaces the earlier handler.
var builtins = map[string]Handler{}

// noRedefine lists built-ins that DEF/SET must refuse to shadow, mirroring
// the teacher's pattern of protecting core control-flow words; attempting to
// redefine one fails with InvalidInstruction.
var noRedefine = map[string]bool{}

// Register adds a built-in instruction handler. Called from isa module
// init() functions. protectFromRedefine marks the instruction as one that
// DEF/SET must refuse to shadow.
func Register(name string, protectFromRedefine bool, h Handler) {
	builtins[name] = h
	if protectFromRedefine {
		noRedefine[name] = true
	}
}

// IsProtected reports whether name is a built-in that DEF/SET must refuse to
// shadow, exported for the isa package's redefinition checks.
func IsProtected(name string) bool {
	return noRedefine[name]
}

// dispatch resolves an instruction name against the built-in dispatcher
// first, then the environment's dictionary, per spec §9's precedence rule.
func dispatch(env *Environment, name string) (Handler, bool) {
	if h, ok := builtins[name]; ok {
		return h, true
	}

	if entry, ok := env.Dict.lookup(name); ok {
		entry := entry
		switch entry.kind {
		case entryRaw:
			return func(_ context.Context, env *Environment) error {
				env.Stack.Push(entry.value)
				return nil
			}, true
		case entryClosure:
			return func(ctx context.Context, env *Environment) error {
				return env.Eval(ctx, entry.value)
			}, true
		}
	}

	return nil, false
}
