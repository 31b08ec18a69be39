package pumpkindb

import (
	"context"
	"io"

	"github.com/pumpkindb/pumpkindb/internal/wire"
	"github.com/pumpkindb/pumpkindb/storage"
)

// Environment is the per-program execution context: stacks, dictionary,
// heap arena, return stack, value queue, and the auxiliary state named in
// spec §3 (current transaction, cursor table, subscription table). One
// Environment exists per submitted program and is destroyed on termination.
type Environment struct {
	Engine *Engine

	Stack  *Stack
	Return *ReturnStack
	Queue  *ValueQueue
	Stacks StackOfStacks
	Dict   *Dictionary
	Arena  *Arena

	Txn           *activeTxn
	Subscriptions *HandleTable[*subscription]

	// Terminal receives TRACE output; nil unless the session layer attached
	// one (spec §4.9 marks TRACE as terminal-only/optional).
	Terminal io.Writer
}

// NewEnvironment creates a fresh environment bound to an engine.
func NewEnvironment(engine *Engine) *Environment {
	return &Environment{
		Engine:        engine,
		Stack:         NewStack(),
		Return:        NewReturnStack(),
		Queue:         NewValueQueue(16),
		Dict:          NewDictionary(),
		Arena:         NewArena(),
		Subscriptions: NewHandleTable[*subscription](),
	}
}

// Close releases every resource owned by the environment: the active
// transaction (rolled back if still open), its cursors, and every
// subscription, per spec §3's termination lifecycle.
func (env *Environment) Close() {
	if env.Txn != nil {
		_ = env.Txn.end()
		env.Txn = nil
	}

	env.Subscriptions.Each(func(id string, sub *subscription) {
		env.Engine.Bus.unsubscribe(sub)
	})
	env.Subscriptions.Clear()
}

// Run decodes and executes program on the environment's current (initially
// empty) stack to completion, returning the final stack contents or the
// first error encountered.
func (env *Environment) Run(ctx context.Context, program []byte) ([]Value, error) {
	if err := env.Eval(ctx, program); err != nil {
		return nil, err
	}
	return env.Stack.All(), nil
}

// Eval decodes and executes program against env.Stack (the environment's
// current stack), as used by EVAL, TRY, IF/IFELSE, closures, etc. Malformed
// byte streams fail with Decoding.
func (env *Environment) Eval(ctx context.Context, program []byte) error {
	dec := wire.NewDecoder(program)

	for {
		select {
		case <-ctx.Done():
			return NewError(KindDatabaseError, ctx.Err().Error())
		default:
		}

		tok, ok, err := dec.Next()
		if err != nil {
			return errDecoding(err.Error())
		}
		if !ok {
			return nil
		}

		switch tok.Kind {
		case wire.KindPush:
			env.Stack.Push(Value(tok.Bytes))
		case wire.KindInstruction:
			name := string(tok.Bytes)
			handler, ok := dispatch(env, name)
			if !ok {
				return errUnknownInstruction(name)
			}
			if err := handler(ctx, env); err != nil {
				return err
			}
		}
	}
}

// EvalScoped implements EVAL/SCOPED: dictionary mutations performed during
// the call do not outlive it.
func (env *Environment) EvalScoped(ctx context.Context, program []byte) error {
	env.Dict.PushScope()
	defer env.Dict.PopScope()
	return env.Eval(ctx, program)
}

// WithFreshStack runs fn with env.Stack temporarily swapped for a new empty
// stack, restoring the previous stack afterwards and returning the fresh
// stack's final contents. Used by TIMES and CURSOR/DOWHILE's closure calls.
func (env *Environment) WithFreshStack(fn func() error) (*Stack, error) {
	saved := env.Stack
	env.Stack = NewStack()
	defer func() { env.Stack = saved }()

	if err := fn(); err != nil {
		return env.Stack, err
	}
	return env.Stack, nil
}

// --- transaction API, used by the storage instruction module ---

// BeginWrite opens the process-wide write transaction and binds it to the
// environment. Fails with NoTransaction if a transaction is already active
// (nested WRITE, per spec §4.7).
func (env *Environment) BeginWrite() error {
	if env.Txn != nil {
		return errNoTransaction("a transaction is already active")
	}
	txn, err := env.Engine.Storage.BeginWrite()
	if err != nil {
		return WrapDatabaseError(err)
	}
	env.Txn = newActiveTxn(TxnWrite, txn, nextTXID())
	return nil
}

// BeginRead opens a read transaction and binds it to the environment, same
// nesting restriction as BeginWrite.
func (env *Environment) BeginRead() error {
	if env.Txn != nil {
		return errNoTransaction("a transaction is already active")
	}
	txn, err := env.Engine.Storage.BeginRead()
	if err != nil {
		return WrapDatabaseError(err)
	}
	env.Txn = newActiveTxn(TxnRead, txn, nextTXID())
	return nil
}

// EndTxn closes the environment's active transaction (commit if marked and
// writable, else rollback) and clears the transaction slot.
func (env *Environment) EndTxn() error {
	if env.Txn == nil {
		return nil
	}
	t := env.Txn
	env.Txn = nil
	return t.end()
}

// MarkCommit flags the active write transaction to persist at end (COMMIT).
// Fails with NoTransaction outside any transaction.
func (env *Environment) MarkCommit() error {
	if env.Txn == nil {
		return errNoTransaction("COMMIT used outside a transaction")
	}
	env.Txn.commit = true
	return nil
}

// RequireTxn returns the active storage transaction, failing with
// NoTransaction if none is open.
func (env *Environment) RequireTxn() (storage.Txn, error) {
	if env.Txn == nil {
		return nil, errNoTransaction("instruction requires an active transaction")
	}
	return env.Txn.txn, nil
}

// TxID returns the active transaction's identifier, failing with
// NoTransaction if none is open.
func (env *Environment) TxID() (uint64, error) {
	if env.Txn == nil {
		return 0, errNoTransaction("TXID used outside a transaction")
	}
	return env.Txn.id, nil
}

// NewCursor registers a storage cursor against the active transaction and
// returns its opaque id. Fails with NoTransaction if none is open.
func (env *Environment) NewCursor(c storage.Cursor) (string, error) {
	if env.Txn == nil {
		return "", errNoTransaction("CURSOR used outside a transaction")
	}
	return env.Txn.cursors.New(c), nil
}

// GetCursor looks up a cursor by id, valid only within the transaction that
// created it.
func (env *Environment) GetCursor(id string) (storage.Cursor, bool) {
	if env.Txn == nil {
		return nil, false
	}
	return env.Txn.cursors.Get(id)
}

// --- messaging API, used by the messaging instruction module ---

// Subscribe registers interest in topic and returns a fresh subscription id
// bound to the environment's lifetime.
func (env *Environment) Subscribe(topic Value) string {
	sub := env.Engine.Bus.subscribe(topic)
	return env.Subscriptions.New(sub)
}

// Unsubscribe cancels a subscription previously returned by Subscribe.
// Unknown ids are ignored, so UNSUBSCRIBE of an unknown id is not an error.
func (env *Environment) Unsubscribe(id string) {
	sub, ok := env.Subscriptions.Get(id)
	if !ok {
		return
	}
	env.Engine.Bus.unsubscribe(sub)
	env.Subscriptions.Delete(id)
}

// PollSubscription pops the oldest undelivered message for a subscription,
// if any. This is the foundation the session layer polls to push pending
// messages to a connected client; PumpkinScript itself has no bytecode
// instruction to drain an inbox directly (delivery is out of the VM's
// control flow per spec §4.8).
func (env *Environment) PollSubscription(id string) (Value, bool) {
	sub, ok := env.Subscriptions.Get(id)
	if !ok {
		return nil, false
	}
	return sub.poll()
}

// Publish delivers value to every current subscriber of topic.
func (env *Environment) Publish(topic, value Value) {
	env.Engine.Bus.Publish(topic, value)
}
