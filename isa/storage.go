package isa

import (
	"context"
	"errors"

	"github.com/pumpkindb/pumpkindb"
	"github.com/pumpkindb/pumpkindb/storage"
)

func init() {
	reg("WRITE", true, writeTxn)
	reg("READ", true, readTxn)
	reg("ASSOC", true, assoc)
	reg("ASSOC?", true, assocQuery)
	reg("RETR", true, retr)
	reg("COMMIT", true, commit)
	reg("TXID", true, txID)
	reg("$SYSTEM/MAXKEYSIZE", true, maxKeySize)

	reg("CURSOR", true, cursorOpen)
	reg("CURSOR/FIRST", true, cursorFirst)
	reg("CURSOR/LAST", true, cursorLast)
	reg("CURSOR/NEXT", true, cursorNext)
	reg("CURSOR/PREV", true, cursorPrev)
	reg("CURSOR/SEEK", true, cursorSeek)
	reg("CURSOR/SEEKLAST", true, cursorSeekLast)
	reg("CURSOR/KEY", true, cursorKey)
	reg("CURSOR/VAL", true, cursorVal)
	reg("CURSOR/POSITIONED?", true, cursorPositioned)
	reg("CURSOR/DOWHILE", true, cursorDoWhile)
	reg("CURSOR/DOWHILE-PREFIXED", true, cursorDoWhilePrefixed)
}

// runClosure executes a program popped from the stack as an isolated
// transaction body: begin, eval, commit-or-rollback, end.
func runClosure(ctx context.Context, env *pumpkindb.Environment, begin func() error) error {
	closure, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if err := begin(); err != nil {
		return err
	}
	evalErr := env.Eval(ctx, closure)
	endErr := env.EndTxn()
	if evalErr != nil {
		return evalErr
	}
	return endErr
}

func writeTxn(ctx context.Context, env *pumpkindb.Environment) error {
	return runClosure(ctx, env, env.BeginWrite)
}

func readTxn(ctx context.Context, env *pumpkindb.Environment) error {
	return runClosure(ctx, env, env.BeginRead)
}

func assoc(_ context.Context, env *pumpkindb.Environment) error {
	value, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	txn, err := env.RequireTxn()
	if err != nil {
		return err
	}
	if !txn.Writable() {
		return pumpkindb.NewInvalidValue(key)
	}
	if len(key) > env.Engine.Storage.MaxKeySize() {
		return pumpkindb.NewInvalidValue(key)
	}
	if putErr := txn.Put(key, value); putErr != nil {
		if errors.Is(putErr, storage.ErrDuplicateKey) {
			return pumpkindb.NewDuplicateKey(key)
		}
		return pumpkindb.WrapDatabaseError(putErr)
	}
	return nil
}

func assocQuery(_ context.Context, env *pumpkindb.Environment) error {
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	txn, err := env.RequireTxn()
	if err != nil {
		return err
	}
	_, ok, getErr := txn.Get(key)
	if getErr != nil {
		return pumpkindb.WrapDatabaseError(getErr)
	}
	env.Stack.Push(pumpkindb.FromBool(ok))
	return nil
}

func retr(_ context.Context, env *pumpkindb.Environment) error {
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	txn, err := env.RequireTxn()
	if err != nil {
		return err
	}
	value, ok, getErr := txn.Get(key)
	if getErr != nil {
		return pumpkindb.WrapDatabaseError(getErr)
	}
	if !ok {
		return pumpkindb.NewUnknownKey(key)
	}
	env.Stack.Push(pumpkindb.Value(value))
	return nil
}

func commit(_ context.Context, env *pumpkindb.Environment) error {
	return env.MarkCommit()
}

func txID(_ context.Context, env *pumpkindb.Environment) error {
	id, err := env.TxID()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.EncodeTXID(id))
	return nil
}

func maxKeySize(_ context.Context, env *pumpkindb.Environment) error {
	size := env.Engine.Storage.MaxKeySize()
	out := make(pumpkindb.Value, 4)
	n := size
	for i := 3; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	env.Stack.Push(out)
	return nil
}

func cursorOpen(_ context.Context, env *pumpkindb.Environment) error {
	txn, err := env.RequireTxn()
	if err != nil {
		return err
	}
	cur, openErr := txn.Cursor()
	if openErr != nil {
		return pumpkindb.WrapDatabaseError(openErr)
	}
	id, curErr := env.NewCursor(cur)
	if curErr != nil {
		return curErr
	}
	env.Stack.Push(pumpkindb.Value(id))
	return nil
}

func popCursor(env *pumpkindb.Environment) (storage.Cursor, pumpkindb.Value, error) {
	id, err := env.Stack.Pop()
	if err != nil {
		return nil, nil, err
	}
	cur, ok := env.GetCursor(string(id))
	if !ok {
		return nil, nil, pumpkindb.NewInvalidValue(id)
	}
	return cur, id, nil
}

func cursorFirst(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.First()))
	env.Stack.Push(id)
	return nil
}

func cursorLast(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.Last()))
	env.Stack.Push(id)
	return nil
}

func cursorNext(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.Next()))
	env.Stack.Push(id)
	return nil
}

func cursorPrev(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.Prev()))
	env.Stack.Push(id)
	return nil
}

func cursorSeek(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.SeekGE(key)))
	env.Stack.Push(id)
	return nil
}

func cursorSeekLast(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	key, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.SeekLT(key)))
	env.Stack.Push(id)
	return nil
}

func cursorKey(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	if !cur.Valid() {
		return pumpkindb.NewNoValue("cursor not positioned")
	}
	env.Stack.Push(pumpkindb.Value(cur.Key()).Clone())
	env.Stack.Push(id)
	return nil
}

func cursorVal(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	if !cur.Valid() {
		return pumpkindb.NewNoValue("cursor not positioned")
	}
	env.Stack.Push(pumpkindb.Value(cur.Value()).Clone())
	env.Stack.Push(id)
	return nil
}

func cursorPositioned(_ context.Context, env *pumpkindb.Environment) error {
	cur, id, err := popCursor(env)
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(cur.Valid()))
	env.Stack.Push(id)
	return nil
}

// cursorDoWhile runs closure repeatedly on a fresh stack seeded with the
// cursor id, advancing by evaluating iterator on the cursor after each
// iteration, stopping when the closure's resulting top-of-stack is falsy or
// the cursor runs out of entries. Matches spec §4.7's `CURSOR/DOWHILE cursor
// closure iterator`.
func cursorDoWhile(ctx context.Context, env *pumpkindb.Environment) error {
	iterator, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	return cursorLoop(ctx, env, nil, iterator)
}

// cursorDoWhilePrefixed implements `cursor closure prefix
// CURSOR/DOWHILE-PREFIXED` (prefix on top): starting from the cursor's
// current position, it runs closure while the current key has prefix, and
// always advances via CURSOR/NEXT rather than a caller-supplied iterator.
func cursorDoWhilePrefixed(ctx context.Context, env *pumpkindb.Environment) error {
	prefix, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	return cursorLoop(ctx, env, prefix, nil)
}

func cursorLoop(ctx context.Context, env *pumpkindb.Environment, prefix, iterator pumpkindb.Value) error {
	closure, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	id, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	cur, ok := env.GetCursor(string(id))
	if !ok {
		return pumpkindb.NewInvalidValue(id)
	}

	for cur.Valid() {
		if prefix != nil && !hasPrefix(cur.Key(), prefix) {
			break
		}

		result, runErr := env.WithFreshStack(func() error {
			env.Stack.Push(pumpkindb.Value(id))
			return env.Eval(ctx, closure)
		})
		if runErr != nil {
			return runErr
		}

		cont, boolErr := stackTopBool(result)
		if boolErr != nil {
			return boolErr
		}
		if !cont {
			break
		}

		if iterator != nil {
			if _, advErr := env.WithFreshStack(func() error {
				env.Stack.Push(pumpkindb.Value(id))
				return env.Eval(ctx, iterator)
			}); advErr != nil {
				return advErr
			}
		} else if !cur.Next() {
			break
		}
	}

	env.Stack.Push(pumpkindb.Value(id))
	return nil
}

func hasPrefix(key []byte, prefix pumpkindb.Value) bool {
	if len(key) < len(prefix) {
		return false
	}
	for i := range prefix {
		if key[i] != prefix[i] {
			return false
		}
	}
	return true
}

func stackTopBool(s *pumpkindb.Stack) (bool, error) {
	v, err := s.Pop()
	if err != nil {
		return false, err
	}
	return pumpkindb.AsBool(v)
}
