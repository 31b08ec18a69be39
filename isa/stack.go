package isa

import (
	"context"
	"encoding/binary"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("DROP", true, unary((*pumpkindb.Stack).Drop))
	reg("2DROP", true, nary(2, (*pumpkindb.Stack).DropN))
	reg("3DROP", true, nary(3, (*pumpkindb.Stack).DropN))
	reg("DUP", true, unary((*pumpkindb.Stack).Dup))
	reg("2DUP", true, nary(2, (*pumpkindb.Stack).DupN))
	reg("3DUP", true, nary(3, (*pumpkindb.Stack).DupN))
	reg("SWAP", true, unary((*pumpkindb.Stack).Swap))
	reg("2SWAP", true, nary(2, (*pumpkindb.Stack).SwapN))
	reg("OVER", true, unary((*pumpkindb.Stack).Over))
	reg("2OVER", true, nary(2, (*pumpkindb.Stack).OverN))
	reg("ROT", true, unary((*pumpkindb.Stack).Rot))
	reg("-ROT", true, unary((*pumpkindb.Stack).RevRot))
	reg("2ROT", true, nary(2, (*pumpkindb.Stack).RotN))
	reg("NIP", true, unary((*pumpkindb.Stack).Nip))
	reg("2NIP", true, nary(2, (*pumpkindb.Stack).NipN))
	reg("TUCK", true, unary((*pumpkindb.Stack).Tuck))
	reg("2TUCK", true, nary(2, (*pumpkindb.Stack).TuckN))
	reg("CONCAT", true, unary((*pumpkindb.Stack).Concat))

	reg("DEPTH", true, depth)
	reg("STACK", true, stackOp)
	reg("WRAP", true, wrap)
	reg("UNWRAP", true, unwrap)
	reg("LENGTH", true, length)
	reg("SLICE", true, slice)
	reg("PAD", true, pad)
	reg("STARTSWITH?", true, startsWith)

	reg(">R", true, toReturn)
	reg("R>", true, fromReturn)

	reg(">Q", true, pushBack)
	reg("<Q", true, pushFront)
	reg("Q>", true, popBack)
	reg("Q<", true, popFront)
	reg("Q?", true, queueNonEmpty)

	reg("<", true, saveStack)
	reg(">", true, restoreStack)
}

// unary adapts a Stack method with no arguments beyond the stack itself.
func unary(fn func(*pumpkindb.Stack) error) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		return fn(env.Stack)
	}
}

// nary adapts a Stack method taking a fixed group size (2DROP, 2DUP, ...).
func nary(n int, fn func(*pumpkindb.Stack, int) error) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		return fn(env.Stack, n)
	}
}

func depth(_ context.Context, env *pumpkindb.Environment) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(env.Stack.Depth()))
	env.Stack.Push(pumpkindb.Value(buf))
	return nil
}

func stackOp(_ context.Context, env *pumpkindb.Environment) error {
	env.Stack.Push(env.Stack.Serialize())
	return nil
}

func wrap(_ context.Context, env *pumpkindb.Environment) error {
	n, err := popUint(env.Stack)
	if err != nil {
		return err
	}
	return env.Stack.Wrap(n)
}

func unwrap(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	return env.Stack.Unwrap(v)
}

func length(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(len(v)))
	env.Stack.Push(pumpkindb.Value(buf))
	return nil
}

// slice implements `v start end SLICE`, a half-open byte range [start,end).
func slice(_ context.Context, env *pumpkindb.Environment) error {
	end, err := popUint(env.Stack)
	if err != nil {
		return err
	}
	start, err := popUint(env.Stack)
	if err != nil {
		return err
	}
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if start > end || end > len(v) {
		return pumpkindb.NewInvalidValue(v)
	}
	env.Stack.Push(append(pumpkindb.Value{}, v[start:end]...))
	return nil
}

// pad implements `a size byte PAD`: left-pad a with byte up to size bytes.
func pad(_ context.Context, env *pumpkindb.Environment) error {
	padByte, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if len(padByte) != 1 {
		return pumpkindb.NewInvalidValue(padByte)
	}
	size, err := popUint(env.Stack)
	if err != nil {
		return err
	}
	a, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if size > 1024 || size < len(a) {
		return pumpkindb.NewInvalidValue(a)
	}
	out := make(pumpkindb.Value, size)
	for i := 0; i < size-len(a); i++ {
		out[i] = padByte[0]
	}
	copy(out[size-len(a):], a)
	env.Stack.Push(out)
	return nil
}

func startsWith(_ context.Context, env *pumpkindb.Environment) error {
	prefix, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	ok := len(prefix) <= len(v) && v[:len(prefix)].Equal(prefix)
	env.Stack.Push(pumpkindb.FromBool(ok))
	return nil
}

func toReturn(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Return.Push(v)
	return nil
}

func fromReturn(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Return.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(v)
	return nil
}

func pushBack(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Queue.PushBack(v)
	return nil
}

func pushFront(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Queue.PushFront(v)
	return nil
}

func popBack(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Queue.PopBack()
	if err != nil {
		return err
	}
	env.Stack.Push(v)
	return nil
}

func popFront(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Queue.PopFront()
	if err != nil {
		return err
	}
	env.Stack.Push(v)
	return nil
}

func queueNonEmpty(_ context.Context, env *pumpkindb.Environment) error {
	env.Stack.Push(pumpkindb.FromBool(env.Queue.NonEmpty()))
	return nil
}

func saveStack(_ context.Context, env *pumpkindb.Environment) error {
	env.Stacks.Save(env.Stack)
	env.Stack = pumpkindb.NewStack()
	return nil
}

func restoreStack(_ context.Context, env *pumpkindb.Environment) error {
	s, err := env.Stacks.Restore()
	if err != nil {
		return err
	}
	env.Stack = s
	return nil
}

// popUint pops a value and decodes it as a UINT, for instructions that take
// a count (WRAP, TIMES, SLICE bounds, PAD size).
func popUint(s *pumpkindb.Stack) (int, error) {
	v, err := s.Pop()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range v {
		n = n<<8 | int(b)
	}
	return n, nil
}
