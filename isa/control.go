package isa

import (
	"context"

	"github.com/pumpkindb/pumpkindb"
)

func init() {
	reg("EVAL", true, eval)
	reg("EVAL/SCOPED", true, evalScoped)
	reg("EVAL/VALID?", true, evalValid)
	reg("TRY", true, try)
	reg("IF", true, ifInstr)
	reg("IFELSE", true, ifElse)
	reg("DOWHILE", true, doWhile)
	reg("TIMES", true, times)
	reg("SET", true, setInstr)
	reg("DEF", true, defInstr)
}

func eval(ctx context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	return env.Eval(ctx, v)
}

func evalScoped(ctx context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	return env.EvalScoped(ctx, v)
}

func evalValid(_ context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	env.Stack.Push(pumpkindb.FromBool(pumpkindb.ValidProgram(v)))
	return nil
}

// try runs the top closure and catches any error into the three-value
// closure [description detail code]; on success it pushes an empty closure.
func try(ctx context.Context, env *pumpkindb.Environment) error {
	v, err := env.Stack.Pop()
	if err != nil {
		return err
	}

	runErr := env.Eval(ctx, v)
	if runErr == nil {
		env.Stack.Push(pumpkindb.Value{})
		return nil
	}

	pe, ok := runErr.(*pumpkindb.Error)
	if !ok {
		pe = pumpkindb.WrapDatabaseError(runErr)
	}

	closure, ref := pumpkindb.EncodeValues(pe.Closure())
	defer ref.Release()
	env.Stack.Push(append(pumpkindb.Value{}, closure...))
	return nil
}

func ifInstr(ctx context.Context, env *pumpkindb.Environment) error {
	then, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	cond, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	run, err := pumpkindb.AsBool(cond)
	if err != nil {
		return err
	}
	if run {
		return env.Eval(ctx, then)
	}
	return nil
}

func ifElse(ctx context.Context, env *pumpkindb.Environment) error {
	elseClosure, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	thenClosure, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	cond, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	run, err := pumpkindb.AsBool(cond)
	if err != nil {
		return err
	}
	if run {
		return env.Eval(ctx, thenClosure)
	}
	return env.Eval(ctx, elseClosure)
}

// doWhile repeatedly evaluates the top closure, consuming the value it
// leaves behind each iteration, until that value is not 0x01.
func doWhile(ctx context.Context, env *pumpkindb.Environment) error {
	closure, err := env.Stack.Pop()
	if err != nil {
		return err
	}

	for {
		if err := env.Eval(ctx, closure); err != nil {
			return err
		}
		cont, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		keep, err := pumpkindb.AsBool(cont)
		if err != nil {
			return err
		}
		if !keep {
			return nil
		}
	}
}

// times evaluates code exactly n times, each iteration on a fresh stack,
// and pushes that iteration's final stack back via the queue.
func times(ctx context.Context, env *pumpkindb.Environment) error {
	n, err := popUint(env.Stack)
	if err != nil {
		return err
	}
	code, err := env.Stack.Pop()
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		result, err := env.WithFreshStack(func() error {
			return env.Eval(ctx, code)
		})
		if err != nil {
			return err
		}
		for _, v := range result.All() {
			env.Queue.PushBack(v)
		}
	}
	return nil
}

func setInstr(_ context.Context, env *pumpkindb.Environment) error {
	name, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	value, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if err := checkRedefine(string(name)); err != nil {
		return err
	}
	env.Dict.SetRaw(string(name), value)
	return nil
}

func defInstr(_ context.Context, env *pumpkindb.Environment) error {
	name, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	closure, err := env.Stack.Pop()
	if err != nil {
		return err
	}
	if err := checkRedefine(string(name)); err != nil {
		return err
	}
	env.Dict.SetClosure(string(name), closure)
	return nil
}

func checkRedefine(name string) error {
	if pumpkindb.IsProtected(name) {
		return pumpkindb.NewInvalidInstruction(name)
	}
	return nil
}
