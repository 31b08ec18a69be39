package isa

import (
	"context"
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pumpkindb/pumpkindb"
)

// sizedInt wires one fixed-width signed integer family (INT8/INT16/INT32/
// INT64, big-endian two's complement, exact width).
type sizedInt struct {
	name  string
	width int
}

func (s sizedInt) decode(v pumpkindb.Value) (int64, error) {
	if len(v) != s.width {
		return 0, pumpkindb.NewInvalidValue(v)
	}
	var u uint64
	for _, b := range v {
		u = u<<8 | uint64(b)
	}
	bits := uint(s.width * 8)
	shift := 64 - bits
	return int64(u<<shift) >> shift, nil
}

func (s sizedInt) encode(n int64) pumpkindb.Value {
	out := make(pumpkindb.Value, s.width)
	u := uint64(n)
	for i := s.width - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}
	return out
}

func (s sizedInt) register() {
	reg(s.name+"/ADD", true, s.binOp(func(a, b int64) int64 { return a + b }))
	reg(s.name+"/SUB", true, s.binOp(func(a, b int64) int64 { return a - b }))
	reg(s.name+"/EQUAL?", true, s.cmpOp(func(a, b int64) bool { return a == b }))
	reg(s.name+"/LT?", true, s.cmpOp(func(a, b int64) bool { return a < b }))
	reg(s.name+"/GT?", true, s.cmpOp(func(a, b int64) bool { return a > b }))
	reg(s.name+"/->STRING", true, s.toString())
	reg("STRING/->"+s.name, true, s.fromString())
}

func (s sizedInt) binOp(fn func(a, b int64) int64) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		bv, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.decode(av)
		if err != nil {
			return err
		}
		b, err := s.decode(bv)
		if err != nil {
			return err
		}
		env.Stack.Push(s.encode(fn(a, b)))
		return nil
	}
}

func (s sizedInt) cmpOp(fn func(a, b int64) bool) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		bv, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.decode(av)
		if err != nil {
			return err
		}
		b, err := s.decode(bv)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.FromBool(fn(a, b)))
		return nil
	}
}

func (s sizedInt) toString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		n, err := s.decode(v)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.Value(strconv.FormatInt(n, 10)))
		return nil
	}
}

func (s sizedInt) fromString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		n, err := strconv.ParseInt(string(v), 10, s.width*8)
		if err != nil {
			return pumpkindb.NewInvalidValue(v)
		}
		env.Stack.Push(s.encode(n))
		return nil
	}
}

// sizedFloat wires one IEEE-754 big-endian float family (F32/F64).
type sizedFloat struct {
	name  string
	width int
}

func (s sizedFloat) decode(v pumpkindb.Value) (float64, error) {
	if len(v) != s.width {
		return 0, pumpkindb.NewInvalidValue(v)
	}
	if s.width == 4 {
		return float64(math.Float32frombits(binary.BigEndian.Uint32(v))), nil
	}
	return math.Float64frombits(binary.BigEndian.Uint64(v)), nil
}

func (s sizedFloat) encode(f float64) pumpkindb.Value {
	out := make(pumpkindb.Value, s.width)
	if s.width == 4 {
		binary.BigEndian.PutUint32(out, math.Float32bits(float32(f)))
	} else {
		binary.BigEndian.PutUint64(out, math.Float64bits(f))
	}
	return out
}

func (s sizedFloat) register() {
	reg(s.name+"/ADD", true, s.binOp(func(a, b float64) float64 { return a + b }))
	reg(s.name+"/SUB", true, s.binOp(func(a, b float64) float64 { return a - b }))
	reg(s.name+"/EQUAL?", true, s.cmpOp(func(a, b float64) bool { return a == b }))
	reg(s.name+"/LT?", true, s.cmpOp(func(a, b float64) bool { return a < b }))
	reg(s.name+"/GT?", true, s.cmpOp(func(a, b float64) bool { return a > b }))
	reg(s.name+"/->STRING", true, s.toString())
	reg("STRING/->"+s.name, true, s.fromString())
}

func (s sizedFloat) binOp(fn func(a, b float64) float64) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		bv, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.decode(av)
		if err != nil {
			return err
		}
		b, err := s.decode(bv)
		if err != nil {
			return err
		}
		env.Stack.Push(s.encode(fn(a, b)))
		return nil
	}
}

func (s sizedFloat) cmpOp(fn func(a, b float64) bool) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		bv, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		av, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		a, err := s.decode(av)
		if err != nil {
			return err
		}
		b, err := s.decode(bv)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.FromBool(fn(a, b)))
		return nil
	}
}

func (s sizedFloat) toString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		f, err := s.decode(v)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.Value(strconv.FormatFloat(f, 'g', -1, s.width*8)))
		return nil
	}
}

func (s sizedFloat) fromString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		f, err := strconv.ParseFloat(string(v), s.width*8)
		if err != nil {
			return pumpkindb.NewInvalidValue(v)
		}
		env.Stack.Push(s.encode(f))
		return nil
	}
}

// sizedUint wires one fixed-width unsigned integer family (U8/U16/U32/U64 in
// spec terms, raw big-endian, exact width, no sign extension).
type sizedUint struct {
	name  string
	width int
}

func (s sizedUint) decode(v pumpkindb.Value) (uint64, error) {
	if len(v) != s.width {
		return 0, pumpkindb.NewInvalidValue(v)
	}
	var u uint64
	for _, b := range v {
		u = u<<8 | uint64(b)
	}
	return u, nil
}

func (s sizedUint) encode(n uint64) pumpkindb.Value {
	out := make(pumpkindb.Value, s.width)
	for i := s.width - 1; i >= 0; i-- {
		out[i] = byte(n)
		n >>= 8
	}
	return out
}

func (s sizedUint) register() {
	reg(s.name+"/ADD", true, s.binOp(func(a, b uint64) uint64 { return a + b }))
	reg(s.name+"/SUB", true, s.sub())
	reg(s.name+"/EQUAL?", true, s.cmpOp(func(a, b uint64) bool { return a == b }))
	reg(s.name+"/LT?", true, s.cmpOp(func(a, b uint64) bool { return a < b }))
	reg(s.name+"/GT?", true, s.cmpOp(func(a, b uint64) bool { return a > b }))
	reg(s.name+"/->STRING", true, s.toString())
	reg("STRING/->"+s.name, true, s.fromString())
}

func (s sizedUint) popPair(env *pumpkindb.Environment) (uint64, uint64, error) {
	bv, err := env.Stack.Pop()
	if err != nil {
		return 0, 0, err
	}
	av, err := env.Stack.Pop()
	if err != nil {
		return 0, 0, err
	}
	a, err := s.decode(av)
	if err != nil {
		return 0, 0, err
	}
	b, err := s.decode(bv)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (s sizedUint) binOp(fn func(a, b uint64) uint64) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		a, b, err := s.popPair(env)
		if err != nil {
			return err
		}
		env.Stack.Push(s.encode(fn(a, b)))
		return nil
	}
}

// sub implements unsigned subtraction, InvalidValue on underflow.
func (s sizedUint) sub() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		a, b, err := s.popPair(env)
		if err != nil {
			return err
		}
		if a < b {
			return pumpkindb.NewInvalidValue(s.encode(b))
		}
		env.Stack.Push(s.encode(a - b))
		return nil
	}
}

func (s sizedUint) cmpOp(fn func(a, b uint64) bool) pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		a, b, err := s.popPair(env)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.FromBool(fn(a, b)))
		return nil
	}
}

func (s sizedUint) toString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		n, err := s.decode(v)
		if err != nil {
			return err
		}
		env.Stack.Push(pumpkindb.Value(strconv.FormatUint(n, 10)))
		return nil
	}
}

func (s sizedUint) fromString() pumpkindb.Handler {
	return func(_ context.Context, env *pumpkindb.Environment) error {
		v, err := env.Stack.Pop()
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(string(v), 10, s.width*8)
		if err != nil {
			return pumpkindb.NewInvalidValue(v)
		}
		env.Stack.Push(s.encode(n))
		return nil
	}
}

func init() {
	sizedInt{name: "INT8", width: 1}.register()
	sizedInt{name: "INT16", width: 2}.register()
	sizedInt{name: "INT32", width: 4}.register()
	sizedInt{name: "INT64", width: 8}.register()
	sizedUint{name: "U8", width: 1}.register()
	sizedUint{name: "U16", width: 2}.register()
	sizedUint{name: "U32", width: 4}.register()
	sizedUint{name: "U64", width: 8}.register()
	sizedFloat{name: "F32", width: 4}.register()
	sizedFloat{name: "F64", width: 8}.register()
}
