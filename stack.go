package pumpkindb

// Stack is an ordered sequence of values, growing to the right; the top is
// the last pushed element. It implements every primitive stack instruction
// named in spec §4.2.
type Stack struct {
	items []Value
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push appends a value to the top of the stack.
func (s *Stack) Push(v Value) {
	s.items = append(s.items, v)
}

// Depth returns the number of items on the stack.
func (s *Stack) Depth() int {
	return len(s.items)
}

// Peek returns the nth-from-top item (0 = top) without removing it.
func (s *Stack) Peek(n int) (Value, bool) {
	idx := len(s.items) - 1 - n
	if idx < 0 {
		return nil, false
	}
	return s.items[idx], true
}

// Pop removes and returns the top value.
func (s *Stack) Pop() (Value, error) {
	if len(s.items) == 0 {
		return nil, errEmptyStack()
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// PopN removes and returns the top n values, ordered bottom-to-top (i.e. the
// same order they appear on the stack).
func (s *Stack) PopN(n int) ([]Value, error) {
	if len(s.items) < n {
		return nil, errEmptyStack()
	}
	out := make([]Value, n)
	copy(out, s.items[len(s.items)-n:])
	s.items = s.items[:len(s.items)-n]
	return out, nil
}

// All returns the stack contents, bottom first, top last. The returned
// slice must not be mutated.
func (s *Stack) All() []Value {
	return s.items
}

// Drop implements DROP.
func (s *Stack) Drop() error {
	_, err := s.Pop()
	return err
}

// DropN implements nDROP (2DROP, 3DROP).
func (s *Stack) DropN(n int) error {
	_, err := s.PopN(n)
	return err
}

// Dup implements DUP.
func (s *Stack) Dup() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	s.Push(v)
	s.Push(v)
	return nil
}

// DupN implements nDUP (2DUP, 3DUP): duplicates the top n values as a group.
func (s *Stack) DupN(n int) error {
	items, err := s.PopN(n)
	if err != nil {
		return err
	}
	s.items = append(s.items, items...)
	s.items = append(s.items, items...)
	return nil
}

// Swap implements SWAP.
func (s *Stack) Swap() error {
	if len(s.items) < 2 {
		return errEmptyStack()
	}
	n := len(s.items)
	s.items[n-1], s.items[n-2] = s.items[n-2], s.items[n-1]
	return nil
}

// SwapN implements 2SWAP: swaps the top two pairs of values.
func (s *Stack) SwapN(n int) error {
	if len(s.items) < 2*n {
		return errEmptyStack()
	}
	l := len(s.items)
	a := append([]Value{}, s.items[l-2*n:l-n]...)
	b := append([]Value{}, s.items[l-n:]...)
	copy(s.items[l-2*n:l-n], b)
	copy(s.items[l-n:], a)
	return nil
}

// Over implements OVER.
func (s *Stack) Over() error {
	v, ok := s.Peek(1)
	if !ok {
		return errEmptyStack()
	}
	s.Push(v)
	return nil
}

// OverN implements 2OVER.
func (s *Stack) OverN(n int) error {
	if len(s.items) < 2*n {
		return errEmptyStack()
	}
	l := len(s.items)
	group := append([]Value{}, s.items[l-2*n:l-n]...)
	s.items = append(s.items, group...)
	return nil
}

// Rot implements ROT: `a b c ROT` -> `b c a`.
func (s *Stack) Rot() error {
	if len(s.items) < 3 {
		return errEmptyStack()
	}
	l := len(s.items)
	a := s.items[l-3]
	copy(s.items[l-3:l-1], s.items[l-2:l])
	s.items[l-1] = a
	return nil
}

// RevRot implements -ROT: `a b c -ROT` -> `c a b`.
func (s *Stack) RevRot() error {
	if len(s.items) < 3 {
		return errEmptyStack()
	}
	l := len(s.items)
	c := s.items[l-1]
	copy(s.items[l-2:l], s.items[l-3:l-1])
	s.items[l-3] = c
	return nil
}

// RotN implements 2ROT: rotates the top three pairs of values.
func (s *Stack) RotN(n int) error {
	if len(s.items) < 3*n {
		return errEmptyStack()
	}
	l := len(s.items)
	a := append([]Value{}, s.items[l-3*n:l-2*n]...)
	rest := append([]Value{}, s.items[l-2*n:]...)
	copy(s.items[l-3*n:l-n], rest)
	copy(s.items[l-n:], a)
	return nil
}

// Nip implements NIP: `a b NIP` -> `b`.
func (s *Stack) Nip() error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	_, err = s.Pop()
	if err != nil {
		return err
	}
	s.Push(v)
	return nil
}

// NipN implements 2NIP.
func (s *Stack) NipN(n int) error {
	if len(s.items) < 2*n {
		return errEmptyStack()
	}
	l := len(s.items)
	top := append([]Value{}, s.items[l-n:]...)
	s.items = s.items[:l-2*n]
	s.items = append(s.items, top...)
	return nil
}

// Tuck implements TUCK: `a b TUCK` -> `b a b`.
func (s *Stack) Tuck() error {
	if len(s.items) < 2 {
		return errEmptyStack()
	}
	b, _ := s.Pop()
	a, _ := s.Pop()
	s.Push(b)
	s.Push(a)
	s.Push(b)
	return nil
}

// TuckN implements 2TUCK: `a1 a2 b1 b2 2TUCK` -> `b1 b2 a1 a2 b1 b2`.
func (s *Stack) TuckN(n int) error {
	if len(s.items) < 2*n {
		return errEmptyStack()
	}
	l := len(s.items)
	prefix := append([]Value{}, s.items[:l-2*n]...)
	second := append([]Value{}, s.items[l-2*n:l-n]...)
	top := append([]Value{}, s.items[l-n:]...)

	out := make([]Value, 0, l+n)
	out = append(out, prefix...)
	out = append(out, top...)
	out = append(out, second...)
	out = append(out, top...)
	s.items = out
	return nil
}

// Concat implements CONCAT: `a b CONCAT` -> `a++b`.
func (s *Stack) Concat() error {
	b, err := s.Pop()
	if err != nil {
		return err
	}
	a, err := s.Pop()
	if err != nil {
		return err
	}
	out := make(Value, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	s.Push(out)
	return nil
}

// Wrap implements WRAP n: pops n items and produces a single value that is
// their concatenation in wire form, restorable by UNWRAP.
func (s *Stack) Wrap(n int) error {
	items, err := s.PopN(n)
	if err != nil {
		return err
	}
	raw := make([][]byte, len(items))
	for i, v := range items {
		raw[i] = v
	}
	buf, ref := encodeValues(raw)
	defer ref.Release()
	s.Push(append(Value{}, buf...))
	return nil
}

// Unwrap implements UNWRAP: re-executes v as a values-only program and
// pushes the resulting values in order.
func (s *Stack) Unwrap(v Value) error {
	values, err := decodeValues(v)
	if err != nil {
		return errInvalidValue(v)
	}
	for _, raw := range values {
		s.Push(append(Value{}, raw...))
	}
	return nil
}

// Serialize implements STACK: renders the whole stack as a data-push
// sequence, top-of-stack last, so UNWRAP on the result restores it exactly.
func (s *Stack) Serialize() Value {
	raw := make([][]byte, len(s.items))
	for i, v := range s.items {
		raw[i] = v
	}
	buf, ref := encodeValues(raw)
	defer ref.Release()
	return append(Value{}, buf...)
}
