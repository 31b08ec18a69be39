package pumpkindb

// ReturnStack implements the environment's return stack (spec §4.2),
// operated by >R/R>. It is bounded only by memory, so it is a thin wrapper
// around Stack rather than a fixed-size ring.
type ReturnStack struct {
	Stack
}

// NewReturnStack returns an empty return stack.
func NewReturnStack() *ReturnStack {
	return &ReturnStack{}
}
