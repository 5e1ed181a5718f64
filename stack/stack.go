package stack

import "github.com/pkg/errors"

// ErrStackUnderflow is raised when popping or peeking an empty stack.
// Seeing it means a push and a pop got out of balance somewhere.
var ErrStackUnderflow = errors.New("stack underflow")

// Stack is a last-in-first-out container. The zero value is ready to use.
type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top item. It panics on an empty stack.
func (s *Stack[T]) Pop() T {
	v, ok := s.TryPop()
	if !ok {
		panic(errors.WithStack(ErrStackUnderflow))
	}
	return v
}

// TryPop is Pop without the panic.
func (s *Stack[T]) TryPop() (v T, ok bool) {
	lastIdx := len(s.items) - 1
	if lastIdx < 0 {
		return v, false
	}
	v = s.items[lastIdx]
	var zero T
	s.items[lastIdx] = zero
	s.items = s.items[:lastIdx]
	return v, true
}

// Peek returns the top item without removing it. It panics on an empty stack.
func (s *Stack[T]) Peek() T {
	if len(s.items) == 0 {
		panic(errors.WithStack(ErrStackUnderflow))
	}
	return s.items[len(s.items)-1]
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// Each walks the stack from the top down and stops when fn returns false.
func (s *Stack[T]) Each(fn func(T) bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if !fn(s.items[i]) {
			return
		}
	}
}
