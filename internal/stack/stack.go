// Package stack provides the LIFO used by the parser for its current path and
// by the encoders for the containers they are inside.
package stack

type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// NewWithCapacity preallocates room for capacity items, typically the
// expected nesting depth.
func NewWithCapacity[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds items in order, the last one ending up on top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

// Pop removes the top item.  It returns false if the stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return item, false
	}
	item = s.items[n-1]
	clear(s.items[n-1:])
	s.items = s.items[:n-1]
	return item, true
}

// PeekRef returns a pointer to the top item so it can be updated in place, or
// nil if the stack is empty.
func (s *Stack[T]) PeekRef() *T {
	if len(s.items) == 0 {
		return nil
	}
	return &s.items[len(s.items)-1]
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

// ToSlice returns the items from bottom to top.  The result never aliases
// the stack's storage, so it can be kept after the stack changes.
func (s *Stack[T]) ToSlice() []T {
	return append(make([]T, 0, len(s.items)), s.items...)
}
