package stack

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPushPop(t *testing.T) {
	s := New[int]()
	if !s.IsEmpty() {
		t.Fatal("new stack should be empty")
	}
	s.Push(1, 2)
	s.Push(3)
	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop: expected %d, got %d (%v)", want, got, ok)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("Pop on empty stack should fail")
	}
	if !s.IsEmpty() {
		t.Fatal("stack should be empty again")
	}
}

func TestPeekRef(t *testing.T) {
	s := NewWithCapacity[string](4)
	if s.PeekRef() != nil {
		t.Fatal("PeekRef on empty stack should be nil")
	}
	s.Push("a")
	*s.PeekRef() = "b"
	if top, _ := s.Pop(); top != "b" {
		t.Fatalf("expected b, got %q", top)
	}
}

func TestToSliceIsACopy(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)
	snapshot := s.ToSlice()
	s.Pop()
	s.Push(9)
	if diff := cmp.Diff([]int{1, 2, 3}, snapshot); diff != "" {
		t.Fatalf("snapshot changed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{}, New[int]().ToSlice()); diff != "" {
		t.Fatalf("empty snapshot (-want, +got):\n%s", diff)
	}
}
