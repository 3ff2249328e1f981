// Package dlist implements an intrusive circular doubly-linked list. The
// anchor is not a node — dereferencing it as a payload is never done —
// but it occupies a real value of the payload type so that the forward
// and backward links can treat it exactly like any other node address
// without any unsafe pointer-arithmetic trick. See [List] for the
// resulting invariants.
package dlist

import "github.com/TomTonic/intru/link"

func elem[T any, H link.DLHook[T]](n *T) *link.DLElem[T] { return H(n).DLLink() }

// List is a circular, headless doubly-linked list. The empty state is
// both anchor links referring to the anchor itself; a non-empty list
// closes the cycle so that the last element's forward link refers back
// to the anchor, which is how Next/Prev know to stop.
//
// A List must only be reached through a pointer returned by [New]; never
// copy a List by value once it has been used — the anchor's self-links
// would then point at the old address, not the copy's.
type List[T any, H link.DLHook[T]] struct {
	anchor T
}

// New returns an empty list.
func New[T any, H link.DLHook[T]]() *List[T, H] {
	l := &List[T, H]{}
	a := elem[T, H](l.self())
	a.SetNext(l.self())
	a.SetPrev(l.self())
	return l
}

func (l *List[T, H]) self() *T { return &l.anchor }

// Empty reports whether the list holds no elements.
func (l *List[T, H]) Empty() bool {
	return elem[T, H](l.self()).Next() == l.self()
}

// Clear detaches every element without touching payload bytes.
func (l *List[T, H]) Clear() {
	a := elem[T, H](l.self())
	a.SetNext(l.self())
	a.SetPrev(l.self())
}

// Front returns the first element, or nil if the list is empty.
func (l *List[T, H]) Front() *T {
	if l.Empty() {
		return nil
	}
	return elem[T, H](l.self()).Next()
}

// Back returns the last element, or nil if the list is empty.
func (l *List[T, H]) Back() *T {
	if l.Empty() {
		return nil
	}
	return elem[T, H](l.self()).Prev()
}

// insertBefore splices n in immediately before at (at may be the anchor).
func (l *List[T, H]) insertBefore(at, n *T) {
	p := elem[T, H](at).Prev()
	en := elem[T, H](n)
	en.SetNext(at)
	en.SetPrev(p)
	elem[T, H](p).SetNext(n)
	elem[T, H](at).SetPrev(n)
}

// PushFront makes n the new first element. O(1).
func (l *List[T, H]) PushFront(n *T) {
	l.insertBefore(elem[T, H](l.self()).Next(), n)
}

// PushBack makes n the new last element. O(1).
func (l *List[T, H]) PushBack(n *T) {
	l.insertBefore(l.self(), n)
}

// Remove unlinks n from whichever list it currently occupies (the list
// instance isn't consulted: the cycle is self-describing) and returns n.
func Remove[T any, H link.DLHook[T]](n *T) *T {
	en := elem[T, H](n)
	next, prev := en.Next(), en.Prev()
	elem[T, H](prev).SetNext(next)
	elem[T, H](next).SetPrev(prev)
	return n
}

// Remove unlinks n from this list and returns it. Equivalent to the
// package-level [Remove], kept as a method for API uniformity with the
// other containers.
func (l *List[T, H]) Remove(n *T) *T { return Remove[T, H](n) }

// PopFront removes and returns the first element, or nil if empty.
func (l *List[T, H]) PopFront() *T {
	if l.Empty() {
		return nil
	}
	return Remove[T, H](elem[T, H](l.self()).Next())
}

// PopBack removes and returns the last element, or nil if empty.
func (l *List[T, H]) PopBack() *T {
	if l.Empty() {
		return nil
	}
	return Remove[T, H](elem[T, H](l.self()).Prev())
}

// MoveFrom transfers other's chain to l and resets other to empty. The
// first/last elements' near links are rewired to point at l's anchor
// instead of other's. Self-move is a no-op.
func (l *List[T, H]) MoveFrom(other *List[T, H]) {
	if l == other {
		return
	}
	if other.Empty() {
		l.Clear()
		return
	}
	first, last := elem[T, H](other.self()).Next(), elem[T, H](other.self()).Prev()
	elem[T, H](l.self()).SetNext(first)
	elem[T, H](l.self()).SetPrev(last)
	elem[T, H](first).SetPrev(l.self())
	elem[T, H](last).SetNext(l.self())
	other.Clear()
}

// Each calls fn for every element from front to back.
func (l *List[T, H]) Each(fn func(*T)) {
	for n := elem[T, H](l.self()).Next(); n != l.self(); n = elem[T, H](n).Next() {
		fn(n)
	}
}

// EachReverse calls fn for every element from back to front.
func (l *List[T, H]) EachReverse(fn func(*T)) {
	for n := elem[T, H](l.self()).Prev(); n != l.self(); n = elem[T, H](n).Prev() {
		fn(n)
	}
}
