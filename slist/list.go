// Package slist implements intrusive singly-linked lists: a head-only
// variant with O(1) push/pop at the front, and a head+tail variant
// ([TailList]) that adds O(1) push_back.
//
// Neither variant allocates on insertion: every node is a payload pointer
// supplied by the caller, which must embed a [link.SLElem] and expose it
// through [link.SLHook].
package slist

import "github.com/TomTonic/intru/link"

// List is a head-only intrusive singly-linked list. The zero value is an
// empty list.
type List[T any, H link.SLHook[T]] struct {
	head *T
}

func elem[T any, H link.SLHook[T]](n *T) *link.SLElem[T] { return H(n).SLLink() }

// Empty reports whether the list holds no elements.
func (l *List[T, H]) Empty() bool { return l.head == nil }

// Clear detaches every element without touching payload bytes.
func (l *List[T, H]) Clear() { l.head = nil }

// Front returns the first element, or nil if the list is empty.
func (l *List[T, H]) Front() *T { return l.head }

// PushFront makes n the new head. n must not already be linked into any
// list through this linkage site.
func (l *List[T, H]) PushFront(n *T) {
	elem[T, H](n).SetNext(l.head)
	l.head = n
}

// PopFront removes and returns the former head, or nil if the list was empty.
func (l *List[T, H]) PopFront() *T {
	first := l.head
	if first == nil {
		return nil
	}
	l.head = elem[T, H](first).Next()
	return first
}

// Remove walks the chain looking for n; on a match it unlinks and returns
// n, otherwise it returns nil. O(n).
func (l *List[T, H]) Remove(n *T) *T {
	var prev *T
	cur := l.head
	for cur != nil {
		if cur == n {
			next := elem[T, H](cur).Next()
			if prev == nil {
				l.head = next
			} else {
				elem[T, H](prev).SetNext(next)
			}
			return n
		}
		prev = cur
		cur = elem[T, H](cur).Next()
	}
	return nil
}

// MoveFrom transfers other's chain to l and empties other. Self-move is a
// no-op.
func (l *List[T, H]) MoveFrom(other *List[T, H]) {
	if l == other {
		return
	}
	l.head = other.head
	other.head = nil
}

// Clone returns a list that aliases the same chain as l: both lists share
// the underlying nodes through this linkage site. This is legal because
// the linkage fields remain owned by the payload, but the caller must
// ensure no structural mutation (PushFront, PopFront, Remove) happens
// through both aliases concurrently with the other's use of the chain —
// a later PopFront on one alias silently desynchronizes the other, which
// still believes the popped node is present.
func (l *List[T, H]) Clone() *List[T, H] {
	return &List[T, H]{head: l.head}
}

// Each calls fn for every element from front to back.
func (l *List[T, H]) Each(fn func(*T)) {
	for n := l.head; n != nil; n = elem[T, H](n).Next() {
		fn(n)
	}
}
