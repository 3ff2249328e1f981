// Package wbttd implements a top-down weight-balanced binary search
// tree: the same BB[3,3] ratio as [github.com/TomTonic/intru/wbt], but
// [Tree.InsertMulti] walks down once, eagerly updating sizes and
// rebalancing, instead of recursing and fixing up the ratio on the way
// back out.
//
// Grounded on uit::irwbt's insert_multi_with_queue and
// uit::detail::top_down_queue: a rotation only ever touches a node and
// its immediate child, so once a node's children are both known-final
// it can be queued for rebalancing and the walk can keep moving forward
// without waiting for the whole path to unwind. This package defers the
// actual rotation decision to a bounded 4-entry ring buffer instead of
// interleaving it into the descent bit-by-bit the way the original's
// hand-unrolled look-ahead branches do; the buffer only strictly needs
// to hold back one level; four is kept to mirror the source's own queue
// capacity constant. InsertUnique, Remove, and the read-only queries
// fall back to the same plain recursive descent as wbt: the top-down
// queue in the source is wired specifically to the unconditional
// multi-insert, since insert_unique and remove both need to know
// whether a match exists before any size bookkeeping commits, which the
// eager top-down scheme cannot undo once started.
package wbttd

import (
	"github.com/TomTonic/intru/internal/order"
	"github.com/TomTonic/intru/link"
)

func elem[T any, H link.SizeHook[T]](n *T) *link.SizeElem[T] { return H(n).SizeLink() }

const queueCapacity = 4

// pathQueue is a fixed-capacity ring buffer of pending ancestor slots.
type pathQueue[T any] struct {
	slots [queueCapacity]**T
	head  int
	size  int
}

// push enqueues slot, evicting and returning the oldest entry if the
// buffer was already full.
func (q *pathQueue[T]) push(slot **T) **T {
	var evicted **T
	if q.size == queueCapacity {
		evicted = q.slots[q.head]
		q.head = (q.head + 1) % queueCapacity
		q.size--
	}
	idx := (q.head + q.size) % queueCapacity
	q.slots[idx] = slot
	q.size++
	return evicted
}

func (q *pathQueue[T]) pop() (**T, bool) {
	if q.size == 0 {
		return nil, false
	}
	s := q.slots[q.head]
	q.head = (q.head + 1) % queueCapacity
	q.size--
	return s, true
}

// Tree is a top-down weight-balanced BST ordered by less. A Tree must
// only be reached through a pointer returned by [New]; never copy it by
// value.
type Tree[T any, H link.SizeHook[T]] struct {
	sentinel T
	root     *T
	less     order.Less[T]
}

// New returns an empty tree ordered by less.
func New[T any, H link.SizeHook[T]](less order.Less[T]) *Tree[T, H] {
	t := &Tree[T, H]{less: less}
	s := elem[T, H](t.sentinelPtr())
	s.SetLeft(t.sentinelPtr())
	s.SetRight(t.sentinelPtr())
	s.SetSize(0)
	t.root = t.sentinelPtr()
	return t
}

func (t *Tree[T, H]) sentinelPtr() *T      { return &t.sentinel }
func (t *Tree[T, H]) isSentinel(n *T) bool { return n == t.sentinelPtr() }
func (t *Tree[T, H]) sizeOf(n *T) int      { return elem[T, H](n).Size() }

// Empty reports whether the tree holds no elements.
func (t *Tree[T, H]) Empty() bool { return t.isSentinel(t.root) }

// Clear detaches every element without touching payload bytes.
func (t *Tree[T, H]) Clear() { t.root = t.sentinelPtr() }

// Size returns the number of elements in the tree.
func (t *Tree[T, H]) Size() int { return t.sizeOf(t.root) }

func (t *Tree[T, H]) leftRotate(nSlot **T) {
	n := *nSlot
	en := elem[T, H](n)
	s := en.Right()
	es := elem[T, H](s)
	en.SetRight(es.Left())
	es.SetLeft(n)
	es.SetSize(en.Size())
	en.SetSize(t.sizeOf(en.Right()) + t.sizeOf(en.Left()) + 1)
	*nSlot = s
}

func (t *Tree[T, H]) rightRotate(nSlot **T) {
	n := *nSlot
	en := elem[T, H](n)
	s := en.Left()
	es := elem[T, H](s)
	en.SetLeft(es.Right())
	es.SetRight(n)
	es.SetSize(en.Size())
	en.SetSize(t.sizeOf(en.Right()) + t.sizeOf(en.Left()) + 1)
	*nSlot = s
}

// maintain checks both BB[3,3] directions at slot and applies at most
// one single-or-double rotation; a node fresh off the insertion path
// can only ever be heavy on one side at a time.
func (t *Tree[T, H]) maintain(slot **T) {
	root := *slot
	er := elem[T, H](root)
	l, r := t.sizeOf(er.Left()), t.sizeOf(er.Right())
	switch {
	case l*3+1 < r:
		right := er.Right()
		eright := elem[T, H](right)
		if t.sizeOf(eright.Right())*2 < t.sizeOf(eright.Left())+1 {
			t.rightRotate(er.RightSlot())
		}
		t.leftRotate(slot)
	case r*3+1 < l:
		left := er.Left()
		eleft := elem[T, H](left)
		if t.sizeOf(eleft.Left())*2 < t.sizeOf(eleft.Right())+1 {
			t.leftRotate(er.LeftSlot())
		}
		t.rightRotate(slot)
	}
}

func (t *Tree[T, H]) makeLeaf(slot **T, n *T) {
	en := elem[T, H](n)
	en.SetLeft(t.sentinelPtr())
	en.SetRight(t.sentinelPtr())
	en.SetSize(1)
	*slot = n
}

// InsertMulti inserts n unconditionally, even if an equal element
// exists, walking the path once top-down.
func (t *Tree[T, H]) InsertMulti(n *T) {
	var q pathQueue[T]
	slot := &t.root
	for {
		cur := *slot
		if t.isSentinel(cur) {
			t.makeLeaf(slot, n)
			break
		}
		er := elem[T, H](cur)
		var childSlot **T
		if t.less(n, cur) {
			childSlot = er.LeftSlot()
		} else {
			childSlot = er.RightSlot()
		}
		er.SetSize(er.Size() + 1)
		if evicted := q.push(slot); evicted != nil {
			t.maintain(evicted)
		}
		slot = childSlot
	}
	for {
		s, ok := q.pop()
		if !ok {
			break
		}
		t.maintain(s)
	}
}

// InsertUnique inserts n if no equal element is present, returning nil.
// If an equal element is already present, it is returned unchanged and n
// is rejected. Implemented recursively: see the package doc for why the
// top-down queue is reserved for InsertMulti.
func (t *Tree[T, H]) InsertUnique(n *T) *T { return t.insertUniqueImpl(&t.root, n) }

func (t *Tree[T, H]) insertUniqueImpl(rootSlot **T, n *T) *T {
	root := *rootSlot
	if t.isSentinel(root) {
		t.makeLeaf(rootSlot, n)
		return nil
	}
	er := elem[T, H](root)
	switch {
	case t.less(n, root):
		res := t.insertUniqueImpl(er.LeftSlot(), n)
		if res == nil {
			er.SetSize(er.Size() + 1)
			t.maintain(rootSlot)
		}
		return res
	case t.less(root, n):
		res := t.insertUniqueImpl(er.RightSlot(), n)
		if res == nil {
			er.SetSize(er.Size() + 1)
			t.maintain(rootSlot)
		}
		return res
	default:
		return root
	}
}

// Remove removes the element equal to n, if present, and returns it;
// otherwise returns nil.
func (t *Tree[T, H]) Remove(n *T) *T {
	return t.removeImpl(&t.root, func(x *T) int { return cmp3(t.less, n, x) })
}

// RemoveBy performs a heterogeneous removal: cmp(x) must return <0 if the
// implicit key sorts before x, >0 if after, 0 on match.
func (t *Tree[T, H]) RemoveBy(cmp func(x *T) int) *T {
	return t.removeImpl(&t.root, cmp)
}

// RemoveLeftmost removes and returns the minimum element of the whole
// tree, or nil if empty — a dedicated operation for priority-queue-style
// draining, ported from the source's top_down_wremove_leftmost_for_remove.
func (t *Tree[T, H]) RemoveLeftmost() *T {
	if t.Empty() {
		return nil
	}
	return t.removeLeftmost(&t.root)
}

func (t *Tree[T, H]) removeImpl(rootSlot **T, cmp func(*T) int) *T {
	root := *rootSlot
	if t.isSentinel(root) {
		return nil
	}
	er := elem[T, H](root)
	c := cmp(root)
	switch {
	case c < 0:
		result := t.removeImpl(er.LeftSlot(), cmp)
		if result != nil {
			er.SetSize(er.Size() - 1)
			t.maintain(rootSlot)
		}
		return result
	case c > 0:
		result := t.removeImpl(er.RightSlot(), cmp)
		if result != nil {
			er.SetSize(er.Size() - 1)
			t.maintain(rootSlot)
		}
		return result
	default:
		switch {
		case t.isSentinel(er.Right()):
			*rootSlot = er.Left()
		case t.isSentinel(er.Left()):
			*rootSlot = er.Right()
		default:
			replacement := t.removeLeftmost(er.RightSlot())
			erep := elem[T, H](replacement)
			erep.SetLeft(er.Left())
			erep.SetRight(er.Right())
			erep.SetSize(er.Size() - 1)
			*rootSlot = replacement
			t.maintain(rootSlot)
		}
		return root
	}
}

func (t *Tree[T, H]) removeLeftmost(rootSlot **T) *T {
	root := *rootSlot
	er := elem[T, H](root)
	if t.isSentinel(er.Left()) {
		*rootSlot = er.Right()
		return root
	}
	result := t.removeLeftmost(er.LeftSlot())
	er.SetSize(er.Size() - 1)
	t.maintain(rootSlot)
	return result
}

// Find returns the element equal to n, or nil if absent.
func (t *Tree[T, H]) Find(n *T) *T {
	return t.FindBy(func(x *T) int { return cmp3(t.less, n, x) })
}

// FindBy is the heterogeneous counterpart of Find.
func (t *Tree[T, H]) FindBy(cmp func(x *T) int) *T {
	root := t.root
	for !t.isSentinel(root) {
		c := cmp(root)
		switch {
		case c < 0:
			root = elem[T, H](root).Left()
		case c > 0:
			root = elem[T, H](root).Right()
		default:
			return root
		}
	}
	return nil
}

// At returns the k-th element in in-order position (0-based), or nil if
// k is out of range.
func (t *Tree[T, H]) At(pos int) *T {
	root := t.root
	for !t.isSentinel(root) {
		er := elem[T, H](root)
		lsize := t.sizeOf(er.Left())
		switch {
		case lsize == pos:
			return root
		case lsize > pos:
			root = er.Left()
		default:
			pos -= lsize + 1
			root = er.Right()
		}
	}
	return nil
}

// Height returns the tree's height (0 for an empty tree).
func (t *Tree[T, H]) Height() int { return t.heightImpl(t.root) }

func (t *Tree[T, H]) heightImpl(root *T) int {
	if t.isSentinel(root) {
		return 0
	}
	er := elem[T, H](root)
	lh, rh := t.heightImpl(er.Left()), t.heightImpl(er.Right())
	if lh > rh {
		return lh + 1
	}
	return rh + 1
}

func cmp3[T any](less order.Less[T], a, b *T) int {
	switch {
	case less(a, b):
		return -1
	case less(b, a):
		return 1
	default:
		return 0
	}
}
