// Package sbt implements a size-balanced binary search tree (Chen,
// "Size Balanced Tree", 2006): the invariant is that every subtree's
// size dominates both of its nephews' sizes, which bounds height to
// O(log n) without storing any balance factor beyond the subtree size
// already needed for At/Position.
//
// Ported from uit::irsbt. Removal intentionally does not rebalance
// (spec.md §9's documented limitation): a delete-heavy workload can
// degrade the height bound over time. Rebuild the tree (reinsert every
// surviving element) if that matters for a given workload.
package sbt

import (
	"math"

	"github.com/TomTonic/intru/internal/order"
	"github.com/TomTonic/intru/link"
)

func elem[T any, H link.SizeHook[T]](n *T) *link.SizeElem[T] { return H(n).SizeLink() }

// NotFound is returned by Position when the key is absent, standing in
// for the origin library's SIZE_MAX sentinel.
const NotFound = math.MaxInt

// Tree is a size-balanced BST ordered by less. A Tree must only be
// reached through a pointer returned by [New]; never copy it by value —
// its sentinel's self-links would then describe the old address.
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

func (t *Tree[T, H]) sentinelPtr() *T          { return &t.sentinel }
func (t *Tree[T, H]) isSentinel(n *T) bool     { return n == t.sentinelPtr() }
func (t *Tree[T, H]) sizeOf(n *T) int          { return elem[T, H](n).Size() }

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

// maintain applies at most one rotation pair, then recurses into both
// children and both directions to propagate the size-shift effects — the
// cost of the Chen scheme, per spec.md §4.6.
func (t *Tree[T, H]) maintain(rootSlot **T, rightLeaning bool) {
	root := *rootSlot
	er := elem[T, H](root)
	if rightLeaning {
		right := er.Right()
		eright := elem[T, H](right)
		switch {
		case t.sizeOf(eright.Left()) > t.sizeOf(er.Left()):
			t.rightRotate(er.RightSlot())
			t.leftRotate(rootSlot)
		case t.sizeOf(eright.Right()) > t.sizeOf(er.Left()):
			t.leftRotate(rootSlot)
		default:
			return
		}
	} else {
		left := er.Left()
		eleft := elem[T, H](left)
		switch {
		case t.sizeOf(eleft.Right()) > t.sizeOf(er.Right()):
			t.leftRotate(er.LeftSlot())
			t.rightRotate(rootSlot)
		case t.sizeOf(eleft.Left()) > t.sizeOf(er.Right()):
			t.rightRotate(rootSlot)
		default:
			return
		}
	}
	enew := elem[T, H](*rootSlot)
	t.maintain(enew.LeftSlot(), false)
	t.maintain(enew.RightSlot(), true)
	t.maintain(rootSlot, true)
	t.maintain(rootSlot, false)
}

// InsertUnique inserts n if no equal element is present, returning nil.
// If an equal element is already present, it is returned unchanged and n
// is rejected.
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
			t.maintain(rootSlot, false)
		}
		return res
	case t.less(root, n):
		res := t.insertUniqueImpl(er.RightSlot(), n)
		if res == nil {
			er.SetSize(er.Size() + 1)
			t.maintain(rootSlot, true)
		}
		return res
	default:
		return root
	}
}

// InsertMulti inserts n unconditionally, even if an equal element exists.
func (t *Tree[T, H]) InsertMulti(n *T) { t.insertMultiImpl(&t.root, n) }

func (t *Tree[T, H]) insertMultiImpl(rootSlot **T, n *T) {
	root := *rootSlot
	if t.isSentinel(root) {
		t.makeLeaf(rootSlot, n)
		return
	}
	er := elem[T, H](root)
	er.SetSize(er.Size() + 1)
	if t.less(n, root) {
		t.insertMultiImpl(er.LeftSlot(), n)
		t.maintain(rootSlot, false)
	} else {
		t.insertMultiImpl(er.RightSlot(), n)
		t.maintain(rootSlot, true)
	}
}

func (t *Tree[T, H]) makeLeaf(rootSlot **T, n *T) {
	en := elem[T, H](n)
	en.SetLeft(t.sentinelPtr())
	en.SetRight(t.sentinelPtr())
	en.SetSize(1)
	*rootSlot = n
}

// Remove removes the element equal to n, if present, and returns it;
// otherwise returns nil. Removal does not rebalance.
func (t *Tree[T, H]) Remove(n *T) *T {
	return t.removeImpl(&t.root, func(x *T) int { return cmp3(t.less, n, x) })
}

// RemoveBy performs a heterogeneous removal: cmp(x) must return <0 if the
// implicit key sorts before x, >0 if after, 0 on match. This is the
// transparent-comparator capability of spec.md §6 item 2(d), realized
// without binding Tree to a second key type parameter.
func (t *Tree[T, H]) RemoveBy(cmp func(x *T) int) *T {
	return t.removeImpl(&t.root, cmp)
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
		}
		return result
	case c > 0:
		result := t.removeImpl(er.RightSlot(), cmp)
		if result != nil {
			er.SetSize(er.Size() - 1)
		}
		return result
	default:
		t.spliceOut(rootSlot, root)
		return root
	}
}

func (t *Tree[T, H]) spliceOut(rootSlot **T, root *T) {
	er := elem[T, H](root)
	switch {
	case t.isSentinel(er.Right()):
		*rootSlot = er.Left()
	case t.isSentinel(er.Left()):
		*rootSlot = er.Right()
	default:
		r := er.Right()
		er2 := elem[T, H](r)
		if t.isSentinel(er2.Left()) {
			er2.SetLeft(er.Left())
			er2.SetSize(er.Size() - 1)
			*rootSlot = r
			return
		}
		sp := r
		esp := elem[T, H](sp)
		s := esp.Left()
		es := elem[T, H](s)
		esp.SetSize(esp.Size() - 1)
		for !t.isSentinel(es.Left()) {
			sp = s
			esp = elem[T, H](sp)
			esp.SetSize(esp.Size() - 1)
			s = esp.Left()
			es = elem[T, H](s)
		}
		esp.SetLeft(es.Right())
		es.SetRight(r)
		es.SetLeft(er.Left())
		es.SetSize(er.Size() - 1)
		*rootSlot = s
	}
}

// Find returns the element equal to n, or nil if absent.
func (t *Tree[T, H]) Find(n *T) *T {
	return t.FindBy(func(x *T) int { return cmp3(t.less, n, x) })
}

// FindBy is the heterogeneous counterpart of Find; see [Tree.RemoveBy]
// for the comparator contract.
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

// Position returns the in-order index of the element equal to n, or
// [NotFound] if absent. At(Position(n)) == n whenever n is present.
func (t *Tree[T, H]) Position(n *T) int {
	return t.PositionBy(func(x *T) int { return cmp3(t.less, n, x) })
}

// PositionBy is the heterogeneous counterpart of Position.
func (t *Tree[T, H]) PositionBy(cmp func(x *T) int) int {
	root := t.root
	pos := 0
	for !t.isSentinel(root) {
		er := elem[T, H](root)
		c := cmp(root)
		if c < 0 {
			root = er.Left()
			continue
		}
		pos += t.sizeOf(er.Left()) + 1
		if c == 0 {
			return pos - 1
		}
		root = er.Right()
	}
	return NotFound
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

// CountMulti returns how many elements equal n (always 0 or 1 in a
// uniquely-keyed tree; more under InsertMulti).
func (t *Tree[T, H]) CountMulti(n *T) int {
	return t.countMultiBy(t.root, func(x *T) int { return cmp3(t.less, n, x) })
}

func (t *Tree[T, H]) countMultiBy(root *T, cmp func(*T) int) int {
	if t.isSentinel(root) {
		return 0
	}
	er := elem[T, H](root)
	c := cmp(root)
	switch {
	case c < 0:
		return t.countMultiBy(er.Left(), cmp)
	case c > 0:
		return t.countMultiBy(er.Right(), cmp)
	default:
		return 1 + t.countMultiBy(er.Left(), cmp) + t.countMultiBy(er.Right(), cmp)
	}
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
