// Package wbt implements a recursive weight-balanced binary search tree,
// BB[δ=3, γ=3] in the notation of Hirai and Yamamoto's "Balancing
// Weight-Balanced Trees" (2011): a subtree is considered too heavy on
// one side once the other side's weight, scaled by 3, can no longer
// cover it, and a single or double rotation restores the ratio.
//
// Ported from uit::irwbt's maintain_left_leaning/maintain_right_leaning
// and left_rotate/right_rotate. Unlike [github.com/TomTonic/intru/sbt],
// removal here does rebalance: the weight-balance invariant needs to
// hold after every mutation for the height bound to mean anything, so
// removeLeftmost folds a maintain call into its unwind just like insert
// does. See [github.com/TomTonic/intru/wbttd] for the top-down variant
// with a bounded look-ahead queue, grounded on the same source's
// insert_multi_with_queue.
package wbt

import (
	"github.com/TomTonic/intru/internal/order"
	"github.com/TomTonic/intru/link"
)

func elem[T any, H link.SizeHook[T]](n *T) *link.SizeElem[T] { return H(n).SizeLink() }

// Tree is a weight-balanced BST ordered by less. A Tree must only be
// reached through a pointer returned by [New]; never copy it by value.
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

// maintainRightLeaning restores the BB[3,3] ratio after root's right
// subtree has grown (or its left has shrunk) relative to the other side.
func (t *Tree[T, H]) maintainRightLeaning(rootSlot **T) {
	root := *rootSlot
	er := elem[T, H](root)
	if t.sizeOf(er.Left())*3+1 >= t.sizeOf(er.Right()) {
		return
	}
	right := er.Right()
	eright := elem[T, H](right)
	if t.sizeOf(eright.Right())*2 < t.sizeOf(eright.Left())+1 {
		t.rightRotate(er.RightSlot())
	}
	t.leftRotate(rootSlot)
}

// maintainLeftLeaning is the mirror image of maintainRightLeaning.
func (t *Tree[T, H]) maintainLeftLeaning(rootSlot **T) {
	root := *rootSlot
	er := elem[T, H](root)
	if t.sizeOf(er.Right())*3+1 >= t.sizeOf(er.Left()) {
		return
	}
	left := er.Left()
	eleft := elem[T, H](left)
	if t.sizeOf(eleft.Left())*2 < t.sizeOf(eleft.Right())+1 {
		t.leftRotate(er.LeftSlot())
	}
	t.rightRotate(rootSlot)
}

func (t *Tree[T, H]) makeLeaf(rootSlot **T, n *T) {
	en := elem[T, H](n)
	en.SetLeft(t.sentinelPtr())
	en.SetRight(t.sentinelPtr())
	en.SetSize(1)
	*rootSlot = n
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
			t.maintainLeftLeaning(rootSlot)
		}
		return res
	case t.less(root, n):
		res := t.insertUniqueImpl(er.RightSlot(), n)
		if res == nil {
			er.SetSize(er.Size() + 1)
			t.maintainRightLeaning(rootSlot)
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
		t.maintainLeftLeaning(rootSlot)
	} else {
		t.insertMultiImpl(er.RightSlot(), n)
		t.maintainRightLeaning(rootSlot)
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
			t.maintainRightLeaning(rootSlot)
		}
		return result
	case c > 0:
		result := t.removeImpl(er.RightSlot(), cmp)
		if result != nil {
			er.SetSize(er.Size() - 1)
			t.maintainLeftLeaning(rootSlot)
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
			t.maintainLeftLeaning(rootSlot)
		}
		return root
	}
}

// removeLeftmost descends to the leftmost node of the subtree at
// rootSlot, splices it out, and restores the weight-balance ratio at
// every ancestor on the way back up.
func (t *Tree[T, H]) removeLeftmost(rootSlot **T) *T {
	root := *rootSlot
	er := elem[T, H](root)
	if t.isSentinel(er.Left()) {
		*rootSlot = er.Right()
		return root
	}
	result := t.removeLeftmost(er.LeftSlot())
	er.SetSize(er.Size() - 1)
	t.maintainRightLeaning(rootSlot)
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
