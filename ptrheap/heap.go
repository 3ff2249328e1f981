// Package ptrheap implements a parent-less, pointer-linked intrusive
// binary heap: a root pointer and an element count, nothing else. Each
// node holds only left/right child pointers — no parent, no array, no
// index field — so it supports only root-only access: Push, Pop, Front.
//
// Arbitrary-element removal is out of scope for this family; reach for
// [github.com/TomTonic/intru/arrayheap] when that's needed. The element
// count doubles as the bit-path that locates the next insertion slot (on
// Push) or the last leaf (on Pop), ported from uit::irheap.
package ptrheap

import (
	"github.com/TomTonic/intru/internal/xmath"
	"github.com/TomTonic/intru/link"
)

func elem[T any, H link.HeapHook[T]](n *T) *link.HeapElem[T] { return H(n).HeapLink() }

// Heap is a parent-less pointer-linked min-heap ordered by less.
type Heap[T any, H link.HeapHook[T]] struct {
	head *T
	size uint
	less func(a, b *T) bool
}

// New returns an empty heap ordered by less.
func New[T any, H link.HeapHook[T]](less func(a, b *T) bool) *Heap[T, H] {
	return &Heap[T, H]{less: less}
}

// Front returns the root element, or nil if empty.
func (h *Heap[T, H]) Front() *T { return h.head }

// Empty reports whether the heap holds no elements.
func (h *Heap[T, H]) Empty() bool { return h.head == nil }

// Size returns the number of elements.
func (h *Heap[T, H]) Size() uint { return h.size }

// Clear detaches every element without touching payload bytes.
func (h *Heap[T, H]) Clear() { h.head = nil; h.size = 0 }

// Push inserts n and restores the heap property, walking down from the
// root along the size-derived path. At the first ancestor a where
// less(n, a) holds, n replaces a and a is carried down the remaining
// path, swapping into each slot in turn — a sift-up rewritten for a tree
// without parent links.
func (h *Heap[T, H]) Push(n *T) {
	h.size++
	curPtr := &h.head
	cur := h.head
	path := xmath.PathBits(h.size)

	for path != xmath.PathBitMask {
		if h.less(n, cur) {
			*curPtr = n
			for path != xmath.PathBitMask {
				en := elem[T, H](n)
				if path&xmath.PathBitMask != 0 {
					en.SetRight(cur)
					en.SetLeft(elem[T, H](cur).Left())
					n, cur = cur, elem[T, H](cur).Right()
				} else {
					en.SetRight(elem[T, H](cur).Right())
					en.SetLeft(cur)
					n, cur = cur, elem[T, H](cur).Left()
				}
				path <<= 1
			}
			elem[T, H](n).SetLeft(nil)
			elem[T, H](n).SetRight(nil)
			return
		}
		if path&xmath.PathBitMask != 0 {
			curPtr = elem[T, H](cur).RightSlot()
		} else {
			curPtr = elem[T, H](cur).LeftSlot()
		}
		cur = *curPtr
		path <<= 1
	}

	*curPtr = n
	elem[T, H](n).SetLeft(nil)
	elem[T, H](n).SetRight(nil)
}

// Pop removes and returns the root element, or nil if the heap is empty.
func (h *Heap[T, H]) Pop() *T {
	top := h.head
	if top == nil {
		return nil
	}
	if h.size <= 1 {
		h.head = nil
		h.size = 0
		return top
	}
	last := h.removeLastLeaf()
	lastElem, topElem := elem[T, H](last), elem[T, H](top)
	lastElem.SetLeft(topElem.Left())
	lastElem.SetRight(topElem.Right())
	h.head = last
	h.size--
	h.siftDown(&h.head)
	return top
}

func (h *Heap[T, H]) removeLastLeaf() *T {
	curPtr := &h.head
	path := xmath.PathBits(h.size)
	for path != xmath.PathBitMask {
		cur := *curPtr
		if path&xmath.PathBitMask != 0 {
			curPtr = elem[T, H](cur).RightSlot()
		} else {
			curPtr = elem[T, H](cur).LeftSlot()
		}
		path <<= 1
	}
	last := *curPtr
	*curPtr = nil
	return last
}

// swapWithRightChild promotes cur's right child into cur's position: the
// promoted node keeps cur's left subtree as its own left child and takes
// cur as its right child, while cur takes over the promoted node's two
// former subtrees — needed because there are no parent pointers to fix
// up after the swap.
func swapWithRightChild[T any, H link.HeapHook[T]](cur, child *T) {
	ec, echild := elem[T, H](cur), elem[T, H](child)
	ec.SetRight(echild.Right())
	echild.SetRight(cur)
	t := ec.Left()
	ec.SetLeft(echild.Left())
	echild.SetLeft(t)
}

func swapWithLeftChild[T any, H link.HeapHook[T]](cur, child *T) {
	ec, echild := elem[T, H](cur), elem[T, H](child)
	t := ec.Right()
	ec.SetRight(echild.Right())
	echild.SetRight(t)
	ec.SetLeft(echild.Left())
	echild.SetLeft(cur)
}

func (h *Heap[T, H]) siftDown(curPtr **T) {
	cur := *curPtr
	left := elem[T, H](cur).Left()
	for left != nil {
		right := elem[T, H](cur).Right()
		if right != nil && h.less(right, left) {
			if h.less(right, cur) {
				swapWithRightChild[T, H](cur, right)
				*curPtr = right
				curPtr = elem[T, H](right).RightSlot()
			} else {
				break
			}
		} else {
			if h.less(left, cur) {
				swapWithLeftChild[T, H](cur, left)
				*curPtr = left
				curPtr = elem[T, H](left).LeftSlot()
			} else {
				break
			}
		}
		left = elem[T, H](cur).Left()
	}
}
