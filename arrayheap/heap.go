// Package arrayheap implements a 4-ary, array-backed intrusive min-heap.
// Each element carries its own position in the backing slice (a
// [link.IndexElem]), which is how Remove and the Sift* operations locate
// an arbitrary element in O(1) before repairing the heap in O(log n).
//
// Ported from uit::iiqheap: parent(i) = (i-1)/4, child0(i) = 4*i+1.
package arrayheap

import "github.com/TomTonic/intru/link"

func elem[T any, H link.IndexHook[T]](n *T) *link.IndexElem { return H(n).IndexLink() }

func parentIndex(i int) int { return (i - 1) >> 2 }
func child0Index(i int) int { return (i << 2) + 1 }

// Heap is a 4-ary min-heap ordered by less. The zero value (with a nil
// less) is not usable; construct with [New].
type Heap[T any, H link.IndexHook[T]] struct {
	storage []*T
	less    func(a, b *T) bool
	fixed   bool
}

// New returns an empty heap ordered by less, growing geometrically as
// needed.
func New[T any, H link.IndexHook[T]](less func(a, b *T) bool) *Heap[T, H] {
	return &Heap[T, H]{less: less}
}

// NewFixed returns an empty heap backed by a slice preallocated to
// capacity cap. The heap never grows past that capacity: a Push onto a
// full fixed-capacity heap panics (see [Heap.Push]).
func NewFixed[T any, H link.IndexHook[T]](less func(a, b *T) bool, capacity int) *Heap[T, H] {
	return &Heap[T, H]{less: less, storage: make([]*T, 0, capacity), fixed: true}
}

// Len returns the number of elements in the heap.
func (h *Heap[T, H]) Len() int { return len(h.storage) }

// Empty reports whether the heap holds no elements.
func (h *Heap[T, H]) Empty() bool { return len(h.storage) == 0 }

// Clear detaches every element without touching payload bytes.
func (h *Heap[T, H]) Clear() { h.storage = h.storage[:0] }

// Top returns the root element (the minimum under less), or nil if empty.
func (h *Heap[T, H]) Top() *T {
	if len(h.storage) == 0 {
		return nil
	}
	return h.storage[0]
}

// Push inserts n and restores the heap property. If the heap is not
// fixed-capacity, the backing slice grows as needed; growth is geometric,
// by appending, matching Go slice semantics (the C++ origin's explicit
// allocator-relocation dance has no counterpart once append owns the
// storage).
//
// spec.md §9 leaves open whether a fixed-capacity heap's overflow should
// be an explicit precondition or a checked error; Go's append would
// silently reallocate past the requested capacity rather than overrun
// memory (there is no UB to inherit here), so this module resolves the
// question on the "checked" side: Push panics on overflow of a
// fixed-capacity heap instead of silently reallocating out from under a
// caller who asked for a capacity bound.
func (h *Heap[T, H]) Push(n *T) {
	if h.fixed && len(h.storage) == cap(h.storage) {
		panic("arrayheap: push would exceed fixed capacity")
	}
	idx := len(h.storage)
	h.storage = append(h.storage, nil)
	h.siftUpAt(n, idx)
}

// Pop removes and returns the root element, or nil if the heap is empty.
func (h *Heap[T, H]) Pop() *T {
	if len(h.storage) == 0 {
		return nil
	}
	top := h.storage[0]
	last := h.storage[len(h.storage)-1]
	h.storage = h.storage[:len(h.storage)-1]
	if len(h.storage) > 0 {
		h.siftDownAt(last, 0)
	}
	return top
}

// Remove extracts an arbitrary element, located via its own index field,
// in O(log n).
func (h *Heap[T, H]) Remove(n *T) {
	idx := elem[T, H](n).Index()
	last := len(h.storage) - 1
	lastNode := h.storage[last]
	h.storage = h.storage[:last]
	if idx >= len(h.storage) {
		return
	}
	if idx > 0 && h.less(lastNode, h.storage[parentIndex(idx)]) {
		h.siftUpAt(lastNode, idx)
	} else {
		h.siftDownAt(lastNode, idx)
	}
}

// SiftUp restores the heap property after the caller decreases n's key
// (moving n toward the root of this min-heap), assuming n is currently
// stored at its recorded index.
func (h *Heap[T, H]) SiftUp(n *T) {
	idx := elem[T, H](n).Index()
	if idx > 0 {
		h.siftUpAt(n, idx)
	}
}

// SiftDown restores the heap property after the caller increases n's key
// (moving n away from the root of this min-heap).
func (h *Heap[T, H]) SiftDown(n *T) {
	h.siftDownAt(n, elem[T, H](n).Index())
}

// Sift picks the correct direction automatically: use this when the
// caller doesn't know whether the key grew or shrank.
func (h *Heap[T, H]) Sift(n *T) {
	idx := elem[T, H](n).Index()
	if idx > 0 && h.less(n, h.storage[parentIndex(idx)]) {
		h.siftUpAt(n, idx)
	} else {
		h.siftDownAt(n, idx)
	}
}

func (h *Heap[T, H]) place(n *T, idx int) {
	h.storage[idx] = n
	elem[T, H](n).SetIndex(idx)
}

func (h *Heap[T, H]) siftUpAt(cur *T, curIdx int) {
	for curIdx > 0 {
		parentIdx := parentIndex(curIdx)
		parent := h.storage[parentIdx]
		if !h.less(cur, parent) {
			break
		}
		h.place(parent, curIdx)
		curIdx = parentIdx
	}
	h.place(cur, curIdx)
}

// siftDownAt descends from curIdx, scanning up to four children at a
// time: the loop handles the full-fanout case, and the trailing switch
// handles the ragged 1..3-child edge once fewer than four children
// remain.
func (h *Heap[T, H]) siftDownAt(cur *T, curIdx int) {
	size := len(h.storage)
	childIdx := child0Index(curIdx)

	for childIdx+3 < size {
		minIdx := childIdx
		if h.less(h.storage[childIdx+1], h.storage[minIdx]) {
			minIdx = childIdx + 1
		}
		if h.less(h.storage[childIdx+2], h.storage[minIdx]) {
			minIdx = childIdx + 2
		}
		if h.less(h.storage[childIdx+3], h.storage[minIdx]) {
			minIdx = childIdx + 3
		}
		if !h.less(h.storage[minIdx], cur) {
			h.place(cur, curIdx)
			return
		}
		h.place(h.storage[minIdx], curIdx)
		curIdx = minIdx
		childIdx = child0Index(curIdx)
	}

	if childIdx < size {
		minIdx := childIdx
		switch size - childIdx {
		case 3:
			if h.less(h.storage[childIdx+2], h.storage[minIdx]) {
				minIdx = childIdx + 2
			}
			fallthrough
		case 2:
			if h.less(h.storage[childIdx+1], h.storage[minIdx]) {
				minIdx = childIdx + 1
			}
		}
		if h.less(h.storage[minIdx], cur) {
			h.place(h.storage[minIdx], curIdx)
			curIdx = minIdx
		}
	}
	h.place(cur, curIdx)
}
