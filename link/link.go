// Package link defines the linkage fields and hook interfaces shared by
// every intrusive container in this module. A payload type that wants to
// live inside, say, a doubly-linked list embeds a [DLElem] and exposes it
// through a one-method interface; the container is then instantiated with
// that method as its "hook" type parameter. Two containers can address two
// distinct linkage sites on the same payload by pointing at two different
// embedded fields through two different hook methods.
//
// This is the Go rendering of the member-pointer-parameter trick the
// origin library uses: since Go has no pointer-to-member and no safe
// container_of, the hook interface stands in for "the offset of field F
// within T".
package link

// SLElem is the linkage field for a singly-linked list node (head-only or
// head+tail).
type SLElem[T any] struct {
	next *T
}

// Next returns the node following the element, or nil at the end of the chain.
func (e *SLElem[T]) Next() *T { return e.next }

// SetNext rewires the forward link. Callers are containers, not payload code.
func (e *SLElem[T]) SetNext(n *T) { e.next = n }

// SLHook binds a payload type T to one specific singly-linked-list linkage
// site: H is *T together with the accessor that reaches the embedded
// [SLElem].
type SLHook[T any] interface {
	*T
	SLLink() *SLElem[T]
}

// DLElem is the linkage field for a circular doubly-linked list node.
type DLElem[T any] struct {
	next, prev *T
}

func (e *DLElem[T]) Next() *T     { return e.next }
func (e *DLElem[T]) Prev() *T     { return e.prev }
func (e *DLElem[T]) SetNext(n *T) { e.next = n }
func (e *DLElem[T]) SetPrev(n *T) { e.prev = n }

// DLHook binds a payload type T to one doubly-linked-list linkage site.
type DLHook[T any] interface {
	*T
	DLLink() *DLElem[T]
}

// SizeElem is the linkage field shared by the size-balanced and
// weight-balanced tree families: two children plus the subtree size
// (the count of nodes rooted at this node, the node itself included).
type SizeElem[T any] struct {
	left, right *T
	size        int
}

func (e *SizeElem[T]) Left() *T      { return e.left }
func (e *SizeElem[T]) Right() *T     { return e.right }
func (e *SizeElem[T]) SetLeft(n *T)  { e.left = n }
func (e *SizeElem[T]) SetRight(n *T) { e.right = n }
func (e *SizeElem[T]) Size() int     { return e.size }
func (e *SizeElem[T]) SetSize(n int) { e.size = n }

// LeftSlot and RightSlot expose the address of the child fields, letting
// the tree rebalancers rotate "the edge I came through" (root's parent
// slot, or the tree's own root field) without threading parent pointers.
func (e *SizeElem[T]) LeftSlot() **T  { return &e.left }
func (e *SizeElem[T]) RightSlot() **T { return &e.right }

// SizeHook binds a payload type T to one size-tree linkage site.
type SizeHook[T any] interface {
	*T
	SizeLink() *SizeElem[T]
}

// IndexElem is the linkage field for an array-backed heap node: the
// reverse index into the heap's backing slice, kept in sync by every
// operation that returns control to the caller.
type IndexElem struct {
	index int
}

func (e *IndexElem) Index() int     { return e.index }
func (e *IndexElem) SetIndex(i int) { e.index = i }

// IndexHook binds a payload type T to one array-heap linkage site.
type IndexHook[T any] interface {
	*T
	IndexLink() *IndexElem
}

// HeapElem is the linkage field for the parent-less pointer-linked heap:
// two children, no parent pointer (the heap descends from the root using
// the size-derived path instead of ascending).
type HeapElem[T any] struct {
	left, right *T
}

func (e *HeapElem[T]) Left() *T      { return e.left }
func (e *HeapElem[T]) Right() *T     { return e.right }
func (e *HeapElem[T]) SetLeft(n *T)  { e.left = n }
func (e *HeapElem[T]) SetRight(n *T) { e.right = n }

// LeftSlot and RightSlot expose the address of the child fields directly,
// so a caller walking the tree without parent pointers can rewrite "the
// slot I came through" after a rotation-free child swap.
func (e *HeapElem[T]) LeftSlot() **T  { return &e.left }
func (e *HeapElem[T]) RightSlot() **T { return &e.right }

// HeapHook binds a payload type T to one pointer-heap linkage site.
type HeapHook[T any] interface {
	*T
	HeapLink() *HeapElem[T]
}
