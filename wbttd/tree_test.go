package wbttd

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TomTonic/intru/link"
)

type weightNode struct {
	l      link.SizeElem[weightNode]
	weight uint32
}

func (n *weightNode) SizeLink() *link.SizeElem[weightNode] { return &n.l }

func less(a, b *weightNode) bool { return a.weight < b.weight }

func newTree() *Tree[weightNode, *weightNode] {
	return New[weightNode, *weightNode](less)
}

func assertBB33(t *testing.T, tr *Tree[weightNode, *weightNode], root *weightNode) {
	t.Helper()
	if tr.isSentinel(root) {
		return
	}
	er := elem[weightNode, *weightNode](root)
	l, r := tr.sizeOf(er.Left()), tr.sizeOf(er.Right())
	if l*3+1 < r || r*3+1 < l {
		t.Fatalf("BB[3,3] violated at weight %d: left size %d, right size %d", root.weight, l, r)
	}
	assertBB33(t, tr, er.Left())
	assertBB33(t, tr, er.Right())
}

func inorder(tr *Tree[weightNode, *weightNode]) []uint32 {
	var out []uint32
	var walk func(*weightNode)
	walk = func(n *weightNode) {
		if tr.isSentinel(n) {
			return
		}
		e := elem[weightNode, *weightNode](n)
		walk(e.Left())
		out = append(out, n.weight)
		walk(e.Right())
	}
	walk(tr.root)
	return out
}

// TestTopDownInsertMultiTenThousandKeys exercises the scenario the
// top-down queue exists for: a large unconditional-insert workload,
// checked for size, BB[3,3] balance, sorted order, and a full
// shuffled-order drain that keeps the invariant at every step.
func TestTopDownInsertMultiTenThousandKeys(t *testing.T) {
	tr := newTree()
	r := rand.New(rand.NewSource(2026))
	const n = 10000
	keys := make([]uint32, n)
	for i := range keys {
		keys[i] = r.Uint32()
		tr.InsertMulti(&weightNode{weight: keys[i]})
	}

	require.Equal(t, n, tr.Size())
	assertBB33(t, tr, tr.root)

	got := inorder(tr)
	require.Len(t, got, n)
	require.True(t, sortedUint32(got), "in-order traversal must be sorted: %v", got)

	order := append([]uint32(nil), keys...)
	r.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	for i, w := range order {
		removed := tr.Remove(&weightNode{weight: w})
		require.NotNil(t, removed, "Remove(%d) at step %d", w, i)
		require.Equal(t, w, removed.weight)
		require.Equal(t, n-i-1, tr.Size())
		assertBB33(t, tr, tr.root)
	}
	require.True(t, tr.Empty(), "tree must be empty after draining every key")
}

func sortedUint32(s []uint32) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

func TestInsertUniqueRejectsDuplicate(t *testing.T) {
	tr := newTree()
	n500 := &weightNode{weight: 500}
	n501 := &weightNode{weight: 501}
	dup501 := &weightNode{weight: 501}

	if r := tr.InsertUnique(n500); r != nil {
		t.Fatalf("InsertUnique(500) = %v, want nil", r)
	}
	if r := tr.InsertUnique(n501); r != nil {
		t.Fatalf("InsertUnique(501) = %v, want nil", r)
	}
	if r := tr.InsertUnique(dup501); r != n501 {
		t.Fatalf("InsertUnique(dup 501) = %v, want original %v", r, n501)
	}
	if tr.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", tr.Size())
	}
}

func TestRemoveLeftmostDrainsInSortedOrder(t *testing.T) {
	tr := newTree()
	r := rand.New(rand.NewSource(5))
	const n = 500
	seen := map[uint32]bool{}
	for len(seen) < n {
		w := r.Uint32() % 100000
		if seen[w] {
			continue
		}
		seen[w] = true
		tr.InsertMulti(&weightNode{weight: w})
	}
	var prev uint32
	first := true
	for !tr.Empty() {
		min := tr.RemoveLeftmost()
		if !first && min.weight < prev {
			t.Fatalf("RemoveLeftmost out of order: %d after %d", min.weight, prev)
		}
		prev, first = min.weight, false
	}
	if tr.RemoveLeftmost() != nil {
		t.Fatalf("RemoveLeftmost on empty tree must return nil")
	}
}

func TestFindByAndAt(t *testing.T) {
	tr := newTree()
	nodes := make([]*weightNode, 15)
	for i := range nodes {
		nodes[i] = &weightNode{weight: uint32(i * 2)}
		tr.InsertUnique(nodes[i])
	}
	for i, n := range nodes {
		if got := tr.At(i); got != n {
			t.Fatalf("At(%d) = %v, want %v", i, got, n)
		}
		if got := tr.Find(n); got != n {
			t.Fatalf("Find(%d) = %v, want %v", n.weight, got, n)
		}
	}
	if tr.Find(&weightNode{weight: 3}) != nil {
		t.Fatalf("Find on absent key must return nil")
	}
}

func TestClearDetachesEverything(t *testing.T) {
	tr := newTree()
	for i := 0; i < 20; i++ {
		tr.InsertMulti(&weightNode{weight: uint32(i)})
	}
	tr.Clear()
	if !tr.Empty() || tr.Size() != 0 {
		t.Fatalf("tree must be empty after Clear")
	}
}

// FuzzInsertMultiThenDrain feeds the fuzzer's bytes straight into the
// top-down queue-based InsertMulti path, then drains with RemoveLeftmost,
// checking the BB[3,3] invariant at every step.
func FuzzInsertMultiThenDrain(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	f.Add([]byte{0, 0, 0, 0})
	f.Fuzz(func(t *testing.T, weights []byte) {
		tr := newTree()
		for _, w := range weights {
			tr.InsertMulti(&weightNode{weight: uint32(w)})
			assertBB33(t, tr, tr.root)
		}
		count := len(weights)
		var prev uint32
		first := true
		for !tr.Empty() {
			min := tr.RemoveLeftmost()
			if !first && min.weight < prev {
				t.Fatalf("RemoveLeftmost out of order: %d after %d", min.weight, prev)
			}
			prev, first = min.weight, false
			count--
			assertBB33(t, tr, tr.root)
		}
		if count != 0 {
			t.Fatalf("drained %d elements, want %d", len(weights)-count, len(weights))
		}
	})
}

// BenchmarkTopDownInsertMulti measures the queue-based top-down insertion
// path at the same 10,000-key scale as TestTopDownInsertMultiTenThousandKeys.
func BenchmarkTopDownInsertMulti(b *testing.B) {
	const n = 10000
	for i := 0; i < b.N; i++ {
		tr := newTree()
		r := rand.New(rand.NewSource(int64(i)))
		for j := 0; j < n; j++ {
			tr.InsertMulti(&weightNode{weight: r.Uint32()})
		}
	}
}
