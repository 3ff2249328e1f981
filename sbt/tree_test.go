package sbt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/TomTonic/intru/link"
)

type weightNode struct {
	l      link.SizeElem[weightNode]
	weight int
}

func (n *weightNode) SizeLink() *link.SizeElem[weightNode] { return &n.l }

func less(a, b *weightNode) bool { return a.weight < b.weight }

func newTree() *Tree[weightNode, *weightNode] {
	return New[weightNode, *weightNode](less)
}

func TestInsertUniqueRejectsDuplicate(t *testing.T) {
	tr := newTree()
	n500 := &weightNode{weight: 500}
	n501 := &weightNode{weight: 501}
	n502 := &weightNode{weight: 502}
	dup501 := &weightNode{weight: 501}

	if r := tr.InsertUnique(n500); r != nil {
		t.Fatalf("InsertUnique(500) = %v, want nil", r)
	}
	if r := tr.InsertUnique(n501); r != nil {
		t.Fatalf("InsertUnique(501) = %v, want nil", r)
	}
	if r := tr.InsertUnique(n502); r != nil {
		t.Fatalf("InsertUnique(502) = %v, want nil", r)
	}
	if r := tr.InsertUnique(dup501); r != n501 {
		t.Fatalf("InsertUnique(dup 501) = %v, want original 501 node %v", r, n501)
	}

	if tr.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", tr.Size())
	}
	want := []int{500, 501, 502}
	for i, w := range want {
		got := tr.At(i)
		if got == nil || got.weight != w {
			t.Fatalf("At(%d) = %v, want weight %d", i, got, w)
		}
	}
}

func TestFindAndPosition(t *testing.T) {
	tr := newTree()
	nodes := make([]*weightNode, 20)
	for i := range nodes {
		nodes[i] = &weightNode{weight: i * 10}
		if tr.InsertUnique(nodes[i]) != nil {
			t.Fatalf("unexpected duplicate at %d", i)
		}
	}
	for i, n := range nodes {
		if got := tr.Find(n); got != n {
			t.Fatalf("Find(%d) = %v, want %v", n.weight, got, n)
		}
		if pos := tr.Position(n); pos != i {
			t.Fatalf("Position(%d) = %d, want %d", n.weight, pos, i)
		}
		if at := tr.At(tr.Position(n)); at != n {
			t.Fatalf("At(Position(n)) != n for weight %d", n.weight)
		}
	}
	missing := &weightNode{weight: -1}
	if tr.Find(missing) != nil {
		t.Fatalf("Find on absent key must return nil")
	}
	if pos := tr.Position(missing); pos != NotFound {
		t.Fatalf("Position on absent key = %d, want NotFound", pos)
	}
}

func TestRemoveSplicesOutAndShrinksSize(t *testing.T) {
	tr := newTree()
	nodes := make([]*weightNode, 30)
	for i := range nodes {
		nodes[i] = &weightNode{weight: i}
		tr.InsertUnique(nodes[i])
	}
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

	for i, n := range nodes {
		removed := tr.Remove(n)
		if removed != n {
			t.Fatalf("Remove(%d) = %v, want %v", n.weight, removed, n)
		}
		if tr.Size() != len(nodes)-i-1 {
			t.Fatalf("Size() = %d, want %d", tr.Size(), len(nodes)-i-1)
		}
		if tr.Find(n) != nil {
			t.Fatalf("weight %d still found after removal", n.weight)
		}
	}
	if !tr.Empty() {
		t.Fatalf("tree must be empty after draining all elements")
	}
	if tr.Remove(&weightNode{weight: 999}) != nil {
		t.Fatalf("Remove on empty tree must return nil")
	}
}

func TestInsertMultiAllowsDuplicatesAndCountMulti(t *testing.T) {
	tr := newTree()
	for i := 0; i < 5; i++ {
		tr.InsertMulti(&weightNode{weight: 7})
	}
	tr.InsertMulti(&weightNode{weight: 3})
	if tr.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", tr.Size())
	}
	if c := tr.CountMulti(&weightNode{weight: 7}); c != 5 {
		t.Fatalf("CountMulti(7) = %d, want 5", c)
	}
	if c := tr.CountMulti(&weightNode{weight: 3}); c != 1 {
		t.Fatalf("CountMulti(3) = %d, want 1", c)
	}
	if c := tr.CountMulti(&weightNode{weight: 99}); c != 0 {
		t.Fatalf("CountMulti(99) = %d, want 0", c)
	}
}

// sizeBoundHeight is the ⌈1.44·log2(n+1.5)-1.33⌉ bound the Chen scheme
// guarantees for a tree built purely from insertions (no removals, which
// intentionally skip rebalancing).
func sizeBoundHeight(n int) int {
	return int(math.Ceil(1.44*math.Log2(float64(n)+1.5) - 1.33))
}

func TestHeightStaysWithinSizeBalancedBound(t *testing.T) {
	tr := newTree()
	r := rand.New(rand.NewSource(99))
	const n = 5000
	seen := map[int]bool{}
	count := 0
	for count < n {
		w := r.Intn(1 << 30)
		if seen[w] {
			continue
		}
		seen[w] = true
		count++
		tr.InsertUnique(&weightNode{weight: w})
		if count%200 == 0 {
			bound := sizeBoundHeight(count)
			if h := tr.Height(); h > bound {
				t.Fatalf("Height() = %d exceeds bound %d at size %d", h, bound, count)
			}
		}
	}
}

func TestFindByAndRemoveByHeterogeneousComparator(t *testing.T) {
	tr := newTree()
	nodes := make([]*weightNode, 10)
	for i := range nodes {
		nodes[i] = &weightNode{weight: i * 2}
		tr.InsertUnique(nodes[i])
	}
	cmp := func(key int) func(*weightNode) int {
		return func(x *weightNode) int {
			switch {
			case key < x.weight:
				return -1
			case key > x.weight:
				return 1
			default:
				return 0
			}
		}
	}
	if got := tr.FindBy(cmp(8)); got != nodes[4] {
		t.Fatalf("FindBy(8) = %v, want %v", got, nodes[4])
	}
	if got := tr.RemoveBy(cmp(8)); got != nodes[4] {
		t.Fatalf("RemoveBy(8) = %v, want %v", got, nodes[4])
	}
	if tr.FindBy(cmp(8)) != nil {
		t.Fatalf("weight 8 still present after RemoveBy")
	}
}

// FuzzInsertAndFind exercises the insert/find path against whatever
// weights the fuzzer comes up with, looking for a panic or a weight
// that goes missing after being inserted.
func FuzzInsertAndFind(f *testing.F) {
	for _, seed := range []int{0, 1, -1, 500, 501, 1 << 20} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, weight int) {
		tr := newTree()
		n := &weightNode{weight: weight}
		tr.InsertUnique(n)
		if tr.Find(n) == nil {
			t.Fatalf("weight %d not found right after insertion", weight)
		}
	})
}

func TestClearDetachesEverything(t *testing.T) {
	tr := newTree()
	for i := 0; i < 10; i++ {
		tr.InsertUnique(&weightNode{weight: i})
	}
	tr.Clear()
	if !tr.Empty() || tr.Size() != 0 {
		t.Fatalf("tree must be empty after Clear")
	}
	if tr.At(0) != nil {
		t.Fatalf("At(0) on empty tree must return nil")
	}
}

// BenchmarkInsertUniqueThenRemove exercises the 10,000-key insert/drain
// workload; since Remove here never rebalances, this also shows the
// documented cost of a delete-heavy run against this family.
func BenchmarkInsertUniqueThenRemove(b *testing.B) {
	const n = 10000
	for i := 0; i < b.N; i++ {
		tr := newTree()
		r := rand.New(rand.NewSource(int64(i)))
		nodes := make([]*weightNode, 0, n)
		seen := map[int]bool{}
		for len(nodes) < n {
			w := r.Intn(1 << 30)
			if seen[w] {
				continue
			}
			seen[w] = true
			node := &weightNode{weight: w}
			tr.InsertUnique(node)
			nodes = append(nodes, node)
		}
		for _, node := range nodes {
			tr.Remove(node)
		}
	}
}
