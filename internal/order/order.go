// Package order provides the comparator plumbing shared by the ordered
// containers (the heaps and the balanced trees). It generalizes the
// less-than/equal method pair the teacher's own Key type exposes
// (Key.LessThan / Key.Equal) into a comparator value usable with any
// payload type.
package order

import "golang.org/x/exp/constraints"

// Less is a strict weak ordering over *T: irreflexive, asymmetric,
// transitive, and transitive of incomparability. Containers parameterized
// by a Less never dereference it concurrently with a mutator.
type Less[T any] func(a, b *T) bool

// LessKey is a transparent comparator: it compares a payload against a key
// type K that is comparable with T but is not itself a payload, enabling
// heterogeneous lookup (Find(k) without constructing a temporary T).
type LessKey[T any, K any] func(a *T, k K) bool

// Natural returns the Less for any payload type whose values are already
// ordered by the language's built-in comparison operators.
func Natural[T constraints.Ordered]() Less[T] {
	return func(a, b *T) bool { return *a < *b }
}

// Equal derives an equality test from a Less, by the usual
// strict-weak-ordering construction: a == b iff neither a < b nor b < a.
func Equal[T any](less Less[T]) func(a, b *T) bool {
	return func(a, b *T) bool { return !less(a, b) && !less(b, a) }
}
