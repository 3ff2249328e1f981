// Package xmath carries the small bit-path helper the pointer heap needs
// to derive a descent path from its element count, ported from uit::bit
// and uit::irheap::path_bits.
package xmath

import "math/bits"

// PathBitMask is the single bit at the top of the machine word; PathBits
// shifts a 1-bit marker down through this position as the descent
// proceeds, so "path == PathBitMask" means the path is exhausted.
const PathBitMask = uint(1) << (bits.UintSize - 1)

// PathBits encodes the root-to-insertion-point (or root-to-last-leaf) path
// implied by treating n as the 1-based index of a node in a complete
// binary tree: reading the bits of n below its leading 1, from high to
// low, gives the left/right turns from the root down to node n. The
// caller must ensure n is non-zero.
func PathBits(n uint) uint {
	return ((n << 1) | 1) << bits.LeadingZeros(n)
}
