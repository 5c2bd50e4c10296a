package keyops

import (
	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/xunsafe"
)

// scalarUint is the set of unsigned integer representations a [Scalar] may
// be instantiated over: 32-bit (U32), 64-bit (U64), and word-size (UWORD).
//
// UWORD needs no separate lane-selection file: Go's uintptr is already
// word-sized on every platform the toolchain targets, so Scalar[uintptr]
// alone covers it.
type scalarUint interface {
	~uint32 | ~uint64 | ~uintptr
}

// Scalar implements [Ops] for fixed-width unsigned integer keys stored
// inline at a byte offset from the node slot: the 32-bit, 64-bit, and
// word-sized kinds.
type Scalar[U scalarUint] struct {
	// Kofs is the byte offset of the key field, relative to the *node.Slot
	// that anchors the element.
	Kofs uintptr
}

// Distance is the bitwise XOR of a and b: 0 iff equal, and larger the more
// significant the highest differing bit is.
func (Scalar[U]) Distance(a, b U) uint64 { return uint64(a ^ b) }

// Side picks the right slot (1) for search >= nodeKey, left (0) otherwise.
func (Scalar[U]) Side(search, nodeKey U) int {
	if search >= nodeKey {
		return 1
	}
	return 0
}

// Order three-way compares search against nodeKey.
func (Scalar[U]) Order(search, nodeKey U) int {
	switch {
	case search < nodeKey:
		return -1
	case search > nodeKey:
		return 1
	default:
		return 0
	}
}

// KeyAt reads the key field out of the element anchored at s.
func (o Scalar[U]) KeyAt(s *node.Slot) U {
	return xunsafe.ByteLoad[U](s, o.Kofs)
}
