package keyops

import (
	"math/bits"
	"unsafe"

	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/untrust"
	"github.com/cebtree/cebtree/pkg/xunsafe"
	"github.com/cebtree/cebtree/pkg/zc"
)

// byteCompare is the shared Distance/Side/Order logic for every byte-key
// kind (MB, IM, ST, IS). It knows nothing about where the bytes came from
// (inline or indirect, fixed-length or NUL-terminated) — callers hand it
// two already-resolved []byte views.
//
// Reads are done through [untrust.Reader] rather than raw slice indexing
// so that a search key of arbitrary caller-supplied length can never walk
// past either slice's end, matching a NUL terminator with an implicit zero
// byte instead of panicking.
type byteCompare struct{}

// commonPrefixBits returns the number of leading bits a and b share, and
// whether they are equal over their full (NUL-exclusive) length. A byte
// missing from the shorter slice is treated as an implicit terminating
// zero, so "ab" and "abc" diverge at the third byte exactly as two
// NUL-terminated C strings would.
func (byteCompare) commonPrefixBits(a, b []byte) (n uint64, equal bool) {
	ra := untrust.NewReader(untrust.Input(a))
	rb := untrust.NewReader(untrust.Input(b))

	for {
		ba, erra := ra.ReadByte()
		bb, errb := rb.ReadByte()

		if erra != nil && errb != nil {
			return n, true
		}
		if erra != nil {
			ba = 0
		}
		if errb != nil {
			bb = 0
		}

		if ba != bb {
			return n + uint64(8-bits.Len8(ba^bb)), false
		}

		n += 8
	}
}

// Distance is 0 iff a and b are equal, else the bitwise negation of their
// common-prefix bit length: the earlier two byte strings diverge, the
// larger the resulting distance.
func (c byteCompare) Distance(a, b []byte) uint64 {
	n, equal := c.commonPrefixBits(a, b)
	if equal {
		return 0
	}
	return ^n
}

// cmp three-way compares a and b, treating a missing trailing byte as an
// implicit terminating zero (so "a" sorts before "ab").
func (byteCompare) cmp(a, b []byte) int {
	ra := untrust.NewReader(untrust.Input(a))
	rb := untrust.NewReader(untrust.Input(b))

	for {
		ba, erra := ra.ReadByte()
		bb, errb := rb.ReadByte()

		if erra != nil && errb != nil {
			return 0
		}
		if erra != nil {
			ba = 0
		}
		if errb != nil {
			bb = 0
		}

		if ba != bb {
			if ba < bb {
				return -1
			}
			return 1
		}
	}
}

// Side picks the right slot (1) for search >= nodeKey, left (0) otherwise.
func (c byteCompare) Side(search, nodeKey []byte) int {
	if c.cmp(search, nodeKey) >= 0 {
		return 1
	}
	return 0
}

// Order three-way compares search against nodeKey.
func (c byteCompare) Order(search, nodeKey []byte) int { return c.cmp(search, nodeKey) }

// nulLen returns the length of the NUL-terminated string starting at p, not
// including the terminator, reading byte-by-byte through xunsafe so the
// scan has an explicit, auditable stopping rule.
func nulLen(p *byte) int {
	n := 0
	for xunsafe.ByteLoad[byte](p, n) != 0 {
		n++
	}
	return n
}

// MB implements [Ops] for inline fixed-length byte-array keys stored
// directly at Kofs within the element.
type MB struct {
	byteCompare
	Kofs uintptr
	Len  int
}

// KeyAt returns the Len bytes stored inline at Kofs.
func (o MB) KeyAt(s *node.Slot) []byte {
	p := xunsafe.ByteAdd[byte](s, o.Kofs)
	return unsafe.Slice(p, o.Len)
}

// IM implements [Ops] for fixed-length byte-array keys stored indirectly:
// Kofs holds a *byte pointing at Len bytes elsewhere.
type IM struct {
	byteCompare
	Kofs uintptr
	Len  int
}

// KeyAt follows the indirection at Kofs and returns the Len bytes found.
func (o IM) KeyAt(s *node.Slot) []byte {
	p := xunsafe.ByteLoad[*byte](s, o.Kofs)
	return unsafe.Slice(p, o.Len)
}

// ST implements [Ops] for inline NUL-terminated string keys stored
// directly at Kofs within the element.
type ST struct {
	byteCompare
	Kofs uintptr
}

// KeyAt scans the NUL-terminated run stored inline at Kofs.
func (o ST) KeyAt(s *node.Slot) []byte {
	p := xunsafe.ByteAdd[byte](s, o.Kofs)
	return unsafe.Slice(p, nulLen(p))
}

// IS implements [Ops] for NUL-terminated string keys stored indirectly:
// Kofs holds a *byte pointing at a NUL-terminated run elsewhere.
type IS struct {
	byteCompare
	Kofs uintptr
}

// KeyAt follows the indirection at Kofs and scans the NUL-terminated run
// found there.
func (o IS) KeyAt(s *node.Slot) []byte {
	p := xunsafe.ByteLoad[*byte](s, o.Kofs)
	return unsafe.Slice(p, nulLen(p))
}

// ZCBytes implements [Ops] for byte-array keys reached indirectly through a
// packed [zc.View] (an offset/length pair) stored at Kofs, all relative to
// a single shared Src buffer. This is the natural shape when every
// element's key bytes live inside one arena buffer the caller already
// owns, rather than behind N separate per-element pointers.
type ZCBytes struct {
	byteCompare
	Kofs uintptr
	Src  *byte
}

// KeyAt reads the packed View at Kofs and resolves it against Src.
func (o ZCBytes) KeyAt(s *node.Slot) []byte {
	v := zc.View(xunsafe.ByteLoad[uint64](s, o.Kofs))
	return v.Bytes(o.Src)
}
