// Package keyops implements the per-key-kind comparator strategies the
// descent engine is parameterised over.
//
// Each key kind (U32, U64, UWORD, MB, IM, ST, IS, ADDR) is a concrete type
// implementing [Ops]; the engine never knows which one it is working with,
// it only calls Distance/Side/Order/KeyAt.
package keyops

import "github.com/cebtree/cebtree/pkg/cebtree/node"

// Ops is the comparator strategy for one key kind K.
//
// Implementations must be stateless with respect to any particular tree:
// all state needed to resolve a key (a byte offset, a fixed length, ...) is
// carried in the Ops value itself, not in a shared global.
type Ops[K any] interface {
	// Distance is 0 iff a and b are equal, and strictly greater when a and
	// b diverge at a more significant bit position. For scalar kinds this
	// is plain XOR; byte kinds encode the common-prefix bit length so that
	// an earlier divergence compares larger.
	Distance(a, b K) uint64

	// Side returns which child slot (0 or 1) an insertion of search should
	// take relative to an element whose resident key is nodeKey.
	Side(search, nodeKey K) int

	// Order three-way compares search against nodeKey: -1, 0, or 1.
	Order(search, nodeKey K) int

	// KeyAt resolves the key of the element occupying slot s.
	KeyAt(s *node.Slot) K
}

// InfinitePrefix is the conceptual "equal all the way to the terminator"
// common-prefix length for NUL-terminated byte keys. Byte-key
// Distance implementations collapse this case directly to a distance of
// zero (since an infinite common prefix means the keys are equal), so
// this constant exists only for documentation and for implementations
// that want to reason about the raw prefix length directly.
const InfinitePrefix = ^uint64(0)
