package keyops

import (
	"unsafe"

	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// Addr implements [Ops] for address-keyed trees: the key is the node
// slot's own address, so no key field is ever read out of the element.
type Addr struct{}

// Distance is the XOR of the two addresses.
func (Addr) Distance(a, b uintptr) uint64 { return uint64(a ^ b) }

// Side picks the right slot (1) for search >= nodeKey, left (0) otherwise.
func (Addr) Side(search, nodeKey uintptr) int {
	if search >= nodeKey {
		return 1
	}
	return 0
}

// Order three-way compares search against nodeKey.
func (Addr) Order(search, nodeKey uintptr) int {
	switch {
	case search < nodeKey:
		return -1
	case search > nodeKey:
		return 1
	default:
		return 0
	}
}

// KeyAt returns s's own address.
func (Addr) KeyAt(s *node.Slot) uintptr { return uintptr(unsafe.Pointer(s)) }
