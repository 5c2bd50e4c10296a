package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewAddr builds a tree keyed on each element's own storage address: no
// key field is read, ever, since the address of the embedded node slot is
// the key itself.
func NewAddr(multi bool) *Tree[uintptr] {
	return New[uintptr](keyops.Addr{}, multi)
}
