package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewString builds a tree keyed on a NUL-terminated byte string stored
// inline at byte offset kofs.
func NewString(kofs uintptr, multi bool) *Tree[[]byte] {
	return New[[]byte](keyops.ST{Kofs: kofs}, multi)
}

// NewIndirectString builds a tree keyed on a NUL-terminated byte string
// reached through a *byte pointer stored at byte offset kofs.
func NewIndirectString(kofs uintptr, multi bool) *Tree[[]byte] {
	return New[[]byte](keyops.IS{Kofs: kofs}, multi)
}
