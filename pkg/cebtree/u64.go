package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewU64 builds a tree keyed on a 64-bit unsigned integer stored inline at
// byte offset kofs from the element's embedded node slot. Pass multi=true
// to allow duplicate keys.
func NewU64(kofs uintptr, multi bool) *Tree[uint64] {
	return New[uint64](keyops.Scalar[uint64]{Kofs: kofs}, multi)
}
