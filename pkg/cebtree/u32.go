package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewU32 builds a tree keyed on a 32-bit unsigned integer stored inline at
// byte offset kofs from the element's embedded node slot. Pass multi=true
// to allow duplicate keys.
func NewU32(kofs uintptr, multi bool) *Tree[uint32] {
	return New[uint32](keyops.Scalar[uint32]{Kofs: kofs}, multi)
}
