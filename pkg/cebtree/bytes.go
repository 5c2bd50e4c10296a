package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewBytes builds a tree keyed on a fixed-length byte block stored inline
// at byte offset kofs, length bytes long.
func NewBytes(kofs uintptr, length int, multi bool) *Tree[[]byte] {
	return New[[]byte](keyops.MB{Kofs: kofs, Len: length}, multi)
}

// NewIndirectBytes builds a tree keyed on a fixed-length byte block reached
// through a *byte pointer stored at byte offset kofs.
func NewIndirectBytes(kofs uintptr, length int, multi bool) *Tree[[]byte] {
	return New[[]byte](keyops.IM{Kofs: kofs, Len: length}, multi)
}

// NewIndirectBytesZC is like [NewIndirectBytes], but the indirection is a
// packed [zc.View] (an offset/length pair) into a single shared src
// buffer, rather than a raw per-element pointer. This is the
// natural shape when every element's key bytes live inside one arena
// buffer the caller already owns.
func NewIndirectBytesZC(kofs uintptr, src *byte, multi bool) *Tree[[]byte] {
	return New[[]byte](keyops.ZCBytes{Kofs: kofs, Src: src}, multi)
}
