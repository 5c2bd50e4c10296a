package cebtree

import "github.com/cebtree/cebtree/pkg/cebtree/keyops"

// NewUWord builds a tree keyed on a word-sized unsigned integer stored
// inline at byte offset kofs. Go's uintptr is already word-sized on every
// supported platform, so one instantiation of [keyops.Scalar] covers both
// the 32-bit and 64-bit lanes without a build-tag selected file.
func NewUWord(kofs uintptr, multi bool) *Tree[uintptr] {
	return New[uintptr](keyops.Scalar[uintptr]{Kofs: kofs}, multi)
}
