// Package cebtree assembles the typed front ends of the compact binary
// tree over the parameterised descent in [github.com/cebtree/cebtree/pkg/cebtree/engine]
// — many typed entry points, one engine behind all of them.
//
// Callers never construct a [Tree] directly for a concrete key kind; they
// use one of the New* constructors in this package (u32.go, u64.go,
// uword.go, addr.go, bytes.go, string.go), each of which is a thin
// [keyops.Ops] selection over the same generic wrapper.
package cebtree

import (
	"github.com/cebtree/cebtree/pkg/cebtree/engine"
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/either"
)

// Tree is an ordered associative container of elements keyed by K, built
// entirely out of the element's own embedded [node.Slot]. A Tree
// value is itself just a root slot plus the comparator strategy and
// uniqueness mode; it holds no elements of its own.
//
// The zero value is not usable — construct one of the typed New* functions
// instead, since each needs a [keyops.Ops] instance (carrying, e.g., a
// field offset) at construction time.
type Tree[K any] struct {
	root  node.Root
	ops   keyops.Ops[K]
	multi bool
}

// New wraps ops into a Tree. multi allows duplicate keys; without it a
// colliding insert returns the resident element instead.
func New[K any](ops keyops.Ops[K], multi bool) *Tree[K] {
	return &Tree[K]{ops: ops, multi: multi}
}

// Empty reports whether the tree currently holds no elements.
func (t *Tree[K]) Empty() bool { return t.root.Empty() }

// Root exposes the tree's root slot, for the structural walkers in
// [github.com/cebtree/cebtree/pkg/cebtree/dump] and for tests that verify
// shape invariants. Mutating through it bypasses every invariant this
// package maintains.
func (t *Tree[K]) Root() *node.Root { return &t.root }

// Ops returns the comparator strategy the tree was built with.
func (t *Tree[K]) Ops() keyops.Ops[K] { return t.ops }

// Multi reports whether this tree allows duplicate keys.
func (t *Tree[K]) Multi() bool { return t.multi }

// Insert places elem into the tree. elem's key field must
// already be initialised; the tree only ever reads it through t's ops.
//
// In unique mode, re-inserting an already-resident key leaves elem
// untouched and returns the resident element as the collision case
// (callers compare identities to detect it). In
// multi mode, or when the key is new, elem is spliced into the tree and
// returned as the insertion case.
func (t *Tree[K]) Insert(elem *node.Slot) either.Either[*node.Slot, *node.Slot] {
	return engine.Insert(&t.root, t.ops, elem, t.multi)
}

// Lookup returns the resident element for key, or nil.
func (t *Tree[K]) Lookup(key K) *node.Slot { return engine.Lookup(&t.root, t.ops, key) }

// LookupGE returns the smallest resident with key >= key, or nil.
func (t *Tree[K]) LookupGE(key K) *node.Slot { return engine.LookupGE(&t.root, t.ops, key) }

// LookupGT returns the smallest resident with key > key, or nil.
func (t *Tree[K]) LookupGT(key K) *node.Slot { return engine.LookupGT(&t.root, t.ops, key) }

// LookupLE returns the largest resident with key <= key, or nil.
func (t *Tree[K]) LookupLE(key K) *node.Slot { return engine.LookupLE(&t.root, t.ops, key) }

// LookupLT returns the largest resident with key < key, or nil.
func (t *Tree[K]) LookupLT(key K) *node.Slot { return engine.LookupLT(&t.root, t.ops, key) }

// First returns the smallest-keyed resident, or nil if the tree is empty.
func (t *Tree[K]) First() *node.Slot { return engine.First(&t.root, t.ops) }

// Last returns the largest-keyed resident, or nil if the tree is empty.
func (t *Tree[K]) Last() *node.Slot { return engine.Last(&t.root, t.ops) }

// Next returns the element immediately after elem in ascending key order,
// or nil if elem is the last resident.
func (t *Tree[K]) Next(elem *node.Slot) *node.Slot { return engine.Next(&t.root, t.ops, elem) }

// Prev returns the element immediately before elem in ascending key order,
// or nil if elem is the first resident.
func (t *Tree[K]) Prev(elem *node.Slot) *node.Slot { return engine.Prev(&t.root, t.ops, elem) }

// NextDup returns the next element sharing elem's key, or nil.
func (t *Tree[K]) NextDup(elem *node.Slot) *node.Slot {
	return engine.NextDup(&t.root, t.ops, elem)
}

// PrevDup returns the previous element sharing elem's key, or nil.
func (t *Tree[K]) PrevDup(elem *node.Slot) *node.Slot {
	return engine.PrevDup(&t.root, t.ops, elem)
}

// NextUnique returns the head of the next strictly-greater key.
func (t *Tree[K]) NextUnique(elem *node.Slot) *node.Slot {
	return engine.NextUnique(&t.root, t.ops, elem)
}

// PrevUnique returns the newest element of the previous strictly-lesser
// key.
func (t *Tree[K]) PrevUnique(elem *node.Slot) *node.Slot {
	return engine.PrevUnique(&t.root, t.ops, elem)
}

// Delete removes elem from the tree. It returns elem on success and nil
// if elem was not actually resident — already detached, or never inserted
// into this tree. Deleting twice is a harmless no-op.
func (t *Tree[K]) Delete(elem *node.Slot) *node.Slot {
	if !engine.Delete(&t.root, t.ops, elem) {
		return nil
	}
	return elem
}

// Pick detaches and returns the oldest element resident under key: when
// key has duplicates, that is the cluster's tree-leaf, and the oldest
// remaining duplicate takes its place. Returns nil if key has no resident.
func (t *Tree[K]) Pick(key K) *node.Slot { return engine.Pick(&t.root, t.ops, key) }

// DeleteKey removes and returns the first element resident under key, or
// nil if key has no resident: delete with no particular element specified,
// the first match goes.
func (t *Tree[K]) DeleteKey(key K) *node.Slot { return t.Pick(key) }
