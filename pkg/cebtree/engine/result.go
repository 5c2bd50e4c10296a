// Package engine implements the single parameterised descent that backs
// every insert, delete, and range operation.
//
// The engine itself never allocates per element, never inspects a key
// kind beyond calling the [keyops.Ops] strategy it is handed, and writes
// only to the two child slots of the elements it is mutating through
// (plus the root slot whenever the topmost element changes). Generics
// over the key type K keep the hot path monomorphic per typed front end.
package engine

import "github.com/cebtree/cebtree/pkg/cebtree/node"

// ref is a settable reference to a child slot: either the tree's root, or
// one particular side of an element. It generalises the pointer-to-slot
// that insert and delete write through.
type ref struct {
	root   *node.Root
	parent *node.Slot
	side   int
}

func rootRef(r *node.Root) ref { return ref{root: r} }

func childRef(parent *node.Slot, side int) ref { return ref{parent: parent, side: side} }

// Get reads the slot's current value.
func (r ref) Get() *node.Slot {
	if r.parent == nil {
		return r.root.Top
	}
	return r.parent.Child(r.side)
}

// Set writes a new value into the slot.
func (r ref) Set(v *node.Slot) {
	if r.parent == nil {
		r.root.Top = v
		return
	}
	r.parent.SetChild(r.side, v)
}

// slotAbove returns the settable reference currently holding path[i].n:
// the child slot of the previous step, or the tree root for i == 0.
func slotAbove(root *node.Root, path []step, i int) ref {
	if i == 0 {
		return rootRef(root)
	}
	return childRef(path[i-1].n, path[i-1].side)
}
