package engine

import (
	"github.com/cebtree/cebtree/internal/debug"
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// Delete removes elem from the tree rooted at root. It
// reports whether elem was actually resident; deleting an already
// detached element, or one whose key resolves to a different resident, is
// a no-op that reports false.
func Delete[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) bool {
	if elem.Detached() {
		return false
	}

	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found {
		return false
	}
	if d.ring {
		return deleteFromRing(root, d, elem)
	}
	if d.stop != elem {
		return false
	}
	removeLeaf(root, d)
	return true
}

// Pick detaches and returns the first element resident under key — the
// cluster's tree-leaf when the key has duplicates — or nil when key has
// no resident.
func Pick[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	if !d.found {
		return nil
	}
	if d.ring {
		leaf := ringLeaf(d.stop)
		promoteFirst(root, d, leaf)
		return leaf
	}
	leaf := d.stop
	removeLeaf(root, d)
	return leaf
}

// removeLeaf detaches the plain, ring-less leaf a descent stopped on.
func removeLeaf(root *node.Root, d descent) {
	elem := d.stop
	if len(d.path) == 0 {
		// Sole resident.
		root.Top = nil
		elem.Detach()
		return
	}

	last := d.path[len(d.path)-1]
	lparent, lside := last.n, last.side
	sibling := lparent.Child(node.Other(lside))

	// The leaf's parent node collapses: its other child takes its place.
	// When the slot being written aliases elem's own child slots (elem's
	// node occurrence is the leaf's grandparent), the copy below carries
	// the new value along.
	slotAbove(root, d.path, len(d.path)-1).Set(sibling)

	switch {
	case lparent == elem:
		// Leaf and node role coincided; both are gone already.
	case elem.Self():
		// elem was the nodeless leaf. The element that just lost its
		// node role above becomes the new one.
		lparent.MakeSelf()
	default:
		// Relocate elem's interior node role onto the element that just
		// lost its own.
		lparent.SetChild(0, elem.Child(0))
		lparent.SetChild(1, elem.Child(1))
		nodeSlot(root, d.path, elem).Set(lparent)
	}
	elem.Detach()
}

// deleteFromRing removes elem from the duplicate cluster the descent
// stopped on: either the cluster's tree-leaf, promoting the first ring
// entry into its place, or one of the ring entries, stitching its
// neighbours together. Reports false when elem is not a member.
func deleteFromRing(root *node.Root, d descent, elem *node.Slot) bool {
	tail := d.stop
	first := ringFirst(tail)

	if elem == ringLeaf(tail) {
		promoteFirst(root, d, elem)
		return true
	}

	// Confirm membership before touching anything: a same-keyed element
	// that belongs to another tree must not stitch this ring.
	pred := tail
	cur := first
	for cur != elem {
		if cur == tail {
			return false
		}
		pred = cur
		cur = cur.Child(1)
	}

	pred.SetChild(1, elem.Child(1))
	if elem == tail {
		// The previous entry (or the tree-leaf itself, for a ring of
		// one) becomes the cluster's visible element again.
		d.ref.Set(elem.Child(0))
	} else {
		elem.Child(1).SetChild(0, elem.Child(0))
	}
	elem.Detach()
	return true
}

// promoteFirst removes a cluster's tree-leaf, promoting the first ring
// entry into its place: the promoted entry leaves the ring and takes over
// the leaf's interior node role (or its nodeless state) wholesale.
func promoteFirst(root *node.Root, d descent, leaf *node.Slot) {
	tail := d.stop
	first := ringFirst(tail)
	debug.Assert(first.Child(0) == leaf, "promote: ring first %p does not back-reference leaf %p", first, leaf)

	if tail != first {
		tail.SetChild(1, first.Child(1))
	}
	if leaf.Self() {
		first.MakeSelf()
	} else {
		first.SetChild(0, leaf.Child(0))
		first.SetChild(1, leaf.Child(1))
		nodeSlot(root, d.path, leaf).Set(first)
	}
	leaf.Detach()
}

// nodeSlot finds the slot holding elem's interior node occurrence, which
// the recorded path of any descent that located elem's leaf position is
// guaranteed to have crossed.
func nodeSlot(root *node.Root, path []step, elem *node.Slot) ref {
	for i := range path {
		if path[i].n == elem {
			return slotAbove(root, path, i)
		}
	}
	debug.Assert(false, "node occurrence of %p not on the recorded path", elem)
	return rootRef(root)
}
