package engine

import (
	"github.com/cebtree/cebtree/internal/debug"
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/either"
)

// Outcome is the insert result: Left carries the already-resident
// collision element, Right the freshly spliced one.
type Outcome = either.Either[*node.Slot, *node.Slot]

func collision(resident *node.Slot) Outcome {
	return either.Left[*node.Slot, *node.Slot](resident)
}

func inserted(elem *node.Slot) Outcome {
	return either.Right[*node.Slot](elem)
}

// Insert places elem into the tree rooted at root.
//
// When multi is false and elem's key already has a
// resident, elem is left untouched and the oldest resident comes back as
// the Left of the Outcome. Otherwise elem is spliced in and comes back as
// the Right — either as a brand new branch point (distinct key) or
// appended to the resident cluster's duplicate ring (multi, equal key).
func Insert[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot, multi bool) Outcome {
	debug.Assert(elem.Detached(), "insert: element %p is already resident", elem)

	if root.Empty() {
		elem.MakeSelf()
		root.Top = elem
		return inserted(elem)
	}

	key := ops.KeyAt(elem)
	d := descend(root, ops, key)

	if d.found {
		if !multi {
			if d.ring {
				return collision(ringLeaf(d.stop))
			}
			return collision(d.stop)
		}
		spliceRing(d.ref, d.stop, d.ring, elem)
		return inserted(elem)
	}

	// The slot where the walk concluded holds either the leaf elem's key
	// diverges from, or the root of the subtree it diverges above; either
	// way elem becomes the new branch point there, with itself on the
	// side its key orders to and the old occupant on the other.
	old := d.stop
	side := ops.Side(key, ops.KeyAt(old))
	elem.SetChild(side, elem)
	elem.SetChild(node.Other(side), old)
	d.ref.Set(elem)

	return inserted(elem)
}

// spliceRing appends elem to the duplicate ring living in slot, making it
// the new tail (and so the newest, last-iterated duplicate). old is the
// cluster's currently visible element: the tree-leaf itself when the key
// has no duplicates yet, otherwise the previous tail.
func spliceRing(slot ref, old *node.Slot, ring bool, elem *node.Slot) {
	elem.SetChild(0, old)
	if ring {
		elem.SetChild(1, old.Child(1))
		old.SetChild(1, elem)
	} else {
		elem.SetChild(1, elem)
	}
	slot.Set(elem)
}
