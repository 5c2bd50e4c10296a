// Range and iteration operations: first/last/next/prev,
// next_dup/prev_dup for walking a single key's duplicate ring,
// next_unique/prev_unique for skipping a whole duplicate cluster, and the
// lookup_* nearest-neighbour family.
//
// Ascending order within a duplicate cluster is insertion order: the
// tree-leaf first, then the ring entries oldest to newest, the tail last.
package engine

import (
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// First returns the smallest-keyed element, or nil if the tree is empty.
func First[K any](root *node.Root, ops keyops.Ops[K]) *node.Slot {
	if root.Empty() {
		return nil
	}
	leaf, ring := walkDown(ops, root.Top, 0, 0, false)
	if ring {
		return ringLeaf(leaf)
	}
	return leaf
}

// Last returns the largest-keyed element, or nil if the tree is empty.
// When the largest key has duplicates this is the newest of them, so that
// Prev walks back through the whole cluster before moving on.
func Last[K any](root *node.Root, ops keyops.Ops[K]) *node.Slot {
	if root.Empty() {
		return nil
	}
	leaf, _ := walkDown(ops, root.Top, 1, 0, false)
	return leaf
}

// Lookup returns the oldest element resident under key, or nil.
func Lookup[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	if !d.found {
		return nil
	}
	if d.ring {
		return ringLeaf(d.stop)
	}
	return d.stop
}

// Next returns the element immediately after elem in ascending order: the
// next entry of its duplicate cluster if one remains, otherwise the
// smallest element of the next key. nil when elem is the last resident or
// not resident at all.
func Next[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found {
		return nil
	}
	if d.ring {
		switch tail := d.stop; elem {
		case tail:
			// Fall through to the next key.
		case ringLeaf(tail):
			return ringFirst(tail)
		default:
			return elem.Child(1)
		}
	} else if d.stop != elem {
		return nil
	}
	return successor(ops, d.path)
}

// Prev returns the element immediately before elem in ascending order:
// the previous entry of its duplicate cluster if elem isn't the oldest,
// otherwise the largest element of the previous key.
func Prev[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found {
		return nil
	}
	if d.ring {
		if elem != ringLeaf(d.stop) {
			return elem.Child(0)
		}
	} else if d.stop != elem {
		return nil
	}
	return predecessor(ops, d.path)
}

// NextDup returns the next element sharing elem's key in insertion order,
// or nil when elem is its cluster's newest (or only) member.
func NextDup[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found || !d.ring {
		return nil
	}
	switch tail := d.stop; elem {
	case tail:
		return nil
	case ringLeaf(tail):
		return ringFirst(tail)
	default:
		return elem.Child(1)
	}
}

// PrevDup returns the previous element sharing elem's key in insertion
// order, or nil when elem is its cluster's oldest (or only) member.
func PrevDup[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found || !d.ring || elem == ringLeaf(d.stop) {
		return nil
	}
	return elem.Child(0)
}

// NextUnique returns the smallest element of the next strictly-greater
// key, skipping any remaining duplicates of elem's own.
func NextUnique[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found {
		return nil
	}
	return successor(ops, d.path)
}

// PrevUnique returns the largest element of the previous strictly-lesser
// key, skipping any remaining duplicates of elem's own.
func PrevUnique[K any](root *node.Root, ops keyops.Ops[K], elem *node.Slot) *node.Slot {
	if elem.Detached() {
		return nil
	}
	d := descend(root, ops, ops.KeyAt(elem))
	if !d.found {
		return nil
	}
	return predecessor(ops, d.path)
}

// LookupGE returns the smallest element with key >= key, or nil. On an
// exact match with duplicates this is the cluster's oldest member.
func LookupGE[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	switch {
	case d.stop == nil:
		return nil
	case d.found:
		if d.ring {
			return ringLeaf(d.stop)
		}
		return d.stop
	case ops.Order(key, ops.KeyAt(d.stop)) < 0:
		return smallestUnder(ops, d)
	default:
		return successor(ops, d.path)
	}
}

// LookupGT returns the smallest element with key > key, or nil.
func LookupGT[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	switch {
	case d.stop == nil:
		return nil
	case d.found:
		return successor(ops, d.path)
	case ops.Order(key, ops.KeyAt(d.stop)) < 0:
		return smallestUnder(ops, d)
	default:
		return successor(ops, d.path)
	}
}

// LookupLE returns the largest element with key <= key, or nil. On an
// exact match with duplicates this is the cluster's newest member.
func LookupLE[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	switch {
	case d.stop == nil:
		return nil
	case d.found:
		return d.stop
	case ops.Order(key, ops.KeyAt(d.stop)) > 0:
		return largestUnder(ops, d)
	default:
		return predecessor(ops, d.path)
	}
}

// LookupLT returns the largest element with key < key, or nil.
func LookupLT[K any](root *node.Root, ops keyops.Ops[K], key K) *node.Slot {
	d := descend(root, ops, key)
	switch {
	case d.stop == nil:
		return nil
	case d.found:
		return predecessor(ops, d.path)
	case ops.Order(key, ops.KeyAt(d.stop)) > 0:
		return largestUnder(ops, d)
	default:
		return predecessor(ops, d.path)
	}
}
