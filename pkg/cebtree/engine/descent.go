package engine

import (
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// step records one interior node crossed during a descent: the node, the
// side taken out of it, and the branch distance between its two children
// at that moment. The recorded path is what next/prev and the near-miss
// lookups use to back up to the deepest ancestor where the walk turned
// away from the direction they need, derived from the path on demand
// instead of maintained as a running update at every step.
type step struct {
	n    *node.Slot
	side int
	icd  uint64
}

// descent is everything one keyed walk records.
type descent struct {
	// stop is where the walk ended: a leaf occurrence, a duplicate-ring
	// tail, or — when the search key diverges above an entire subtree —
	// the root element of that subtree. nil only for an empty tree.
	stop *node.Slot

	// ref is the child slot (or the tree root) currently holding stop.
	ref ref

	// found reports that stop's key equals the search key.
	found bool

	// ring reports that the walk ended on a duplicate-ring tail.
	ring bool

	// above reports that the walk stopped above a whole subtree because
	// the search key diverges from it at a higher bit than its split.
	// stop is then an interior node, not a leaf occurrence.
	above bool

	// path holds every interior node crossed, shallowest first. stop
	// itself is never on it.
	path []step
}

// descend locates key in the tree rooted at root, recording the path and
// the auxiliary state insert, delete, and the range lookups need.
//
// An element is both a leaf and (above the first element) an interior
// node, with no tag telling the two apart; the walk distinguishes them by
// the branch distance between a node's two children, which strictly
// decreases along any root-to-leaf path. A child pointer whose target's
// distance has stopped decreasing is a leaf occurrence. Equal-keyed
// children mark a duplicate-ring tail, which no legal interior node can
// have.
func descend[K any](root *node.Root, ops keyops.Ops[K], key K) descent {
	d := descent{ref: rootRef(root)}
	cur := root.Top
	if cur == nil {
		return d
	}

	prev := uint64(0)
	havePrev := false

	for {
		if cur.Self() {
			break // nodeless leaf
		}
		k0 := ops.KeyAt(cur.Child(0))
		k1 := ops.KeyAt(cur.Child(1))
		icd := ops.Distance(k0, k1)
		if icd == 0 {
			d.ring = true
			break
		}
		if havePrev && icd >= prev {
			break // distance stopped shrinking: leaf occurrence
		}
		d0 := ops.Distance(key, k0)
		d1 := ops.Distance(key, k1)
		if d0 > icd && d1 > icd {
			// The key diverges from this whole subtree above its split
			// bit, so it cannot reside below. Stop here; insert splices
			// its new branch point into this very slot.
			d.above = true
			break
		}
		side := 0
		if d1 <= d0 {
			side = 1
		}
		d.path = append(d.path, step{cur, side, icd})
		d.ref = childRef(cur, side)
		prev, havePrev = icd, true
		cur = cur.Child(side)
	}

	d.stop = cur
	d.found = !d.above && ops.Distance(key, ops.KeyAt(cur)) == 0
	return d
}

// walkDown follows one fixed side from cur until it reaches a leaf
// occurrence or a duplicate-ring tail. prev seeds the branch-distance
// context: when cur was picked off an ancestor recorded in a path, prev
// must be that ancestor's inter-child distance, so a sibling pointer that
// is itself a leaf occurrence is recognised at the first step rather than
// wrongly descended through.
func walkDown[K any](ops keyops.Ops[K], cur *node.Slot, side int, prev uint64, havePrev bool) (leaf *node.Slot, ring bool) {
	for {
		if cur.Self() {
			return cur, false
		}
		icd := ops.Distance(ops.KeyAt(cur.Child(0)), ops.KeyAt(cur.Child(1)))
		if icd == 0 {
			return cur, true
		}
		if havePrev && icd >= prev {
			return cur, false
		}
		prev, havePrev = icd, true
		cur = cur.Child(side)
	}
}

// ringFirst returns the first ring entry of the cluster whose visible
// entry is tail: the duplicate inserted right after the cluster's
// tree-leaf.
func ringFirst(tail *node.Slot) *node.Slot { return tail.Child(1) }

// ringLeaf returns the cluster's tree-leaf: its oldest element, the one
// whose leaf position the ring occupies.
func ringLeaf(tail *node.Slot) *node.Slot { return tail.Child(1).Child(0) }

// smallestOf resolves the smallest element of the subtree sub, hanging
// off an ancestor whose inter-child distance was prev. A duplicate
// cluster's smallest element is its tree-leaf.
func smallestOf[K any](ops keyops.Ops[K], sub *node.Slot, prev uint64) *node.Slot {
	leaf, ring := walkDown(ops, sub, 0, prev, true)
	if ring {
		return ringLeaf(leaf)
	}
	return leaf
}

// largestOf is the mirror of [smallestOf]. A duplicate cluster's largest
// element is its ring tail, the newest duplicate.
func largestOf[K any](ops keyops.Ops[K], sub *node.Slot, prev uint64) *node.Slot {
	leaf, _ := walkDown(ops, sub, 1, prev, true)
	return leaf
}

// successor returns the element immediately after the recorded walk in
// ascending key order: the smallest element of the sibling subtree at the
// deepest left turn. nil when the walk never turned left.
func successor[K any](ops keyops.Ops[K], path []step) *node.Slot {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].side == 0 {
			return smallestOf(ops, path[i].n.Child(1), path[i].icd)
		}
	}
	return nil
}

// predecessor is the mirror of [successor]: the largest element of the
// sibling subtree at the deepest right turn.
func predecessor[K any](ops keyops.Ops[K], path []step) *node.Slot {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].side == 1 {
			return largestOf(ops, path[i].n.Child(0), path[i].icd)
		}
	}
	return nil
}

// smallestUnder resolves a finished descent to the smallest element at or
// below its stop point.
func smallestUnder[K any](ops keyops.Ops[K], d descent) *node.Slot {
	if !d.above {
		if d.ring {
			return ringLeaf(d.stop)
		}
		return d.stop
	}
	prev, havePrev := uint64(0), false
	if n := len(d.path); n > 0 {
		prev, havePrev = d.path[n-1].icd, true
	}
	leaf, ring := walkDown(ops, d.stop, 0, prev, havePrev)
	if ring {
		return ringLeaf(leaf)
	}
	return leaf
}

// largestUnder is the mirror of [smallestUnder].
func largestUnder[K any](ops keyops.Ops[K], d descent) *node.Slot {
	if !d.above {
		return d.stop
	}
	prev, havePrev := uint64(0), false
	if n := len(d.path); n > 0 {
		prev, havePrev = d.path[n-1].icd, true
	}
	leaf, _ := walkDown(ops, d.stop, 1, prev, havePrev)
	return leaf
}
