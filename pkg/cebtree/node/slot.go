// Package node implements the two-child node slot that every tree element
// embeds.
//
// Unlike an adaptive radix tree, where a node fans out over up to 256
// children, grows and shrinks between representations, and therefore tags
// its child pointers with a node-type discriminator, a compact binary tree
// has exactly one node shape: two child references. No tagged pointer is
// needed — a *Slot is always, unambiguously, a *Slot.
package node

// Slot is the node slot embedded in every element that can reside in a
// tree. It is the only per-element storage the tree touches.
//
// An element is simultaneously a leaf and (above the first element) an
// interior node; both roles are the same two-child Slot, reached at two
// different depths of the tree. A pointer to a Slot does not say which
// role it plays at the point of arrival — the descent engine tells the
// roles apart by watching the branch distance between the two children,
// which strictly decreases along any root-to-leaf path and stops
// decreasing exactly when a pointer loops back down to a leaf occurrence.
//
// Membership in a duplicate ring is likewise contextual: a ring entry's
// two slots hold its ring neighbours, which is not distinguishable from an
// interior node by inspecting the Slot alone. Only the ring's visible
// entry is self-evident, and only to a caller that can read keys — its
// two children carry equal keys, which no legal interior node's can.
type Slot struct {
	b [2]*Slot
}

// Child returns the child on the given side (0 or 1).
func (s *Slot) Child(side int) *Slot { return s.b[side] }

// SetChild sets the child on the given side.
func (s *Slot) SetChild(side int, v *Slot) { s.b[side] = v }

// Other returns 1-side, the opposite child slot index.
func Other(side int) int { return 1 - side }

// Self reports whether s is a nodeless leaf: an element with no interior
// node occurrence, both child slots pointing back at itself. At most one
// resident element per tree is in this state.
func (s *Slot) Self() bool { return s != nil && s.b[0] == s && s.b[1] == s }

// Detached reports whether s is not currently resident in any tree.
func (s *Slot) Detached() bool { return s == nil || s.b[0] == nil }

// Detach marks s as not resident in any tree. Idempotent.
func (s *Slot) Detach() { s.b[0] = nil; s.b[1] = nil }

// MakeSelf wires s up as a fresh nodeless leaf.
func (s *Slot) MakeSelf() { s.b[0] = s; s.b[1] = s }

// Root is the entry point of a tree: a single reference to the topmost
// element, or nil when the tree is empty. The root itself is never an
// element.
type Root struct {
	Top *Slot
}

// Empty reports whether the tree is empty.
func (r *Root) Empty() bool { return r.Top == nil }
