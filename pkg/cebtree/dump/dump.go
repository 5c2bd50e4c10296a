// Package dump renders a tree as Graphviz digraph text, for use in tests
// and interactive debugging. It draws the stored pointer structure as-is:
// one box per element, solid edges for interior-node children, dotted
// edges for pointers that resolve to leaf occurrences, and dashed edges
// around duplicate rings.
package dump

import (
	"fmt"
	"strings"

	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// Label formats a slot's resolved key, for nodes whose key kind K has a
// natural string form.
type Label[K any] func(key K) string

// Graphviz renders the tree rooted at root as a Graphviz digraph. label
// formats each element's key; pass nil to fall back to fmt.Sprintf("%v").
func Graphviz[K any](root *node.Root, ops keyops.Ops[K], label Label[K]) string {
	if label == nil {
		label = func(key K) string { return fmt.Sprintf("%v", key) }
	}

	w := &writer[K]{ops: ops, label: label, seen: make(map[*node.Slot]bool)}
	w.b.WriteString("digraph cebtree {\n")
	w.b.WriteString("  node [shape=box];\n")
	if !root.Empty() {
		w.b.WriteString("  root [shape=plaintext];\n")
		fmt.Fprintf(&w.b, "  root -> %s;\n", id(root.Top))
		w.walk(root.Top, 0, false)
	}
	w.b.WriteString("}\n")
	return w.b.String()
}

type writer[K any] struct {
	b     strings.Builder
	ops   keyops.Ops[K]
	label Label[K]
	seen  map[*node.Slot]bool
}

func id(s *node.Slot) string { return fmt.Sprintf("n%p", s) }

func (w *writer[K]) box(s *node.Slot) {
	if w.seen[s] {
		return
	}
	w.seen[s] = true
	fmt.Fprintf(&w.b, "  %s [label=%q];\n", id(s), w.label(w.ops.KeyAt(s)))
}

// walk mirrors the engine's descent: an element whose inter-child branch
// distance has stopped shrinking is a leaf occurrence, and equal-keyed
// children mark a duplicate-ring tail.
func (w *writer[K]) walk(s *node.Slot, prev uint64, havePrev bool) {
	w.box(s)

	if s.Self() {
		return
	}
	icd := w.ops.Distance(w.ops.KeyAt(s.Child(0)), w.ops.KeyAt(s.Child(1)))
	if icd == 0 {
		w.ring(s)
		return
	}
	if havePrev && icd >= prev {
		return
	}

	for side := 0; side < 2; side++ {
		c := s.Child(side)
		w.box(c)
		style := ""
		if w.leafEdge(c, icd) {
			style = ", style=dotted"
		}
		fmt.Fprintf(&w.b, "  %s -> %s [label=%d%s];\n", id(s), id(c), side, style)
		w.walk(c, icd, true)
	}
}

// leafEdge reports whether following the edge to c arrives at a leaf
// occurrence rather than an interior node.
func (w *writer[K]) leafEdge(c *node.Slot, prev uint64) bool {
	if c.Self() {
		return true
	}
	icd := w.ops.Distance(w.ops.KeyAt(c.Child(0)), w.ops.KeyAt(c.Child(1)))
	return icd != 0 && icd >= prev
}

// ring renders a duplicate cluster: the tree-leaf, then the ring entries
// oldest to newest, chained with dashed "dup" edges.
func (w *writer[K]) ring(tail *node.Slot) {
	first := tail.Child(1)
	leaf := first.Child(0)

	w.box(leaf)
	fmt.Fprintf(&w.b, "  %s -> %s [style=dashed, label=dup];\n", id(tail), id(leaf))

	prev := leaf
	for cur := first; ; cur = cur.Child(1) {
		w.box(cur)
		fmt.Fprintf(&w.b, "  %s -> %s [style=dashed, label=dup];\n", id(prev), id(cur))
		if cur == tail {
			break
		}
		prev = cur
	}
}
