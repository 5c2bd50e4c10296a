//go:build go1.23

package cebtree

import (
	"iter"

	"github.com/cebtree/cebtree/pkg/cebtree/engine"
	"github.com/cebtree/cebtree/pkg/cebtree/keyops"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
)

// ascending yields start and every element after it in key order, one
// engine.Next walk per step.
func ascending[K any](root *node.Root, ops keyops.Ops[K], start *node.Slot) iter.Seq[*node.Slot] {
	return func(yield func(*node.Slot) bool) {
		for s := start; s != nil; s = engine.Next(root, ops, s) {
			if !yield(s) {
				return
			}
		}
	}
}

func descending[K any](root *node.Root, ops keyops.Ops[K], start *node.Slot) iter.Seq[*node.Slot] {
	return func(yield func(*node.Slot) bool) {
		for s := start; s != nil; s = engine.Prev(root, ops, s) {
			if !yield(s) {
				return
			}
		}
	}
}

// All returns every element in ascending key order.
func All[K any](root *node.Root, ops keyops.Ops[K]) iter.Seq[*node.Slot] {
	return ascending(root, ops, engine.First(root, ops))
}

// Range returns every element with key in [lo, hi], ascending.
func Range[K any](root *node.Root, ops keyops.Ops[K], lo, hi K) iter.Seq[*node.Slot] {
	start := engine.LookupGE(root, ops, lo)
	return func(yield func(*node.Slot) bool) {
		for s := range ascending(root, ops, start) {
			if ops.Order(ops.KeyAt(s), hi) > 0 {
				return
			}
			if !yield(s) {
				return
			}
		}
	}
}

// All returns every element in t in ascending key order.
func (t *Tree[K]) All() iter.Seq[*node.Slot] { return All(&t.root, t.ops) }

// Descending returns every element in t in descending key order.
func (t *Tree[K]) Descending() iter.Seq[*node.Slot] {
	return descending(&t.root, t.ops, engine.Last(&t.root, t.ops))
}

// Range returns every element in t with key in [lo, hi], ascending.
func (t *Tree[K]) Range(lo, hi K) iter.Seq[*node.Slot] { return Range(&t.root, t.ops, lo, hi) }

// lift converts a slot sequence into a typed element sequence.
func (v *View[T, K]) lift(seq iter.Seq[*node.Slot]) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for s := range seq {
			if !yield(v.elem(s)) {
				return
			}
		}
	}
}

// All returns every element in v in ascending key order.
func (v *View[T, K]) All() iter.Seq[*T] { return v.lift(v.tree.All()) }

// Descending returns every element in v in descending key order.
func (v *View[T, K]) Descending() iter.Seq[*T] { return v.lift(v.tree.Descending()) }

// Range returns every element in v with key in [lo, hi], ascending.
func (v *View[T, K]) Range(lo, hi K) iter.Seq[*T] { return v.lift(v.tree.Range(lo, hi)) }
