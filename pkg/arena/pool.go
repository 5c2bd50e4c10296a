//go:build go1.22

// Package arena provides bounded, slab-backed element pools.
//
// A compact binary tree never allocates: every resident element is
// caller-owned storage embedding the tree's node slot, and the tree
// holds bare references into it. Pool is the caller side of that
// contract — it hands out zeroed, address-stable elements carved from a
// few large slabs, and takes them back on a free list for reuse.
package arena

import (
	"fmt"

	"github.com/cebtree/cebtree/pkg/res"
)

// slabSize is the number of elements carved per slab.
const slabSize = 64

// Pool is a fixed-capacity element pool. Alloc hands out at most Cap
// elements before failing; Free returns an element for reuse by a later
// Alloc. Elements keep a stable address for the pool's whole lifetime,
// which is what lets a tree keep references into them.
//
// A Pool is not safe for concurrent use, like the trees it feeds.
type Pool[T any] struct {
	slabs  [][]T
	free   []*T
	next   int // elements handed out of the newest slab
	carved int // fresh elements carved across all slabs
	cap    int
	count  int
}

// NewPool creates a Pool that will hand out at most capacity elements of
// type T before [Pool.Alloc] starts returning [res.Err].
func NewPool[T any](capacity int) *Pool[T] {
	return &Pool[T]{cap: capacity}
}

// Len returns the number of elements currently checked out of the pool.
func (p *Pool[T]) Len() int { return p.count }

// Cap returns the pool's configured ceiling.
func (p *Pool[T]) Cap() int { return p.cap }

// Alloc returns a new, zero-valued *T, or an error if the pool's capacity
// is exhausted. Freed elements are reused before fresh slab space is
// carved, so a steady insert/delete workload settles into a fixed
// working set.
func (p *Pool[T]) Alloc() res.Result[*T] {
	if p.count >= p.cap {
		return res.Err[*T](fmt.Errorf("arena: pool exhausted: capacity %d", p.cap))
	}
	p.count++

	if n := len(p.free); n > 0 {
		e := p.free[n-1]
		p.free = p.free[:n-1]
		var zero T
		*e = zero
		return res.Ok(e)
	}

	last := len(p.slabs) - 1
	if last < 0 || p.next == len(p.slabs[last]) {
		p.slabs = append(p.slabs, make([]T, min(slabSize, p.cap-p.carved)))
		last++
		p.next = 0
	}
	e := &p.slabs[last][p.next]
	p.next++
	p.carved++
	return res.Ok(e)
}

// Free returns elem to the pool, recycling its storage for a future
// Alloc. elem must have come from this same Pool's Alloc and must not be
// touched afterwards.
func (p *Pool[T]) Free(elem *T) {
	if elem == nil {
		return
	}
	p.free = append(p.free, elem)
	p.count--
}

// Reset releases every outstanding element at once and restores the pool
// to empty. Any pointers into previously-allocated elements become stale.
func (p *Pool[T]) Reset() {
	p.slabs = nil
	p.free = nil
	p.next = 0
	p.carved = 0
	p.count = 0
}
