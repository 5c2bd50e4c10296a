package cebtree_test

import (
	"slices"
	"sort"
	"testing"

	"github.com/dolthub/maphash"

	"github.com/cebtree/cebtree/pkg/cebtree"
	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/tuple"
)

// Insert-lookup round trip over a few hundred pseudo-random distinct
// keys: every inserted element is found by its key, ascending iteration
// yields the full set in key order, descending the reverse, and the
// nearest-neighbour lookups agree with a sorted-slice oracle.
func TestRandomKeysRoundTripAndRangeOracle(t *testing.T) {
	tr := cebtree.NewU64(u64Kofs, false)
	h := maphash.NewHasher[uint64]()

	elems := map[uint64]*u64Elem{}
	var sorted []uint64
	for i := uint64(0); len(elems) < 512; i++ {
		k := h.Hash(i)
		if _, dup := elems[k]; dup {
			continue
		}
		e := &u64Elem{key: k}
		elems[k] = e
		sorted = append(sorted, k)
		if r := tr.Insert(&e.n); !r.HasRight() {
			t.Fatalf("insert of fresh key %#x reported a collision", k)
		}
	}
	slices.Sort(sorted)

	for _, k := range sorted {
		if got := tr.Lookup(k); got != &elems[k].n {
			t.Fatalf("lookup(%#x) = %p, want %p", k, got, &elems[k].n)
		}
	}

	i := 0
	for s := tr.First(); s != nil; s = tr.Next(s) {
		if i >= len(sorted) || s != &elems[sorted[i]].n {
			t.Fatalf("ascending iteration diverged from the oracle at position %d", i)
		}
		i++
	}
	if i != len(sorted) {
		t.Fatalf("ascending iteration stopped after %d of %d elements", i, len(sorted))
	}

	i = len(sorted) - 1
	for s := tr.Last(); s != nil; s = tr.Prev(s) {
		if i < 0 || s != &elems[sorted[i]].n {
			t.Fatalf("descending iteration diverged from the oracle at position %d", i)
		}
		i--
	}
	if i != -1 {
		t.Fatalf("descending iteration stopped %d elements early", i+1)
	}

	probe := func(k uint64) {
		ge := sort.Search(len(sorted), func(j int) bool { return sorted[j] >= k })
		gt := sort.Search(len(sorted), func(j int) bool { return sorted[j] > k })

		check := func(name string, got *node.Slot, idx int, ok bool) {
			var want *node.Slot
			if ok {
				want = &elems[sorted[idx]].n
			}
			if got != want {
				t.Fatalf("%s(%#x) = %p, want %p", name, k, got, want)
			}
		}
		check("lookup_ge", tr.LookupGE(k), ge, ge < len(sorted))
		check("lookup_gt", tr.LookupGT(k), gt, gt < len(sorted))
		check("lookup_le", tr.LookupLE(k), gt-1, gt > 0)
		check("lookup_lt", tr.LookupLT(k), ge-1, ge > 0)
	}
	for i := uint64(0); i < 512; i++ {
		probe(h.Hash(1_000_000 + i)) // almost always a miss
	}
	for i := 0; i < len(sorted); i += 7 {
		probe(sorted[i]) // exact hits
	}
}

// Duplicate FIFO order (property 5): equal keys iterate in insertion
// order, the dup walks stay inside the cluster, and the unique walks skip
// it whole.
func TestDuplicateFIFO(t *testing.T) {
	tr := cebtree.NewU32(u32Kofs, true)

	low := &u32Elem{key: 3}
	high := &u32Elem{key: 9}
	var dups []*u32Elem
	tr.Insert(&low.n)
	for i := 0; i < 5; i++ {
		e := &u32Elem{key: 7}
		dups = append(dups, e)
		tr.Insert(&e.n)
	}
	tr.Insert(&high.n)

	cur := tr.Lookup(7)
	for i, e := range dups {
		if cur != &e.n {
			t.Fatalf("dup %d out of insertion order", i)
		}
		cur = tr.NextDup(cur)
	}
	if cur != nil {
		t.Fatalf("next_dup ran past the cluster")
	}

	for i := len(dups) - 1; i > 0; i-- {
		if got := tr.PrevDup(&dups[i].n); got != &dups[i-1].n {
			t.Fatalf("prev_dup at %d did not return the previous duplicate", i)
		}
	}
	if tr.PrevDup(&dups[0].n) != nil {
		t.Fatalf("prev_dup of the oldest duplicate should be none")
	}

	for _, e := range dups {
		if got := tr.NextUnique(&e.n); got != &high.n {
			t.Fatalf("next_unique from a duplicate should reach the next distinct key")
		}
		if got := tr.PrevUnique(&e.n); got != &low.n {
			t.Fatalf("prev_unique from a duplicate should reach the previous distinct key")
		}
	}
}

// Random insert/delete/lookup cycles against a map oracle (property 8),
// with a full iteration compare and a structural shape check after every
// few operations. A small key space forces duplicate clusters to form and
// dissolve constantly.
func TestStressRandomInsertDelete(t *testing.T) {
	tr := cebtree.NewU32(u32Kofs, true)
	h := maphash.NewHasher[uint64]()

	resident := map[uint32][]*u32Elem{}
	count := 0
	var log []tuple.Tuple2[string, uint32]

	for i := uint64(0); i < 4096; i++ {
		r := h.Hash(i)
		k := uint32(r % 97)

		if r&(1<<40) == 0 || count == 0 {
			e := &u32Elem{key: k}
			if res := tr.Insert(&e.n); !res.HasRight() {
				t.Fatalf("multi insert of %d reported a collision", k)
			}
			resident[k] = append(resident[k], e)
			count++
			log = append(log, tuple.New2("insert", k))
		} else if list := resident[k]; len(list) > 0 {
			// Hit the oldest, a middle, and the newest duplicate alike.
			idx := int((r >> 45) % uint64(len(list)))
			e := list[idx]
			if tr.Delete(&e.n) != &e.n {
				t.Fatalf("delete of resident key %d failed (op %d)", k, len(log))
			}
			if !e.n.Detached() {
				t.Fatalf("deleted element of key %d is not marked detached", k)
			}
			if tr.Delete(&e.n) != nil {
				t.Fatalf("second delete of key %d was not a no-op", k)
			}
			resident[k] = append(list[:idx:idx], list[idx+1:]...)
			count--
			log = append(log, tuple.New2("delete", k))
		} else {
			if tr.Lookup(k) != nil {
				t.Fatalf("lookup of absent key %d found an element", k)
			}
			log = append(log, tuple.New2("miss", k))
		}

		if i%64 == 0 {
			verifyAgainstOracle(t, tr, resident, log)
			verifyShape(t, tr)
		}
	}
	verifyAgainstOracle(t, tr, resident, log)
	verifyShape(t, tr)
}

// verifyAgainstOracle checks that ascending iteration visits exactly the
// oracle's elements: keys in sorted order, and each key's elements in
// insertion order.
func verifyAgainstOracle(t *testing.T, tr *cebtree.Tree[uint32], resident map[uint32][]*u32Elem, log []tuple.Tuple2[string, uint32]) {
	t.Helper()

	var keys []uint32
	total := 0
	for k, list := range resident {
		if len(list) > 0 {
			keys = append(keys, k)
			total += len(list)
		}
	}
	slices.Sort(keys)

	fail := func(format string, args ...any) {
		lo := max(0, len(log)-16)
		t.Logf("last operations: %v", log[lo:])
		t.Fatalf(format, args...)
	}

	ki, di := 0, 0
	seen := 0
	for s := tr.First(); s != nil; s = tr.Next(s) {
		if ki >= len(keys) {
			fail("iteration yields more elements than the oracle holds")
		}
		want := resident[keys[ki]][di]
		if s != &want.n {
			fail("iteration diverged at key %d, dup %d", keys[ki], di)
		}
		seen++
		if di++; di == len(resident[keys[ki]]) {
			ki, di = ki+1, 0
		}
	}
	if seen != total {
		fail("iteration yielded %d of %d elements", seen, total)
	}

	for _, k := range keys {
		if got := tr.Lookup(k); got != &resident[k][0].n {
			fail("lookup(%d) does not return the oldest resident", k)
		}
	}
}

// verifyShape walks the stored structure directly, checking the shape
// invariants: branch distances strictly shrink with depth, at most one
// element is the nodeless self-referential leaf, and every duplicate ring
// closes over same-keyed entries with intact back-links.
func verifyShape(t *testing.T, tr *cebtree.Tree[uint32]) {
	t.Helper()

	root := tr.Root()
	if root.Empty() {
		return
	}
	ops := tr.Ops()
	selfLeaves := 0

	var walk func(s *node.Slot, prev uint64, havePrev bool)
	walk = func(s *node.Slot, prev uint64, havePrev bool) {
		if s.Self() {
			selfLeaves++
			return
		}
		icd := ops.Distance(ops.KeyAt(s.Child(0)), ops.KeyAt(s.Child(1)))
		if icd == 0 {
			verifyRing(t, tr, s)
			return
		}
		if havePrev && icd >= prev {
			return // leaf occurrence of a node counted on its own visit
		}
		walk(s.Child(0), icd, true)
		walk(s.Child(1), icd, true)
	}
	walk(root.Top, 0, false)

	if selfLeaves > 1 {
		t.Fatalf("tree has %d nodeless leaves, want at most 1", selfLeaves)
	}
}

func verifyRing(t *testing.T, tr *cebtree.Tree[uint32], tail *node.Slot) {
	t.Helper()

	ops := tr.Ops()
	key := ops.KeyAt(tail)
	first := tail.Child(1)
	leaf := first.Child(0)
	if ops.Distance(key, ops.KeyAt(leaf)) != 0 {
		t.Fatalf("ring of key %d: tree-leaf carries a different key", key)
	}

	prev := leaf
	steps := 0
	for cur := first; ; cur = cur.Child(1) {
		if ops.Distance(key, ops.KeyAt(cur)) != 0 {
			t.Fatalf("ring of key %d: entry carries a different key", key)
		}
		if cur.Child(0) != prev {
			t.Fatalf("ring of key %d: broken back-link at step %d", key, steps)
		}
		if steps++; steps > 1<<16 {
			t.Fatalf("ring of key %d does not close", key)
		}
		if cur == tail {
			break
		}
		prev = cur
	}
}
