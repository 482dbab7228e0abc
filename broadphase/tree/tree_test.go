package tree

import (
	"math/rand"
	"testing"

	"github.com/0x5844/rigid2d/aabb"
	"github.com/0x5844/rigid2d/vec2"
)

func box(x, y, half float64) aabb.AABB {
	return aabb.New(vec2.New(x-half, y-half), vec2.New(x+half, y+half))
}

func TestInsertSingleIsRoot(t *testing.T) {
	tr := New(4)
	leaf := tr.Insert(1, box(0, 0, 1))
	if tr.Root() != leaf {
		t.Errorf("root = %d, want %d", tr.Root(), leaf)
	}
	if tr.BodyID(leaf) != 1 {
		t.Errorf("bodyID = %d, want 1", tr.BodyID(leaf))
	}
}

func TestRemoveLastLeafEmptiesRoot(t *testing.T) {
	tr := New(4)
	leaf := tr.Insert(1, box(0, 0, 1))
	tr.Remove(leaf)
	if tr.Root() != none {
		t.Errorf("root = %d, want none", tr.Root())
	}
	if tr.NodeCount() != 0 {
		t.Errorf("nodeCount = %d, want 0", tr.NodeCount())
	}
}

func TestQueryPairsOverlapping(t *testing.T) {
	tr := New(4)
	a := tr.Insert(1, box(0, 0, 1))
	b := tr.Insert(2, box(0.5, 0, 1))
	_ = tr.Insert(3, box(100, 100, 1))
	_ = a
	_ = b

	pairs := tr.QueryPairs()
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v, want 1 pair", pairs)
	}
	if pairs[0].A != 1 || pairs[0].B != 2 {
		t.Errorf("pair = %+v, want {1,2}", pairs[0])
	}
}

func TestQueryPairsNoDuplicates(t *testing.T) {
	tr := New(4)
	for i := uint32(1); i <= 5; i++ {
		tr.Insert(i, box(0, 0, 1)) // all mutually overlapping
	}
	pairs := tr.QueryPairs()
	want := 5 * 4 / 2
	if len(pairs) != want {
		t.Fatalf("pairs = %d, want %d", len(pairs), want)
	}
	seen := make(map[uint64]bool)
	for _, p := range pairs {
		key := uint64(p.A)<<32 | uint64(p.B)
		if seen[key] {
			t.Errorf("duplicate pair %+v", p)
		}
		seen[key] = true
	}
}

func TestUpdateProxyChangesAABB(t *testing.T) {
	tr := New(4)
	leaf := tr.Insert(1, box(0, 0, 1))
	newLeaf := tr.Update(leaf, box(50, 50, 1))
	got := tr.ProxyAABB(newLeaf)
	want := box(50, 50, 1)
	if got != want {
		t.Errorf("aabb = %+v, want %+v", got, want)
	}
	if tr.BodyID(newLeaf) != 1 {
		t.Errorf("bodyID lost across update")
	}
}

func TestHeightBalancedAfterManyInserts(t *testing.T) {
	tr := New(4)
	rng := rand.New(rand.NewSource(42))
	leaves := make([]int32, 0, 500)
	for i := 0; i < 500; i++ {
		x := rng.Float64() * 1000
		y := rng.Float64() * 1000
		leaves = append(leaves, tr.Insert(uint32(i), box(x, y, 1)))
	}

	// AVL invariant: height balance factor never exceeds 1 at any internal
	// node, checked by walking the whole tree.
	var walk func(id int32) int32
	walk = func(id int32) int32 {
		if id == none {
			return -1
		}
		if tr.IsLeaf(id) {
			return tr.Height(id)
		}
		lh := walk(tr.Left(id))
		rh := walk(tr.Right(id))
		diff := rh - lh
		if diff > 1 || diff < -1 {
			t.Fatalf("AVL invariant violated at node %d: left height %d, right height %d", id, lh, rh)
		}
		return 1 + max32(lh, rh)
	}
	walk(tr.Root())
}

func TestShrinkToEmptyRootAndFullFreeList(t *testing.T) {
	tr := New(4)
	rng := rand.New(rand.NewSource(7))
	leaves := make([]int32, 0, 1000)
	for i := 0; i < 1000; i++ {
		x := rng.Float64() * 1000
		y := rng.Float64() * 1000
		leaves = append(leaves, tr.Insert(uint32(i), box(x, y, 1)))
	}

	for i := len(leaves) - 1; i >= 0; i-- {
		tr.Remove(leaves[i])
	}

	if tr.Root() != none {
		t.Errorf("root = %d, want none after removing every leaf", tr.Root())
	}
	if tr.NodeCount() != 0 {
		t.Errorf("nodeCount = %d, want 0", tr.NodeCount())
	}
	if tr.FreeListLength() != len(tr.nodes) {
		t.Errorf("freeListLength = %d, want %d (every node freed)", tr.FreeListLength(), len(tr.nodes))
	}
}

func TestGrowthPreservesExistingNodes(t *testing.T) {
	tr := New(1)
	ids := make([]int32, 0, 100)
	for i := 0; i < 100; i++ {
		ids = append(ids, tr.Insert(uint32(i), box(float64(i), 0, 0.4)))
	}
	for i, leaf := range ids {
		if tr.BodyID(leaf) != uint32(i) {
			t.Fatalf("bodyID at leaf %d = %d, want %d", leaf, tr.BodyID(leaf), i)
		}
	}
}
