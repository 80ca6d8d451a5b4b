package rbtree

import (
	"testing"

	"region-rbtree/pkg/region"
	"region-rbtree/pkg/slotalloc"
)

func newTestTree(keySize int) *Tree {
	mem := region.NewMemRegion()
	root := NewMemRootCell()
	alloc := slotalloc.NewBitmapAllocator()

	return New(root, alloc, mem, region.UnlimitedOracle{}, mem, keySize, DefaultConfig)
}

func TestInsertAndFind(t *testing.T) {
	tree := newTestTree(8)

	if h := tree.Find(Uint64Key(1)); !h.IsNull() {
		t.Error("empty tree should not find any key")
	}

	sref, err := tree.Insert(Uint64Key(42), 100)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if sref == NullNode {
		t.Fatal("insert returned NullNode")
	}

	h := tree.Find(Uint64Key(42))
	if h.IsNull() {
		t.Fatal("failed to find inserted key")
	}

	if link := h.Link(); link != 100 {
		t.Errorf("expected link 100, got %d", link)
	}
}

// TestInOrderTraversal inserts [10,20,30,15,25,5,1] and checks that an
// in-order walk visits them sorted.
func TestInOrderTraversal(t *testing.T) {
	tree := newTestTree(8)

	values := []uint64{10, 20, 30, 15, 25, 5, 1}
	for i, v := range values {
		if _, err := tree.Insert(Uint64Key(v), uint32(i)); err != nil {
			t.Fatalf("insert %d failed: %v", v, err)
		}
	}

	var got []uint64

	var walk func(h Handle)
	walk = func(h Handle) {
		if h.IsNull() {
			return
		}

		walk(h.Left())
		got = append(got, decodeUint64(h.Key()))
		walk(h.Right())
	}

	walk(tree.GetRoot())

	want := []uint64{1, 5, 10, 15, 20, 25, 30}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

// TestRemoveReturnsLink inserts [7,3,18,10,22,8,11] with links
// [100..106] and checks that removing 10 returns its link, 103.
func TestRemoveReturnsLink(t *testing.T) {
	tree := newTestTree(8)

	keys := []uint64{7, 3, 18, 10, 22, 8, 11}
	for i, k := range keys {
		if _, err := tree.Insert(Uint64Key(k), uint32(100+i)); err != nil {
			t.Fatalf("insert %d failed: %v", k, err)
		}
	}

	link, err := tree.Remove(Uint64Key(10))
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if link != 103 {
		t.Errorf("expected link 103, got %d", link)
	}

	if h := tree.Find(Uint64Key(10)); !h.IsNull() {
		t.Error("key 10 should no longer be present")
	}
}

// TestBlackHeightBound inserts keys 1..100 and checks that no root-to-leaf
// path is more than twice as long as the shortest, the defining red-black
// balance property.
func TestBlackHeightBound(t *testing.T) {
	tree := newTestTree(8)

	for i := uint64(1); i <= 100; i++ {
		if _, err := tree.Insert(Uint64Key(i), uint32(i)); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	minDepth, maxDepth := -1, -1

	var walk func(h Handle, depth int)
	walk = func(h Handle, depth int) {
		if h.IsNull() {
			if minDepth == -1 || depth < minDepth {
				minDepth = depth
			}

			if depth > maxDepth {
				maxDepth = depth
			}

			return
		}

		walk(h.Left(), depth+1)
		walk(h.Right(), depth+1)
	}

	walk(tree.GetRoot(), 0)

	if maxDepth > 2*minDepth {
		t.Errorf("tree is unbalanced: minDepth=%d maxDepth=%d", minDepth, maxDepth)
	}
}

// TestDuplicateKeysRouteRight inserts three equal keys with links
// [9,8,7] and checks that Remove peels them off one at a time, each time
// returning a link, until the key is gone.
func TestDuplicateKeysRouteRight(t *testing.T) {
	tree := newTestTree(8)

	links := []uint32{9, 8, 7}
	for _, link := range links {
		if _, err := tree.Insert(Uint64Key(5), link); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	seen := map[uint32]bool{}

	for i := 0; i < len(links); i++ {
		link, err := tree.Remove(Uint64Key(5))
		if err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		if link == NullNode {
			t.Fatalf("remove %d: expected a link, got NullNode", i)
		}

		seen[link] = true
	}

	for _, link := range links {
		if !seen[link] {
			t.Errorf("link %d was never returned by Remove", link)
		}
	}

	if h := tree.Find(Uint64Key(5)); !h.IsNull() {
		t.Error("key 5 should be fully removed")
	}
}

// TestAllocatorExhausted checks that an exhausted allocator produces a
// NullNode result with no error, per the AllocatorExhausted contract.
func TestAllocatorExhausted(t *testing.T) {
	mem := region.NewMemRegion()
	root := NewMemRootCell()

	tree := New(root, exhaustedAllocator{}, mem, region.UnlimitedOracle{}, mem, 8, DefaultConfig)

	sref, err := tree.Insert(Uint64Key(1), 1)
	if err != nil {
		t.Fatalf("expected no error on allocator exhaustion, got %v", err)
	}

	if sref != NullNode {
		t.Errorf("expected NullNode, got %d", sref)
	}
}

type exhaustedAllocator struct{}

func (exhaustedAllocator) Alloc() (uint32, error)     { return 0, ErrAllocatorExhausted }
func (exhaustedAllocator) Dealloc(index uint32) error { return nil }

// TestForcedRegionGrowth inserts enough keys that the backing region must
// grow more than once, and checks every key is still reachable afterward.
func TestForcedRegionGrowth(t *testing.T) {
	tree := newTestTree(8)

	const n = 500
	for i := uint64(0); i < n; i++ {
		if _, err := tree.Insert(Uint64Key(i), uint32(i)); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}

	for i := uint64(0); i < n; i++ {
		h := tree.Find(Uint64Key(i))
		if h.IsNull() {
			t.Fatalf("key %d missing after region growth", i)
		}

		if link := h.Link(); link != uint32(i) {
			t.Errorf("key %d: expected link %d, got %d", i, i, link)
		}
	}
}

func decodeUint64(encoded []byte) uint64 {
	var v uint64
	for _, b := range encoded {
		v = v<<8 | uint64(b)
	}

	return v
}
