// Package kvindex wires pkg/rbtree, pkg/region, and pkg/slotalloc into a
// thread-safe key-value index over a single growable file, the way
// pkg/db.DB wires pkg/btree and pkg/storage together. The rbtree engine
// itself holds no lock (spec.md §6: single-threaded per public
// operation); kvindex adds the sync.RWMutex that a multi-goroutine caller
// needs.
package kvindex

import (
	"fmt"
	"sync"

	"region-rbtree/pkg/rbtree"
	"region-rbtree/pkg/region"
	"region-rbtree/pkg/slotalloc"
)

// rootCellOffset is where the root sref lives at the front of the data
// file; the slot array starts immediately after it.
const rootCellOffset = 0

// nonTreeDataSize is the number of header bytes reserved before the slot
// array (just the root cell, here).
const nonTreeDataSize = 4

// Index is a thread-safe, file-backed key-value index keyed by a fixed
// keySize-byte encoding, valued by an opaque 32-bit link.
type Index struct {
	mu     sync.RWMutex
	tree   *rbtree.Tree
	region *region.FileRegion
	alloc  *slotalloc.BitmapAllocator
}

// Open opens or creates the index file at path. keySize must match
// Size() for every Key this index will ever store.
func Open(path string, keySize int) (*Index, error) {
	r, err := region.NewFileRegion(path)
	if err != nil {
		return nil, fmt.Errorf("kvindex: open %s: %w", path, err)
	}

	fresh := r.Len() < nonTreeDataSize
	if fresh {
		if err := r.Grow(nonTreeDataSize); err != nil {
			return nil, fmt.Errorf("kvindex: provision header: %w", err)
		}
	}

	root := rbtree.NewFieldRootCell(r, rootCellOffset)
	if fresh {
		root.SetRoot(rbtree.NullNode)
		if err := r.Flush(); err != nil {
			return nil, fmt.Errorf("kvindex: initialize root cell: %w", err)
		}
	}

	alloc := slotalloc.NewBitmapAllocator()

	tree := rbtree.New(root, alloc, r, region.UnlimitedOracle{}, r, keySize, rbtree.Config{
		NonTreeDataSize: nonTreeDataSize,
		SignerAccount:   "kvindex",
		TreeAccount:     path,
	})

	return &Index{tree: tree, region: r, alloc: alloc}, nil
}

// Put always inserts a new entry. A key already present is not updated:
// pkg/rbtree has no update-in-place operation, so the key gains a second
// entry (duplicates are kept, routed right), and Get returns whichever
// equal entry its descent reaches first. A caller that wants upsert
// semantics removes the old entry first.
//
// Put returns the new node's sref, or rbtree.NullNode if the allocator
// is exhausted.
func (idx *Index) Put(key rbtree.Key, link uint32) (uint32, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	sref, err := idx.tree.Insert(key, link)
	if err != nil {
		return rbtree.NullNode, err
	}

	if err := idx.region.Flush(); err != nil {
		return rbtree.NullNode, fmt.Errorf("kvindex: flush after put: %w", err)
	}

	return sref, nil
}

// Get returns the link stored for key and whether it was present.
func (idx *Index) Get(key rbtree.Key) (uint32, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	h := idx.tree.Find(key)
	if h.IsNull() {
		return rbtree.NullLink, false
	}

	return h.Link(), true
}

// Delete removes key if present and returns the link it carried.
func (idx *Index) Delete(key rbtree.Key) (uint32, bool, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	link, err := idx.tree.Remove(key)
	if err != nil {
		return rbtree.NullLink, false, err
	}

	if link == rbtree.NullNode {
		return rbtree.NullLink, false, nil
	}

	if err := idx.region.Flush(); err != nil {
		return rbtree.NullLink, false, fmt.Errorf("kvindex: flush after delete: %w", err)
	}

	return link, true, nil
}

// Range walks every key in ascending order, calling visit with the raw
// encoded key bytes and the link, until visit returns false or the tree
// is exhausted.
func (idx *Index) Range(visit func(key []byte, link uint32) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var walk func(h rbtree.Handle) bool
	walk = func(h rbtree.Handle) bool {
		if h.IsNull() {
			return true
		}

		if !walk(h.Left()) {
			return false
		}

		if !visit(h.Key(), h.Link()) {
			return false
		}

		return walk(h.Right())
	}

	walk(idx.tree.GetRoot())
}

// Close flushes and closes the backing file.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	flushErr := idx.region.Flush()
	if err := idx.region.Close(); err != nil {
		return err
	}

	return flushErr
}
