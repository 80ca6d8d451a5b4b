package rbtree

import (
	"context"
	"fmt"
)

// allocate implements spec.md §4.2's allocate(key, link) operation: reserve
// a slot, grow and fund the region if the slot's byte range would not fit,
// then initialize the record red with both children null.
func (t *Tree) allocate(keyBytes []byte, link uint32) (Handle, error) {
	sref, err := t.alloc.Alloc()
	if err != nil {
		return t.nullHandle(), ErrAllocatorExhausted
	}

	required := t.nonTreeDataSize + t.recordSize*(int(sref)+1)
	if required > t.host.Len() {
		if err := t.fund(required); err != nil {
			return t.nullHandle(), err
		}

		if err := t.host.Grow(required); err != nil {
			return t.nullHandle(), fmt.Errorf("%w: %v", ErrRegionGrowth, err)
		}
	}

	h := t.handleFor(sref)
	s := t.rawSlotAt(sref)
	s.setKey(keyBytes)
	s.setParent(NullNode)
	s.setLeft(NullNode)
	s.setRight(NullNode)
	s.setSref(sref)
	s.setColor(colorRed)
	s.setLink(link)

	return h, nil
}

// fund implements spec.md §4.2 steps 3a-3b: top up the region's funding
// balance to the oracle's minimum for the required size before growing.
func (t *Tree) fund(required int) error {
	minBalance := t.oracle.MinimumBalance(required)
	balance := t.host.Balance()

	if balance >= minBalance {
		return nil
	}

	diff := minBalance - balance
	if err := t.funder.Transfer(context.Background(), t.signerAccount, t.treeAccount, diff); err != nil {
		return fmt.Errorf("%w: %v", ErrFunding, err)
	}

	return nil
}

// free returns h's slot to the SlotAllocator without zeroing the record
// bytes (spec.md §4.2: "the slot will be reinitialized on reuse").
func (t *Tree) free(h Handle) error {
	return t.alloc.Dealloc(h.sref)
}
