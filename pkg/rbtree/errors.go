package rbtree

import "errors"

// ErrAllocatorExhausted is returned internally by the node factory when the
// SlotAllocator has no free index to hand out. It never escapes Insert or
// InsertAtParent as an error: those return (NullNode, nil) instead, per
// spec.md §7 ("the caller sees it as NULL_NODE").
var ErrAllocatorExhausted = errors.New("rbtree: slot allocator exhausted")

// ErrRegionGrowth wraps a failure to grow the backing region to fit a
// newly allocated slot. This is a HostFailure per spec.md §7: fatal to the
// enclosing operation, not recoverable by retrying the same call.
var ErrRegionGrowth = errors.New("rbtree: region growth failed")

// ErrFunding wraps a failure to reserve enough balance to cover a region
// growth. Also a HostFailure per spec.md §7.
var ErrFunding = errors.New("rbtree: insufficient funding for region growth")

// ErrEmptyTreeParent is returned by InsertAtParent when called with a null
// parent handle. spec.md §9 leaves this case as unchecked undefined
// behavior ("this is not checked; a defensive reimplementation should
// check"); this implementation takes that suggestion.
var ErrEmptyTreeParent = errors.New("rbtree: insert_at_parent requires a non-null parent handle")

// ErrKeySizeMismatch describes a key whose encoded Size() does not match
// the tree's fixed slot key size. It is not returned: the tree panics with
// its message when such a key is passed to any operation.
var ErrKeySizeMismatch = errors.New("rbtree: key size does not match tree's configured key size")

// corruption panics on a detected invariant violation (spec.md §7's
// Corruption class: sentinel misuse, self-reference mismatch, color
// outside {0,1}). Matches the teacher's assert() panic-on-violation style
// (pkg/btree/node.go) rather than returning an error, because by the time
// this fires the region's structure itself is untrustworthy.
func corruption(msg string) {
	panic("rbtree: corruption detected: " + msg)
}
