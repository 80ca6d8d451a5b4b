// Package kvtestutil provides in-memory rbtree fixtures for tests,
// generalizing the teacher's pkg/testutil/testutil.MockStorage /
// NewTestTree pair (an in-memory BTree with mock page storage) into an
// in-memory rbtree.Tree with mock collaborators.
package kvtestutil

import (
	"context"
	"errors"
	"sync"

	"region-rbtree/pkg/rbtree"
	"region-rbtree/pkg/region"
	"region-rbtree/pkg/slotalloc"
)

// NewTestTree builds an rbtree.Tree over an in-memory region.MemRegion, a
// slotalloc.BitmapAllocator, and an rbtree.MemRootCell, with a
// region.UnlimitedOracle so no test needs to model funding.
func NewTestTree(keySize int) *rbtree.Tree {
	mem := region.NewMemRegion()
	root := rbtree.NewMemRootCell()
	alloc := slotalloc.NewBitmapAllocator()

	return rbtree.New(root, alloc, mem, region.UnlimitedOracle{}, mem, keySize, rbtree.DefaultConfig)
}

// ExhaustedAllocator is a SlotAllocator that always fails, for exercising
// the AllocatorExhausted path (spec.md §7) without actually allocating
// four billion slots.
type ExhaustedAllocator struct{}

// ErrAlwaysExhausted is the error ExhaustedAllocator always returns.
var ErrAlwaysExhausted = errors.New("kvtestutil: allocator always reports exhausted")

func (ExhaustedAllocator) Alloc() (uint32, error)    { return 0, ErrAlwaysExhausted }
func (ExhaustedAllocator) Dealloc(index uint32) error { return nil }

// RecordingFunder wraps another Funder and counts how many times
// Transfer was called, so a test can assert a growth path actually asked
// for funding.
type RecordingFunder struct {
	mu    sync.Mutex
	inner region.Funder
	calls int
}

// NewRecordingFunder wraps inner (nil means every Transfer succeeds as a
// no-op).
func NewRecordingFunder(inner region.Funder) *RecordingFunder {
	return &RecordingFunder{inner: inner}
}

func (f *RecordingFunder) Transfer(ctx context.Context, from, to string, amount int64) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.inner == nil {
		return nil
	}

	return f.inner.Transfer(ctx, from, to, amount)
}

// Calls reports how many times Transfer has been invoked.
func (f *RecordingFunder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

// ErrFundingRefused is returned by a FailingFunder.
var ErrFundingRefused = errors.New("kvtestutil: funding refused")

// FailingFunder always refuses a transfer, for exercising spec.md §7's
// HostFailure / ErrFunding path.
type FailingFunder struct{}

func (FailingFunder) Transfer(context.Context, string, string, int64) error {
	return ErrFundingRefused
}
