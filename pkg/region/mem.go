package region

import (
	"context"
	"fmt"
	"sync"
)

// MemRegion is an in-memory RegionHost, for tests and for callers that
// don't need the tree to survive a process restart. Generalized from the
// teacher's pkg/testutil/testutil.MockStorage (an in-memory stand-in for
// the page store), but modeling a single growable buffer rather than a
// map of fixed-size pages.
type MemRegion struct {
	mu      sync.RWMutex
	data    []byte
	balance int64
}

// NewMemRegion creates an empty in-memory region.
func NewMemRegion() *MemRegion {
	return &MemRegion{}
}

func (r *MemRegion) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.data
}

func (r *MemRegion) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.data)
}

func (r *MemRegion) Grow(newSize int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newSize < len(r.data) {
		return fmt.Errorf("region: cannot shrink from %d to %d bytes", len(r.data), newSize)
	}

	grown := make([]byte, newSize)
	copy(grown, r.data)
	r.data = grown

	return nil
}

func (r *MemRegion) Balance() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balance
}

func (r *MemRegion) Transfer(_ context.Context, _, _ string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.balance += amount

	return nil
}

// UnlimitedOracle is a CapacityOracle that never requires additional
// funding, for MemRegion-backed trees that don't model a funding model at
// all.
type UnlimitedOracle struct{}

func (UnlimitedOracle) MinimumBalance(int) int64 { return 0 }

// LinearOracle is a CapacityOracle that charges a fixed rate per byte of
// region size, standing in for spec.md §6's rent sysvar in a host that
// isn't Solana.
type LinearOracle struct {
	// LamportsPerByte is the funding cost per byte of region capacity.
	LamportsPerByte int64
	// BaseBalance is a flat minimum charged regardless of size.
	BaseBalance int64
}

func (o LinearOracle) MinimumBalance(size int) int64 {
	return o.BaseBalance + o.LamportsPerByte*int64(size)
}
