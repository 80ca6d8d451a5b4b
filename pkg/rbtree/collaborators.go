package rbtree

import "context"

// SlotAllocator hands out the smallest free 32-bit slot index and accepts
// indices back for reuse (spec.md §6). A concrete implementation lives in
// pkg/slotalloc; rbtree only depends on this interface, never on that
// package, so the engine stays decoupled from any particular allocation
// strategy (bitmap, free-list, ...).
type SlotAllocator interface {
	Alloc() (uint32, error)
	Dealloc(index uint32) error
}

// RegionHost is the growable byte buffer backing node records (spec.md
// §6). Grow must zero-initialize newly added bytes. Concrete
// implementations live in pkg/region.
type RegionHost interface {
	Bytes() []byte
	Len() int
	Grow(newSize int) error
	Balance() int64
}

// CapacityOracle reports the minimum funding balance required to keep a
// region of the given size durable (spec.md §6's RentOracle).
type CapacityOracle interface {
	MinimumBalance(size int) int64
}

// Funder moves funding balance to cover a pending region growth (spec.md
// §6's SystemInvoker).
type Funder interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// RootCell is the 32-bit cell, stored by the caller outside the slot
// array, holding the sref of the tree's current root (spec.md §3).
type RootCell interface {
	Root() uint32
	SetRoot(sref uint32)
}
