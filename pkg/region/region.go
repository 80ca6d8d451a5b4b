// Package region defines the growable-byte-region collaborators that a
// rbtree.Tree is built on top of, and provides a file-backed and an
// in-memory implementation of each.
//
// These interfaces generalize spec.md §6's Solana-flavored RegionHost /
// RentOracle / SystemInvoker: an on-chain account's data_len/realloc/
// lamports become a host-agnostic growable byte buffer with a funding
// balance; the rent sysvar's minimum_balance becomes a CapacityOracle;
// the system-program transfer becomes a named-account Funder.
package region

import "context"

// RegionHost is the growable byte buffer backing a tree's node records.
// Grow must zero-initialize every newly added byte, mirroring the host's
// realloc(new_size, zero_init=true) in spec.md §4.2 step 3c.
type RegionHost interface {
	// Bytes returns the live backing slice. Callers must re-fetch this
	// after any call to Grow: the previous slice may have been
	// reallocated and is no longer the region's storage.
	Bytes() []byte
	// Len reports the current size of the region in bytes.
	Len() int
	// Grow resizes the region to exactly newSize bytes, zero-initializing
	// any bytes beyond the previous length. Shrinking is not supported;
	// newSize must be >= Len().
	Grow(newSize int) error
	// Balance reports the region's current funding balance.
	Balance() int64
}

// CapacityOracle reports the minimum funding balance required to keep a
// region of the given size durable (spec.md §6's RentOracle).
type CapacityOracle interface {
	MinimumBalance(size int) int64
}

// Funder moves funding balance from one named account to another to cover
// a pending region growth (spec.md §6's SystemInvoker).
type Funder interface {
	Transfer(ctx context.Context, from, to string, amount int64) error
}
