package region

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileRegion is a file-backed, growable RegionHost. It generalizes the
// teacher's pkg/storage.Storage (a mutex-guarded *os.File with offset
// Read/Write) into a single growable in-memory buffer that mirrors the
// file's contents: rbtree.Tree needs direct []byte access to node records
// (exactly like the teacher's BNode slices), so FileRegion keeps the whole
// region resident and persists it to disk on Grow and on an explicit
// Flush, rather than servicing individual offset reads/writes the way
// Storage.Read/Write did.
//
// A sidecar "<path>.balance" file persists the funding balance across
// process restarts, standing in for an account's lamports balance.
type FileRegion struct {
	file *os.File
	mu   sync.RWMutex

	data    []byte
	balance int64

	balancePath string
}

// NewFileRegion creates or opens a growable region backed by path.
func NewFileRegion(path string) (*FileRegion, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create region directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open region file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat region file: %w", err)
	}

	data := make([]byte, stat.Size())
	if _, err := file.ReadAt(data, 0); err != nil && stat.Size() > 0 {
		file.Close()
		return nil, fmt.Errorf("read region file: %w", err)
	}

	r := &FileRegion{
		file:        file,
		data:        data,
		balancePath: path + ".balance",
	}

	if balanceBytes, err := os.ReadFile(r.balancePath); err == nil && len(balanceBytes) == 8 {
		r.balance = int64(binary.LittleEndian.Uint64(balanceBytes))
	}

	return r, nil
}

// Bytes returns the live region buffer. Mutations to it are not durable
// until Flush is called.
func (r *FileRegion) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.data
}

// Len reports the current region size in bytes.
func (r *FileRegion) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.data)
}

// Grow resizes the region to exactly newSize bytes, zero-initializing new
// bytes, and persists the grown buffer to disk.
func (r *FileRegion) Grow(newSize int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newSize < len(r.data) {
		return fmt.Errorf("region: cannot shrink from %d to %d bytes", len(r.data), newSize)
	}

	grown := make([]byte, newSize)
	copy(grown, r.data)
	r.data = grown

	if _, err := r.file.WriteAt(r.data, 0); err != nil {
		return fmt.Errorf("persist grown region: %w", err)
	}

	return nil
}

// Balance reports the region's current funding balance.
func (r *FileRegion) Balance() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balance
}

// Transfer moves amount of funding balance into this region. FileRegion
// implements Funder directly against itself: "from" and "to" are ignored (there is
// no multi-account ledger in this local deployment), matching the
// teacher's single-file, single-tenant storage model.
func (r *FileRegion) Transfer(_ context.Context, _, _ string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.balance += amount

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(r.balance))

	return os.WriteFile(r.balancePath, buf[:], 0o644)
}

// Flush persists the current in-memory region buffer to disk. Callers
// that mutate the slice returned by Bytes() (as rbtree.Tree does) should
// Flush after a public operation completes to make the mutation durable.
func (r *FileRegion) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.file.WriteAt(r.data, 0)
	return err
}

// Close releases the underlying file handle.
func (r *FileRegion) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.file.Close()
}
