package rbtree

import "encoding/binary"

// MemRootCell is an in-memory RootCell, for tests and for trees that live
// entirely inside a region.MemRegion.
type MemRootCell struct {
	sref uint32
}

// NewMemRootCell creates an empty root cell.
func NewMemRootCell() *MemRootCell {
	return &MemRootCell{sref: NullNode}
}

func (c *MemRootCell) Root() uint32        { return c.sref }
func (c *MemRootCell) SetRoot(sref uint32) { c.sref = sref }

// FieldRootCell stores the root sref as 4 bytes at a fixed offset of a
// RegionHost's buffer. Callers that use one must size non_tree_data_size
// to leave room for it (at least offset+4 bytes before the slot array
// starts).
type FieldRootCell struct {
	host   RegionHost
	offset int
}

// NewFieldRootCell creates a root cell backed by host at the given byte
// offset. The caller is responsible for ensuring host is grown to at
// least offset+4 bytes before first use; an unprovisioned cell reads as
// an empty tree (NullNode).
func NewFieldRootCell(host RegionHost, offset int) *FieldRootCell {
	return &FieldRootCell{host: host, offset: offset}
}

func (c *FieldRootCell) Root() uint32 {
	buf := c.host.Bytes()
	if c.offset+4 > len(buf) {
		return NullNode
	}

	return binary.LittleEndian.Uint32(buf[c.offset:])
}

func (c *FieldRootCell) SetRoot(sref uint32) {
	buf := c.host.Bytes()
	if c.offset+4 > len(buf) {
		corruption("root cell offset lies outside the provisioned region")
	}

	binary.LittleEndian.PutUint32(buf[c.offset:], sref)
}
