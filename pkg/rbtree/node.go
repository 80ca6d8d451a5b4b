package rbtree

import "encoding/binary"

// NullNode is the sentinel sref meaning "no node" (spec.md §6).
const NullNode uint32 = 0xFFFFFFFF

// NullLink is the sentinel link value meaning "no payload" (spec.md §6).
const NullLink uint32 = 0x0000FFFF

// colorBlack and colorRed are the only valid values of a record's color
// field. Anything else is a Corruption signal (spec.md §7).
const (
	colorBlack uint32 = 0
	colorRed   uint32 = 1
)

// fieldWidth is the combined width, in bytes, of every field following the
// key: parent, left, right, sref, color, link, each 4 bytes.
const fieldWidth = 24

// slot is a []byte window over exactly one node record within the region.
// Every non-key field is read/written with encoding/binary, which is an
// unaligned-safe discipline by construction: there is no struct padding to
// reason about because the record is never addressed through a Go struct
// pointer, only through byte offsets (spec.md §3's "unaligned read/write
// discipline" requirement, satisfied without unsafe).
type slot []byte

func (s slot) keySize() int { return len(s) - fieldWidth }

func (s slot) key() []byte { return s[:s.keySize()] }

func (s slot) setKey(key []byte) { copy(s[:s.keySize()], key) }

func (s slot) parent() uint32 { return binary.LittleEndian.Uint32(s[s.keySize():]) }
func (s slot) setParent(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize():], v)
}

func (s slot) left() uint32 { return binary.LittleEndian.Uint32(s[s.keySize()+4:]) }
func (s slot) setLeft(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize()+4:], v)
}

func (s slot) right() uint32 { return binary.LittleEndian.Uint32(s[s.keySize()+8:]) }
func (s slot) setRight(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize()+8:], v)
}

func (s slot) sref() uint32 { return binary.LittleEndian.Uint32(s[s.keySize()+12:]) }
func (s slot) setSref(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize()+12:], v)
}

func (s slot) color() uint32 { return binary.LittleEndian.Uint32(s[s.keySize()+16:]) }
func (s slot) setColor(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize()+16:], v)
}

func (s slot) link() uint32 { return binary.LittleEndian.Uint32(s[s.keySize()+20:]) }
func (s slot) setLink(v uint32) {
	binary.LittleEndian.PutUint32(s[s.keySize()+20:], v)
}

// slotSize returns the fixed on-disk size of a record for a key of the
// given encoded width (spec.md §3: "sizeof(K) + 24 bytes").
func slotSize(keySize int) int {
	return keySize + fieldWidth
}

// slotOffset computes the byte offset of slot i within the region, given
// the offset of the first slot (non_tree_data_size) and the record size.
// Overflow is the caller's concern for pathological configurations; sref
// is bounded to 32 bits and size is bounded by available memory on any
// realistic host, so int arithmetic is sufficient here.
func slotOffset(base, size int, sref uint32) int {
	return base + size*int(sref)
}
