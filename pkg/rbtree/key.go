package rbtree

import (
	"encoding/binary"

	"golang.org/x/text/unicode/norm"
)

// Key is an application-defined, totally ordered key that can be packed
// into a fixed-width slot.
//
// Size must be the same for every key ever passed to one Tree: it fixes
// the tree's slot_size for the lifetime of the region. Encode must produce
// an order-preserving representation, i.e. for any two keys a and b,
// bytes.Compare(aEncoded, bEncoded) must agree with a and b's application
// order. The tree never decodes a stored key back into a Key value; it
// only ever compares raw encoded bytes.
type Key interface {
	Size() int
	Encode(dst []byte)
}

// Uint64Key is a Key backed by an unsigned 64-bit integer, encoded
// big-endian so byte-wise comparison matches numeric order directly.
type Uint64Key uint64

func (Uint64Key) Size() int { return 8 }

func (k Uint64Key) Encode(dst []byte) {
	binary.BigEndian.PutUint64(dst, uint64(k))
}

// Int64Key is a Key backed by a signed 64-bit integer. The value is shifted
// by 1<<63 before big-endian encoding so that negative values still sort
// before positive ones under byte-wise comparison.
type Int64Key int64

func (Int64Key) Size() int { return 8 }

func (k Int64Key) Encode(dst []byte) {
	const offset = uint64(1) << 63
	binary.BigEndian.PutUint64(dst, uint64(int64(k))+offset)
}

// Uint32Key is a Key backed by an unsigned 32-bit integer.
type Uint32Key uint32

func (Uint32Key) Size() int { return 4 }

func (k Uint32Key) Encode(dst []byte) {
	binary.BigEndian.PutUint32(dst, uint32(k))
}

// Int32Key is a Key backed by a signed 32-bit integer, offset-shifted like
// Int64Key.
type Int32Key int32

func (Int32Key) Size() int { return 4 }

func (k Int32Key) Encode(dst []byte) {
	const offset = uint32(1) << 31
	binary.BigEndian.PutUint32(dst, uint32(int32(k))+offset)
}

// FixedStringKey is a Key backed by a string, normalized to Unicode NFC
// and packed into a fixed width. Strings that encode longer than Width
// are truncated; shorter ones are zero-padded on the right. Zero-padding
// is order-preserving because NFC-normalized text never legitimately
// contains a NUL byte, so a zero pad byte always compares less than any
// real trailing byte, matching the "shorter string sorts first" rule of
// lexicographic order.
type FixedStringKey struct {
	Value string
	Width int
}

func (k FixedStringKey) Size() int { return k.Width }

func (k FixedStringKey) Encode(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	normalized := norm.NFC.String(k.Value)
	n := copy(dst, normalized)
	_ = n
}
