// Package rbtree implements an index-addressed, persistent red-black
// tree over a caller-provided growable byte region: a map from an
// application-defined, totally ordered Key to an opaque 32-bit payload
// (link), with every node stored at a stable slot addressed by a 32-bit
// index (sref) rather than by memory address.
//
// The engine is single-threaded within one public operation by design
// (no internal locking); a caller that needs concurrent access must
// serialize at a higher layer, the way pkg/kvindex does.
package rbtree

import (
	"bytes"
	"errors"
)

// Relation tags the result of FindParentOrEqual, replacing the 0/1/2/3
// sentinel flag of spec.md §4.3 with a self-documenting enum (spec.md
// §9's own suggested redesign).
type Relation int

const (
	// RelationEmpty means the tree was empty; the returned Handle is null.
	RelationEmpty Relation = iota
	// RelationInsertLeft means key < returned.Key() and returned has no
	// left child: the insertion slot is there.
	RelationInsertLeft
	// RelationInsertRight means key > returned.Key() and returned has no
	// right child: the insertion slot is there.
	RelationInsertRight
	// RelationFound means returned.Key() == key.
	RelationFound
)

// Config holds the tunables a Tree needs beyond its injected
// collaborators. Mirrors the teacher's pkg/btree.Config/DefaultConfig
// shape: a plain struct with a package-level default, since the tree has
// exactly a handful of tunables and no flag/env parsing is warranted.
type Config struct {
	// NonTreeDataSize is the offset of the first slot from the start of
	// the region (spec.md §3's non_tree_data_size): bytes reserved for
	// the root cell and any other caller header data.
	NonTreeDataSize int
	// SignerAccount and TreeAccount name the two ends of a Funder.Transfer
	// call made to cover region growth (spec.md §4.2 step 3b).
	SignerAccount string
	TreeAccount   string
}

// DefaultConfig is used by callers that don't need named funding accounts.
var DefaultConfig = Config{
	NonTreeDataSize: 0,
	SignerAccount:   "signer",
	TreeAccount:     "tree",
}

// Tree is the red-black engine of spec.md §4.3: a root cell plus the node
// factory's collaborators (allocator, region, capacity oracle, funder).
type Tree struct {
	root   RootCell
	alloc  SlotAllocator
	host   RegionHost
	oracle CapacityOracle
	funder Funder

	keySize    int
	recordSize int

	nonTreeDataSize int
	signerAccount   string
	treeAccount     string
}

// New creates a Tree over the given collaborators. keySize must equal
// Size() for every Key ever passed to this tree.
func New(root RootCell, alloc SlotAllocator, host RegionHost, oracle CapacityOracle, funder Funder, keySize int, cfg Config) *Tree {
	return &Tree{
		root:   root,
		alloc:  alloc,
		host:   host,
		oracle: oracle,
		funder: funder,

		keySize:    keySize,
		recordSize: slotSize(keySize),

		nonTreeDataSize: cfg.NonTreeDataSize,
		signerAccount:   cfg.SignerAccount,
		treeAccount:     cfg.TreeAccount,
	}
}

// KeySize reports the fixed encoded key width this tree was built for.
func (t *Tree) KeySize() int { return t.keySize }

// RecordSize reports the fixed on-disk size of one node record
// (KeySize()+24).
func (t *Tree) RecordSize() int { return t.recordSize }

func (t *Tree) mustEncode(key Key) []byte {
	if key.Size() != t.keySize {
		panic(ErrKeySizeMismatch.Error())
	}

	buf := make([]byte, t.keySize)
	key.Encode(buf)

	return buf
}

func (t *Tree) nullHandle() Handle { return Handle{tree: t, sref: NullNode} }

func (t *Tree) handleFor(sref uint32) Handle {
	if sref == NullNode {
		return t.nullHandle()
	}

	return Handle{tree: t, sref: sref}
}

// rawSlotAt bounds-checks and returns the byte window for sref without
// verifying self-identity. Besides slotAt, which adds that check, the only
// caller is allocate, which must write
// a fresh record's fields — including its own sref field — before that
// check can possibly pass.
func (t *Tree) rawSlotAt(sref uint32) slot {
	region := t.host.Bytes()
	off := slotOffset(t.nonTreeDataSize, t.recordSize, sref)

	if off < 0 || off+t.recordSize > len(region) {
		corruption("sref resolves outside the provisioned region")
	}

	return slot(region[off : off+t.recordSize])
}

func (t *Tree) slotAt(sref uint32) slot {
	s := t.rawSlotAt(sref)
	if s.sref() != sref {
		corruption("self-identity violated: record's sref field does not match its slot index")
	}

	return s
}

func (t *Tree) getRootSref() uint32 { return t.root.Root() }

// GetRoot returns the current root, or a null Handle if the tree is
// empty.
func (t *Tree) GetRoot() Handle { return t.handleFor(t.getRootSref()) }

func (t *Tree) setRootSref(sref uint32) { t.root.SetRoot(sref) }

// Find returns the first node whose key compares equal to key, or a null
// Handle.
func (t *Tree) Find(key Key) Handle {
	target := t.mustEncode(key)

	cur := t.GetRoot()
	for !cur.IsNull() {
		switch c := bytes.Compare(target, cur.Key()); {
		case c < 0:
			cur = cur.Left()
		case c > 0:
			cur = cur.Right()
		default:
			return cur
		}
	}

	return t.nullHandle()
}

// FindParentOrEqual descends like Find, but on reaching a null child
// returns the last live node along with a Relation describing where key
// would attach, so a caller that already searched can skip a second
// descent when inserting via InsertAtParent.
func (t *Tree) FindParentOrEqual(key Key) (Handle, Relation) {
	root := t.GetRoot()
	if root.IsNull() {
		return t.nullHandle(), RelationEmpty
	}

	target := t.mustEncode(key)

	cur := root
	for {
		switch c := bytes.Compare(target, cur.Key()); {
		case c < 0:
			next := cur.Left()
			if next.IsNull() {
				return cur, RelationInsertLeft
			}

			cur = next
		case c > 0:
			next := cur.Right()
			if next.IsNull() {
				return cur, RelationInsertRight
			}

			cur = next
		default:
			return cur, RelationFound
		}
	}
}

// Insert attaches key/link as a new red leaf via a standard BST descent
// (duplicates routed right, per spec.md §4.2's duplicate-routing note),
// then restores the red-black invariants. It returns the new node's sref,
// or NullNode if the slot allocator is exhausted (not an error — spec.md
// §7 treats AllocatorExhausted as a NULL_NODE return, not a Go error).
func (t *Tree) Insert(key Key, link uint32) (uint32, error) {
	encoded := t.mustEncode(key)

	node, err := t.allocate(encoded, link)
	if err != nil {
		if errors.Is(err, ErrAllocatorExhausted) {
			return NullNode, nil
		}

		return NullNode, err
	}

	nodeSref := node.sref

	y := t.nullHandle()
	x := t.GetRoot()

	for !x.IsNull() {
		y = x
		if bytes.Compare(encoded, x.Key()) < 0 {
			x = x.Left()
		} else {
			x = x.Right()
		}
	}

	node.setParent(y)
	if y.IsNull() {
		t.setRootSref(node.sref)
	} else if bytes.Compare(encoded, y.Key()) < 0 {
		y.setLeft(node)
	} else {
		y.setRight(node)
	}

	node.setRed()
	t.insertFixup(node)

	return nodeSref, nil
}

// InsertAtParent assumes parent was previously produced by
// FindParentOrEqual with RelationInsertLeft or RelationInsertRight, and
// attaches the new node directly as parent's left or right child
// depending on key's order relative to parent, skipping the descent.
// Behavior is undefined if parent does not actually have a free child
// slot on the appropriate side, except for the empty-tree case, which is
// checked (spec.md §9's open question, resolved defensively): a null
// parent returns ErrEmptyTreeParent instead of silently failing to update
// the root cell.
func (t *Tree) InsertAtParent(parent Handle, key Key, link uint32) (uint32, error) {
	if parent.IsNull() {
		return NullNode, ErrEmptyTreeParent
	}

	encoded := t.mustEncode(key)

	node, err := t.allocate(encoded, link)
	if err != nil {
		if errors.Is(err, ErrAllocatorExhausted) {
			return NullNode, nil
		}

		return NullNode, err
	}

	nodeSref := node.sref

	node.setParent(parent)
	if bytes.Compare(encoded, parent.Key()) < 0 {
		parent.setLeft(node)
	} else {
		parent.setRight(node)
	}

	node.setRed()
	t.insertFixup(node)

	return nodeSref, nil
}

// Delete removes z from the tree by in-order successor (two-child case)
// or direct splice (one-or-zero-child case), restoring the red-black
// invariants if the removed color was black, then frees z's slot.
func (t *Tree) Delete(z Handle) error {
	var x, parent Handle

	var color uint32

	if !z.Left().IsNull() && !z.Right().IsNull() {
		replace := z.Right().MinNode()

		if z.sref == t.getRootSref() {
			t.setRootSref(replace.sref)
		} else if z.Parent().Left().Equal(z) {
			z.Parent().setLeft(replace)
		} else {
			z.Parent().setRight(replace)
		}

		x = replace.Right()
		parent = replace.Parent()
		color = replace.colorValue()

		if parent.Equal(z) {
			parent = replace
		} else {
			if !x.IsNull() {
				x.setParent(parent)
			}

			parent.setLeft(x)
			replace.setRight(z.Right())
			z.Right().setParent(replace)
		}

		replace.setParent(z.Parent())
		replace.setColorValue(z.colorValue())
		replace.setLeft(z.Left())
		z.Left().setParent(replace)

		if color == colorBlack {
			t.deleteFixup(x, parent)
		}

		return t.free(z)
	}

	if !z.Left().IsNull() {
		x = z.Left()
	} else {
		x = z.Right()
	}

	parent = z.Parent()
	color = z.colorValue()

	if !x.IsNull() {
		x.setParent(parent)
	}

	if t.getRootSref() == z.sref {
		t.setRootSref(x.sref)
	} else if parent.Left().Equal(z) {
		parent.setLeft(x)
	} else {
		parent.setRight(x)
	}

	if color == colorBlack {
		t.deleteFixup(x, parent)
	}

	return t.free(z)
}

// Remove finds key, deletes its node, and returns the link it carried, or
// NullNode if key is absent.
func (t *Tree) Remove(key Key) (uint32, error) {
	node := t.Find(key)
	if node.IsNull() {
		return NullNode, nil
	}

	link := node.Link()
	if err := t.Delete(node); err != nil {
		return NullNode, err
	}

	return link, nil
}
