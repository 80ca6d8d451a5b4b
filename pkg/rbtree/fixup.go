package rbtree

// insertFixup restores the red-black invariants after z has been spliced
// in as a red leaf, by the standard three-case CLRS loop (recolor,
// rotate-then-recolor-then-rotate, or its mirror on the other side).
func (t *Tree) insertFixup(z Handle) {
	for z.Parent().IsRed() {
		parent := z.Parent()
		grandparent := parent.Parent()

		if grandparent.Left().Equal(parent) {
			uncle := grandparent.Right()

			if uncle.IsRed() {
				parent.setBlack()
				uncle.setBlack()
				grandparent.setRed()
				z = grandparent

				continue
			}

			if parent.Right().Equal(z) {
				z = parent
				t.leftRotate(z)
				parent = z.Parent()
				grandparent = parent.Parent()
			}

			parent.setBlack()
			grandparent.setRed()
			t.rightRotate(grandparent)
		} else {
			uncle := grandparent.Left()

			if uncle.IsRed() {
				parent.setBlack()
				uncle.setBlack()
				grandparent.setRed()
				z = grandparent

				continue
			}

			if parent.Left().Equal(z) {
				z = parent
				t.rightRotate(z)
				parent = z.Parent()
				grandparent = parent.Parent()
			}

			parent.setBlack()
			grandparent.setRed()
			t.leftRotate(grandparent)
		}
	}

	t.GetRoot().setBlack()
}

// deleteFixup restores the red-black invariants after a black node has
// been spliced out, given the node that took its place (x, possibly null)
// and that node's new parent (p, needed because a null x carries no
// parent pointer of its own).
func (t *Tree) deleteFixup(x, p Handle) {
	for !x.Equal(t.GetRoot()) && x.IsBlack() {
		if p.Left().Equal(x) {
			sibling := p.Right()

			if sibling.IsRed() {
				sibling.setBlack()
				p.setRed()
				t.leftRotate(p)
				sibling = p.Right()
			}

			if sibling.Left().IsBlack() && sibling.Right().IsBlack() {
				sibling.setRed()
				x = p
				p = x.Parent()

				continue
			}

			if sibling.Right().IsBlack() {
				sibling.Left().setBlack()
				sibling.setRed()
				t.rightRotate(sibling)
				sibling = p.Right()
			}

			sibling.setColorValue(p.colorValue())
			p.setBlack()
			sibling.Right().setBlack()
			t.leftRotate(p)
			x = t.GetRoot()
		} else {
			sibling := p.Left()

			if sibling.IsRed() {
				sibling.setBlack()
				p.setRed()
				t.rightRotate(p)
				sibling = p.Left()
			}

			if sibling.Right().IsBlack() && sibling.Left().IsBlack() {
				sibling.setRed()
				x = p
				p = x.Parent()

				continue
			}

			if sibling.Left().IsBlack() {
				sibling.Right().setBlack()
				sibling.setRed()
				t.leftRotate(sibling)
				sibling = p.Left()
			}

			sibling.setColorValue(p.colorValue())
			p.setBlack()
			sibling.Left().setBlack()
			t.rightRotate(p)
			x = t.GetRoot()
		}
	}

	x.setBlack()
}
