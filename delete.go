package hrtree

// Delete removes e from the tree, or failing that one entry equal to it. It
// reports whether an entry was found. Deletion never splits nodes; sparse
// subtrees are condensed.
func (t *Tree) Delete(e *Envelope) (bool, error) {
	if err := t.checkEnvelope("entry", e); err != nil {
		return false, err
	}
	if t.root == nil {
		return false, nil
	}
	leaf, cell, idx := t.find(t.root, e, true)
	if leaf == nil {
		leaf, cell, idx = t.find(t.root, e, false)
	}
	if leaf == nil {
		return false, nil
	}
	cell.remove(idx)
	leaf.refresh()
	t.count--
	return true, t.trim(leaf)
}

// Remove is an alias of Delete.
func (t *Tree) Remove(e *Envelope) (bool, error) {
	return t.Delete(e)
}

// find locates e itself when exact is set, or an entry equal to it,
// descending only into nodes whose boundary intersects e.
func (t *Tree) find(n Node, e *Envelope, exact bool) (*Leaf, *Cell, int) {
	if n.Boundary() == nil || !n.Boundary().Intersects(e) {
		return nil, nil, -1
	}
	switch n := n.(type) {
	case *Branch:
		for _, c := range n.children {
			if l, cell, i := t.find(c, e, exact); l != nil {
				return l, cell, i
			}
		}
	case *Leaf:
		for _, c := range n.cells {
			if c.boundary == nil || !c.boundary.Intersects(e) {
				continue
			}
			for i, x := range c.entries {
				if x == e || (!exact && x.Equal(e)) {
					return n, c, i
				}
			}
		}
	}
	return nil, nil, -1
}

// trim condenses the tree from n up to the root. Every ancestor is visited
// since a count change far below can let it collapse.
func (t *Tree) trim(n Node) error {
	for n != nil {
		parent := n.Parent()
		var err error
		switch node := n.(type) {
		case *Branch:
			err = t.trimBranch(node)
		case *Leaf:
			err = t.trimLeaf(node)
		}
		if err != nil {
			return err
		}
		if parent == nil {
			return nil
		}
		n = parent
	}
	return nil
}

func (t *Tree) trimLeaf(l *Leaf) error {
	switch {
	case l.count == 0:
		// Parents drop empty children.
		if l.parent == nil {
			t.root = nil
		}
		return nil
	case l.order > 0 && l.count <= t.maxElements:
		t.log.LogCollapse("leaf", l.count)
		return t.layout(l, l.boundary.clone(), l.boundary.liveAxes(), 0, l.entries())
	}
	return nil
}

func (t *Tree) trimBranch(b *Branch) error {
	kept := b.children[:0]
	for _, c := range b.children {
		if c.Parent() != b {
			return illegalState("child of branch has inconsistent parent")
		}
		if c.Len() > 0 {
			kept = append(kept, c)
		} else {
			c.setParent(nil)
		}
	}
	clear(b.children[len(kept):])
	b.children = kept
	b.refresh()

	switch {
	case len(b.children) == 0:
		if b.parent == nil {
			t.root = nil
		}
	case b.count <= t.maxElements:
		l, err := t.newLeaf(0, b.entries())
		if err != nil {
			return err
		}
		t.log.LogCollapse("branch", l.count)
		t.replaceNode(b, l)
	case len(b.children) == 1:
		t.replaceNode(b, b.children[0])
	}
	if b.boundary == nil && b.count > 0 {
		return illegalState("branch with %d entries has no boundary", b.count)
	}
	return nil
}

// replaceNode puts with in old's place under old's parent, or as the root.
func (t *Tree) replaceNode(old, with Node) {
	parent := old.Parent()
	if parent == nil {
		with.setParent(nil)
		t.root = with
		return
	}
	parent.replace(old, with)
}
