package hrtree

type placement int

const (
	placed placement = iota
	refined
	overflow
)

// Insert adds an envelope to the tree.
func (t *Tree) Insert(e *Envelope) error {
	if err := t.checkEnvelope("entry", e); err != nil {
		return err
	}
	if err := t.insertInto(&t.root, e); err != nil {
		return err
	}
	t.count++
	return nil
}

// insertInto inserts e into the subtree held by root, which may be the
// tree's root or a detached subtree under construction.
func (t *Tree) insertInto(root *Node, e *Envelope) error {
	if *root == nil {
		l, err := t.newLeaf(0, []*Envelope{e})
		if err != nil {
			return err
		}
		*root = l
		return nil
	}
	for {
		leaf := t.chooseLeaf(*root, e)
		res, err := t.place(leaf, e)
		for err == nil && res == refined {
			res, err = t.place(leaf, e)
		}
		if err != nil {
			return err
		}
		if res == placed {
			refreshAncestors(leaf)
			return nil
		}
		if err := t.splitNode(root, leaf); err != nil {
			return err
		}
	}
}

// chooseLeaf descends from n to the leaf that should receive e.
func (t *Tree) chooseLeaf(n Node, e *Envelope) *Leaf {
	for {
		switch node := n.(type) {
		case *Leaf:
			return node
		case *Branch:
			n = t.chooseSubtree(node, e)
		}
	}
}

// place tries to store e in l. A full leaf is refined to a finer curve
// order when possible, otherwise overflow is reported and the leaf must be
// split.
func (t *Tree) place(l *Leaf, e *Envelope) (placement, error) {
	if l.grid.Contains(e) && !l.full() {
		c, err := t.chooseCell(l, e)
		if err != nil {
			return placed, err
		}
		c.add(e)
		l.count++
		l.boundary.expand(e)
		return placed, nil
	}

	// Cells are relative to the grid, so growing it invalidates the
	// bucketing of every entry.
	grid := l.boundary.Union(e)
	axes := grid.liveAxes()
	if !l.grid.Contains(e) && l.count < t.capacityAt(len(axes), l.order) {
		return placed, t.layout(l, grid, axes, l.order, append(l.entries(), e))
	}
	for order := l.order + 1; order <= t.maxOrder; order++ {
		if t.capacityAt(len(axes), order) <= l.count {
			continue
		}
		from := l.order
		if err := t.layout(l, grid, axes, order, l.entries()); err != nil {
			return refined, err
		}
		t.log.LogRefine(from, order, l.count)
		return refined, nil
	}
	return overflow, nil
}

// splitNode physically divides n and installs the two halves in its parent,
// or under a new root. Overflowing parents are split in turn.
func (t *Tree) splitNode(root *Node, n Node) error {
	a, b, err := t.split(n)
	if err != nil {
		return err
	}
	parent := n.Parent()
	if parent == nil {
		*root = newBranch(a, b)
		return nil
	}
	parent.replace(n, a, b)
	if len(parent.children) > t.maxElements {
		return t.splitNode(root, parent)
	}
	parent.refresh()
	refreshAncestors(parent)
	return nil
}

// refreshAncestors recomputes boundaries and counts above n.
func refreshAncestors(n Node) {
	for p := n.Parent(); p != nil; p = p.Parent() {
		p.refresh()
	}
}
