package hrtree

// Node is either a *Branch or a *Leaf.
type Node interface {
	// Boundary is the minimum bounding envelope of everything below the
	// node. It is nil only for a node that is transiently empty.
	Boundary() *Envelope
	// Parent is nil for the root.
	Parent() *Branch
	// Len is the number of entries stored below the node.
	Len() int
	IsLeaf() bool

	setParent(p *Branch)
	entries() []*Envelope
}

// Branch is an interior node owning child nodes.
type Branch struct {
	parent   *Branch
	boundary *Envelope
	children []Node
	count    int
}

func newBranch(children ...Node) *Branch {
	b := &Branch{children: children}
	for _, c := range children {
		c.setParent(b)
	}
	b.refresh()
	return b
}

func (b *Branch) Boundary() *Envelope { return b.boundary }
func (b *Branch) Parent() *Branch     { return b.parent }
func (b *Branch) Len() int            { return b.count }
func (b *Branch) IsLeaf() bool        { return false }
func (b *Branch) setParent(p *Branch) { b.parent = p }
func (b *Branch) NumChildren() int    { return len(b.children) }
func (b *Branch) Child(i int) Node    { return b.children[i] }

func (b *Branch) entries() []*Envelope {
	out := make([]*Envelope, 0, b.count)
	for _, c := range b.children {
		out = append(out, c.entries()...)
	}
	return out
}

// refresh recomputes the boundary and count from the direct children.
func (b *Branch) refresh() {
	b.count = 0
	b.boundary = nil
	for _, c := range b.children {
		b.count += c.Len()
		cb := c.Boundary()
		if cb == nil {
			continue
		}
		if b.boundary == nil {
			b.boundary = cb.clone()
		} else {
			b.boundary.expand(cb)
		}
	}
}

// replace swaps old for the given nodes, keeping child order.
func (b *Branch) replace(old Node, with ...Node) bool {
	for i, c := range b.children {
		if c != old {
			continue
		}
		children := make([]Node, 0, len(b.children)-1+len(with))
		children = append(children, b.children[:i]...)
		children = append(children, with...)
		children = append(children, b.children[i+1:]...)
		b.children = children
		for _, n := range with {
			n.setParent(b)
		}
		old.setParent(nil)
		return true
	}
	return false
}

func (b *Branch) allLeaves() bool {
	for _, c := range b.children {
		if !c.IsLeaf() {
			return false
		}
	}
	return true
}

// Leaf is a bottom level node. Its entries are bucketed into cells along a
// Hilbert curve laid over grid, restricted to the live axes of grid.
type Leaf struct {
	parent   *Branch
	boundary *Envelope
	grid     *Envelope
	axes     []int
	order    int
	capacity int
	cells    []*Cell
	count    int
}

func (l *Leaf) Boundary() *Envelope { return l.boundary }
func (l *Leaf) Parent() *Branch     { return l.parent }
func (l *Leaf) Len() int            { return l.count }
func (l *Leaf) IsLeaf() bool        { return true }
func (l *Leaf) setParent(p *Branch) { l.parent = p }

// Order is the current Hilbert order of the leaf's cell layout.
func (l *Leaf) Order() int { return l.order }

// Capacity is the number of entries the leaf can hold at its order.
func (l *Leaf) Capacity() int { return l.capacity }

// LiveDims is the number of non-degenerate axes the curve is laid over.
func (l *Leaf) LiveDims() int { return len(l.axes) }

func (l *Leaf) NumCells() int    { return len(l.cells) }
func (l *Leaf) Cell(i int) *Cell { return l.cells[i] }

func (l *Leaf) full() bool { return l.count >= l.capacity }

func (l *Leaf) entries() []*Envelope {
	out := make([]*Envelope, 0, l.count)
	for _, c := range l.cells {
		out = append(out, c.entries...)
	}
	return out
}

func (l *Leaf) refresh() {
	l.count = 0
	l.boundary = nil
	for _, c := range l.cells {
		l.count += len(c.entries)
		if c.boundary == nil {
			continue
		}
		if l.boundary == nil {
			l.boundary = c.boundary.clone()
		} else {
			l.boundary.expand(c.boundary)
		}
	}
}

// Cell is a bucket of a leaf holding the entries assigned to one Hilbert
// rank.
type Cell struct {
	rank     int
	coords   []uint32
	entries  []*Envelope
	boundary *Envelope
}

// HilbertValue is the rank of the cell along its leaf's curve.
func (c *Cell) HilbertValue() int { return c.rank }

// Coords is the grid tuple of the cell. It must not be modified.
func (c *Cell) Coords() []uint32 { return c.coords }

func (c *Cell) Len() int              { return len(c.entries) }
func (c *Cell) Entry(i int) *Envelope { return c.entries[i] }
func (c *Cell) Boundary() *Envelope   { return c.boundary }

func (c *Cell) add(e *Envelope) {
	c.entries = append(c.entries, e)
	if c.boundary == nil {
		c.boundary = e.clone()
	} else {
		c.boundary.expand(e)
	}
}

func (c *Cell) remove(i int) {
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.boundary = boundsOf(c.entries)
}
