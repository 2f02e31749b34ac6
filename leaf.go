package hrtree

import "math"

// capacityAt is the entry capacity of a leaf with dims live axes at order.
func (t *Tree) capacityAt(dims, order int) int {
	return t.maxElements << (dims * order)
}

func (t *Tree) curveFor(order, dims int) *Curve {
	key := curveKey{order: order, dims: dims}
	c, ok := t.curves[key]
	if !ok {
		c = newCurve(order, dims)
		t.curves[key] = c
	}
	return c
}

// newLeaf builds a detached leaf at order holding entries, laid out over
// their bounding envelope.
func (t *Tree) newLeaf(order int, entries []*Envelope) (*Leaf, error) {
	l := &Leaf{}
	grid := boundsOf(entries)
	if err := t.layout(l, grid, grid.liveAxes(), order, entries); err != nil {
		return nil, err
	}
	return l, nil
}

// layout rebuilds the cells of l at order over grid and redistributes
// entries into them.
func (t *Tree) layout(l *Leaf, grid *Envelope, axes []int, order int, entries []*Envelope) error {
	if order > t.maxOrder {
		return illegalState("leaf order %d exceeds maximum %d", order, t.maxOrder)
	}
	capacity := t.capacityAt(len(axes), order)
	if len(entries) > capacity {
		return illegalState("%d entries exceed leaf capacity %d at order %d", len(entries), capacity, order)
	}
	curve := t.curveFor(order, len(axes))
	cells := make([]*Cell, 0, curve.Len())
	for rank, coords := range curve.All() {
		cells = append(cells, &Cell{rank: rank, coords: coords})
	}

	l.grid = grid
	l.axes = axes
	l.order = order
	l.capacity = capacity
	l.cells = cells
	l.count = 0
	for _, e := range entries {
		c, err := t.chooseCell(l, e)
		if err != nil {
			return err
		}
		c.add(e)
		l.count++
	}
	l.boundary = boundsOf(entries)
	return nil
}

// chooseCell picks the cell of l that should receive e. It scans forward
// from e's Hilbert rank for a cell with room, then from the start of the
// curve.
func (t *Tree) chooseCell(l *Leaf, e *Envelope) (*Cell, error) {
	if l.full() {
		return nil, illegalState("choosing a cell in a full leaf (%d/%d)", l.count, l.capacity)
	}
	if l.order == 0 {
		return l.cells[0], nil
	}
	rank := t.cellRank(l, e)
	for _, c := range l.cells[rank:] {
		if len(c.entries) < t.maxElements {
			return c, nil
		}
	}
	for _, c := range l.cells {
		if len(c.entries) < t.maxElements {
			return c, nil
		}
	}
	return nil, illegalState("no cell with room in leaf (%d/%d)", l.count, l.capacity)
}

// cellRank maps the median of e onto the leaf's grid and returns the
// Hilbert rank of the grid cell it falls in.
func (t *Tree) cellRank(l *Leaf, e *Envelope) int {
	side := 1 << l.order
	tuple := make([]uint32, len(l.axes))
	for i, axis := range l.axes {
		width := l.grid.Span(axis) / float64(side)
		b := int(math.Floor((e.Median(axis) - l.grid.Lower(axis)) / width))
		tuple[i] = uint32(min(max(b, 0), side-1))
	}
	return t.curveFor(l.order, len(l.axes)).Rank(tuple)
}
