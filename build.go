package hrtree

// buildNode constructs a detached node holding entries. A batch that fits a
// leaf at some order up to the maximum is laid out directly at the smallest
// such order; larger batches are inserted one at a time in Hilbert order.
func (t *Tree) buildNode(entries []*Envelope) (Node, error) {
	if len(entries) == 0 {
		return nil, illegalState("building a node without entries")
	}
	dims := len(boundsOf(entries).liveAxes())
	for order := 0; order <= t.maxOrder; order++ {
		if t.capacityAt(dims, order) >= len(entries) {
			return t.newLeaf(order, entries)
		}
	}

	var root Node
	for _, e := range t.hilbertSorted(entries) {
		if err := t.insertInto(&root, e); err != nil {
			return nil, err
		}
	}
	root.setParent(nil)
	return root, nil
}

// NewFromEntries creates a tree holding entries. All entries are validated
// before anything is built.
func NewFromEntries(frame Frame, entries []*Envelope, opts ...Option) (*Tree, error) {
	t, err := New(frame, opts...)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := t.checkEnvelope("entry", e); err != nil {
			return nil, err
		}
	}
	if len(entries) == 0 {
		return t, nil
	}
	root, err := t.buildNode(entries)
	if err != nil {
		return nil, err
	}
	t.root = root
	t.count = len(entries)
	return t, nil
}

// hilbertBits is the per-axis resolution used to order a batch.
const hilbertBits = 16

// hilbertSorted returns entries ordered by the Hilbert value of their
// centres, mapped onto a 2^16 grid over the live axes of the batch.
func (t *Tree) hilbertSorted(entries []*Envelope) []*Envelope {
	bounds := boundsOf(entries)
	axes := bounds.liveAxes()
	order := hilbertBits
	if len(axes) > 0 {
		order = min(hilbertBits, 63/len(axes))
	}
	hilbertMax := float64(uint32(1)<<order - 1)

	boxes := append([]*Envelope(nil), entries...)
	values := make([]uint64, len(boxes))
	coords := make([]uint32, len(axes))
	// map item centers into Hilbert coordinate space and calculate Hilbert values
	for i, b := range boxes {
		for j, axis := range axes {
			coords[j] = uint32(hilbertMax * (b.Median(axis) - bounds.Lower(axis)) / bounds.Span(axis))
		}
		values[i] = hilbertIndex(order, coords)
	}
	if len(boxes) != 0 {
		sortValuesAndBoxes(values, boxes, 0, len(boxes)-1)
	}
	return boxes
}

// custom quicksort that sorts envelopes alongside their hilbert values
func sortValuesAndBoxes(values []uint64, boxes []*Envelope, left, right int) {
	if left >= right {
		return
	}

	pivot := values[(left+right)>>1]
	i := left - 1
	j := right + 1

	for {
		i++
		for values[i] < pivot {
			i++
		}
		j--
		for values[j] > pivot {
			j--
		}
		if i >= j {
			break
		}
		values[i], values[j] = values[j], values[i]
		boxes[i], boxes[j] = boxes[j], boxes[i]
	}

	sortValuesAndBoxes(values, boxes, left, j)
	sortValuesAndBoxes(values, boxes, j+1, right)
}
