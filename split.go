package hrtree

import (
	"math"
	"slices"
)

// splitItem is an element of a node being split: an entry of a leaf, or a
// child of a branch together with its boundary.
type splitItem struct {
	env  *Envelope
	node Node
}

// split divides n into two non-empty detached nodes. Installing them in a
// parent is the caller's job.
func (t *Tree) split(n Node) (Node, Node, error) {
	switch n := n.(type) {
	case *Leaf:
		entries := n.entries()
		if len(entries) < 2 {
			return nil, nil, illegalState("cannot split leaf with %d entries", len(entries))
		}
		items := make([]splitItem, len(entries))
		for i, e := range entries {
			items[i] = splitItem{env: e}
		}
		axis := t.defineSplitAxis(items)
		left, right := t.hilbertNodeSplit(items, axis)
		a, err := t.buildNode(envelopesOf(left))
		if err != nil {
			return nil, nil, err
		}
		b, err := t.buildNode(envelopesOf(right))
		if err != nil {
			return nil, nil, err
		}
		t.log.LogSplit("leaf", axis, len(left), len(right))
		return a, b, nil

	case *Branch:
		if len(n.children) < 2 {
			return nil, nil, illegalState("cannot split branch with %d children", len(n.children))
		}
		items := make([]splitItem, len(n.children))
		for i, c := range n.children {
			items[i] = splitItem{env: c.Boundary(), node: c}
		}
		axis := t.defineSplitAxis(items)
		left, right := t.hilbertNodeSplit(items, axis)
		t.log.LogSplit("branch", axis, len(left), len(right))
		return groupNode(left), groupNode(right), nil
	}
	return nil, nil, illegalState("unknown node type %T", n)
}

// groupNode wraps a group of branch children, collapsing a singleton group
// to its sole child.
func groupNode(items []splitItem) Node {
	if len(items) == 1 {
		items[0].node.setParent(nil)
		return items[0].node
	}
	children := make([]Node, len(items))
	for i, it := range items {
		children[i] = it.node
	}
	return newBranch(children...)
}

func envelopesOf(items []splitItem) []*Envelope {
	out := make([]*Envelope, len(items))
	for i, it := range items {
		out[i] = it.env
	}
	return out
}

// sortDirections are the two orderings every split considers: ascending by
// lower bound, and descending by upper bound.
var sortDirections = [...]struct{ upper, descending bool }{
	{upper: false, descending: false},
	{upper: true, descending: true},
}

func (t *Tree) sortedAlong(items []splitItem, axis int, upper, descending bool) []splitItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b splitItem) int {
		c := t.calc.Compare(a.env, b.env, axis, upper)
		if descending {
			return -c
		}
		return c
	})
	return sorted
}

// prefixBounds returns pre, suf where pre[i] bounds sorted[:i+1] and suf[i]
// bounds sorted[i:].
func prefixBounds(sorted []splitItem) (pre, suf []*Envelope) {
	n := len(sorted)
	pre = make([]*Envelope, n)
	suf = make([]*Envelope, n)
	pre[0] = sorted[0].env.clone()
	for i := 1; i < n; i++ {
		pre[i] = pre[i-1].Union(sorted[i].env)
	}
	suf[n-1] = sorted[n-1].env.clone()
	for i := n - 2; i >= 0; i-- {
		suf[i] = suf[i+1].Union(sorted[i].env)
	}
	return pre, suf
}

// defineSplitAxis returns the axis whose cuts have the lowest total edge
// cost, or -1 when no axis has a usable spread.
func (t *Tree) defineSplitAxis(items []splitItem) int {
	n := len(items)
	minSide := max(1, n*2/5)
	bounds := boundsOf(envelopesOf(items))

	best := -1
	bestCost := math.Inf(1)
	for axis := 0; axis < bounds.Dimension(); axis++ {
		if bounds.Degenerate(axis) || uniformAlong(items, axis) {
			continue
		}
		var cost float64
		for _, dir := range sortDirections {
			sorted := t.sortedAlong(items, axis, dir.upper, dir.descending)
			pre, suf := prefixBounds(sorted)
			for k := minSide; k <= n-minSide; k++ {
				cost += t.calc.Edge(pre[k-1]) + t.calc.Edge(suf[k])
			}
		}
		if cost < bestCost {
			best = axis
			bestCost = cost
		}
	}
	return best
}

// uniformAlong reports whether every item has the same extent on axis.
func uniformAlong(items []splitItem, axis int) bool {
	lo, hi := items[0].env.Lower(axis), items[0].env.Upper(axis)
	for _, it := range items[1:] {
		if it.env.Lower(axis) != lo || it.env.Upper(axis) != hi {
			return false
		}
	}
	return true
}

// hilbertNodeSplit cuts items along axis within the middle third of both
// sort orders. A cut without overlap and with the lowest edge cost wins,
// otherwise the cut with the least overlap.
func (t *Tree) hilbertNodeSplit(items []splitItem, axis int) (left, right []splitItem) {
	n := len(items)
	if axis < 0 {
		half := n / 2
		return slices.Clone(items[:half]), slices.Clone(items[half:])
	}
	lo := max(1, (n+2)/3)
	hi := min(n-1, 2*n/3)
	if lo > hi {
		lo, hi = n/2, n/2
	}

	type cut struct {
		sorted  []splitItem
		k       int
		overlap float64
		edge    float64
	}
	var zero, least *cut
	for _, dir := range sortDirections {
		sorted := t.sortedAlong(items, axis, dir.upper, dir.descending)
		pre, suf := prefixBounds(sorted)
		for k := lo; k <= hi; k++ {
			c := &cut{
				sorted:  sorted,
				k:       k,
				overlap: t.calc.Overlap(pre[k-1], suf[k]),
				edge:    t.calc.Edge(pre[k-1]) + t.calc.Edge(suf[k]),
			}
			if c.overlap <= 0 {
				if zero == nil || c.edge < zero.edge {
					zero = c
				}
			} else if least == nil || c.overlap < least.overlap {
				least = c
			}
		}
	}
	best := zero
	if best == nil {
		best = least
	}
	return slices.Clone(best.sorted[:best.k]), slices.Clone(best.sorted[best.k:])
}
