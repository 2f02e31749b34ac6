package hrtree

import "fmt"

// Signal controls a search from within a Visitor.
type Signal int

const (
	// Continue the traversal normally.
	Continue Signal = iota
	// SkipSubtree skips the contents of the current node. Returned from
	// Visit it behaves like Continue.
	SkipSubtree
	// SkipSibling stops visiting the remaining siblings at the current
	// level; the traversal resumes in the parent.
	SkipSibling
	// Terminate aborts the whole traversal.
	Terminate
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case SkipSubtree:
		return "skip-subtree"
	case SkipSibling:
		return "skip-sibling"
	case Terminate:
		return "terminate"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

// Visitor receives the nodes and entries matched by a search.
type Visitor interface {
	// Filter is called for every node the search enters.
	Filter(n Node) Signal
	// Visit is called once per matched entry.
	Visit(e *Envelope) Signal
}

// VisitorFuncs adapts plain functions to Visitor. A nil FilterFunc accepts
// every node; a nil VisitFunc continues after every entry.
type VisitorFuncs struct {
	FilterFunc func(n Node) Signal
	VisitFunc  func(e *Envelope) Signal
}

func (v VisitorFuncs) Filter(n Node) Signal {
	if v.FilterFunc == nil {
		return Continue
	}
	return v.FilterFunc(n)
}

func (v VisitorFuncs) Visit(e *Envelope) Signal {
	if v.VisitFunc == nil {
		return Continue
	}
	return v.VisitFunc(e)
}

// Search visits every entry intersecting region. A nil region visits
// everything.
func (t *Tree) Search(region *Envelope, v Visitor) error {
	if v == nil {
		return fmt.Errorf("%w: nil visitor", ErrInvalidArgument)
	}
	if region != nil {
		if err := t.checkEnvelope("region", region); err != nil {
			return err
		}
	}
	if t.root == nil {
		return nil
	}
	t.searchNode(t.root, region, v)
	return nil
}

// Collect returns the entries intersecting region. A nil region returns
// every entry.
func (t *Tree) Collect(region *Envelope) ([]*Envelope, error) {
	var out []*Envelope
	err := t.Search(region, VisitorFuncs{VisitFunc: func(e *Envelope) Signal {
		out = append(out, e)
		return Continue
	}})
	return out, err
}

func (t *Tree) searchNode(n Node, region *Envelope, v Visitor) Signal {
	if region != nil && !region.Intersects(n.Boundary()) {
		return Continue
	}
	switch v.Filter(n) {
	case SkipSubtree:
		return Continue
	case SkipSibling:
		return SkipSibling
	case Terminate:
		return Terminate
	}
	if region != nil && region.Contains(n.Boundary()) {
		region = nil
	}

	switch n := n.(type) {
	case *Branch:
		for _, c := range n.children {
			switch t.searchNode(c, region, v) {
			case Terminate:
				return Terminate
			case SkipSibling:
				return Continue
			}
		}
	case *Leaf:
		for _, c := range n.cells {
			if len(c.entries) == 0 || (region != nil && !region.Intersects(c.boundary)) {
				continue
			}
			for _, e := range c.entries {
				if region != nil && !region.Intersects(e) {
					continue
				}
				switch v.Visit(e) {
				case Terminate:
					return Terminate
				case SkipSibling:
					return Continue
				}
			}
		}
	}
	return Continue
}
