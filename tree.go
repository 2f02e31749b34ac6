// Package hrtree is an in-memory Hilbert R-tree: an R-tree whose leaves
// bucket their entries along a Hilbert curve and refine the curve before
// resorting to a physical split.
//
// A Tree is not safe for concurrent use. Callers must serialise writers and
// keep readers out while a write is in progress.
package hrtree

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type curveKey struct {
	order int
	dims  int
}

// Tree is a Hilbert R-tree over envelopes of a single frame.
type Tree struct {
	frame       Frame
	maxElements int
	maxOrder    int
	calc        Calculator
	log         *Logger

	root   Node
	count  int
	curves map[curveKey]*Curve
}

// New creates an empty tree for envelopes in frame.
func New(frame Frame, opts ...Option) (*Tree, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidArgument)
	}
	dim := frame.Dimension()
	if dim < 1 {
		return nil, fmt.Errorf("%w: frame dimension %d", ErrInvalidArgument, dim)
	}
	o := defaultOptions(dim)
	for _, fn := range opts {
		fn(&o)
	}
	switch {
	case o.maxElements < 2:
		return nil, fmt.Errorf("%w: max elements per cell must be at least 2, got %d", ErrInvalidArgument, o.maxElements)
	case o.maxOrder < 1:
		return nil, fmt.Errorf("%w: max hilbert order must be positive, got %d", ErrInvalidArgument, o.maxOrder)
	case o.maxOrder > 16 || o.maxOrder*dim > maxCurveBits:
		return nil, fmt.Errorf("%w: max hilbert order %d too large for %d dimensions", ErrInvalidArgument, o.maxOrder, dim)
	case o.calculator == nil:
		return nil, fmt.Errorf("%w: nil calculator", ErrInvalidArgument)
	}
	return &Tree{
		frame:       frame,
		maxElements: o.maxElements,
		maxOrder:    o.maxOrder,
		calc:        o.calculator,
		log:         o.logger,
		curves:      make(map[curveKey]*Curve),
	}, nil
}

func (t *Tree) Frame() Frame { return t.frame }

// Len returns the number of entries in the tree.
func (t *Tree) Len() int { return t.count }

// HilbertOrder is the maximum order a leaf may refine to.
func (t *Tree) HilbertOrder() int { return t.maxOrder }

// MaxElements is the per-cell entry limit and branch fan-out.
func (t *Tree) MaxElements() int { return t.maxElements }

// Root is nil for an empty tree.
func (t *Tree) Root() Node { return t.root }

// Bounds returns the bounding envelope of all entries, nil when empty.
func (t *Tree) Bounds() *Envelope {
	if t.root == nil {
		return nil
	}
	return t.root.Boundary()
}

func (t *Tree) checkEnvelope(what string, e *Envelope) error {
	if e == nil {
		return fmt.Errorf("%w: nil %s", ErrInvalidArgument, what)
	}
	if e.Dimension() != t.frame.Dimension() || !sameFrame(e.Frame(), t.frame) {
		return &FrameMismatchError{Expected: t.frame, Actual: e.Frame()}
	}
	return nil
}

type dumpCell struct {
	Rank    int      `yaml:"rank"`
	Coords  []uint32 `yaml:"coords,flow"`
	Entries []string `yaml:"entries"`
}

type dumpNode struct {
	Kind     string     `yaml:"kind"`
	Boundary string     `yaml:"boundary"`
	Count    int        `yaml:"count"`
	Order    *int       `yaml:"order,omitempty"`
	Cells    []dumpCell `yaml:"cells,omitempty"`
	Children []dumpNode `yaml:"children,omitempty"`
}

// Dump writes the structure of the tree as YAML, skipping empty cells.
func (t *Tree) Dump(w io.Writer) error {
	doc := struct {
		Count        int       `yaml:"count"`
		MaxElements  int       `yaml:"max_elements"`
		HilbertOrder int       `yaml:"max_hilbert_order"`
		Root         *dumpNode `yaml:"root"`
	}{
		Count:        t.count,
		MaxElements:  t.maxElements,
		HilbertOrder: t.maxOrder,
	}
	if t.root != nil {
		d := dumpOf(t.root)
		doc.Root = &d
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dump tree: %w", err)
	}
	return enc.Close()
}

func dumpOf(n Node) dumpNode {
	d := dumpNode{Count: n.Len()}
	if b := n.Boundary(); b != nil {
		d.Boundary = b.String()
	}
	switch n := n.(type) {
	case *Branch:
		d.Kind = "branch"
		for _, c := range n.children {
			d.Children = append(d.Children, dumpOf(c))
		}
	case *Leaf:
		d.Kind = "leaf"
		order := n.order
		d.Order = &order
		for _, c := range n.cells {
			if len(c.entries) == 0 {
				continue
			}
			dc := dumpCell{Rank: c.rank, Coords: c.coords}
			for _, e := range c.entries {
				dc.Entries = append(dc.Entries, e.String())
			}
			d.Cells = append(d.Cells, dc)
		}
	}
	return d
}
