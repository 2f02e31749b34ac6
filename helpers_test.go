package hrtree

import (
	"math/rand"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T, opts ...Option) *Tree {
	t.Helper()
	tr, err := New(Cartesian(2), opts...)
	require.NoError(t, err)
	return tr
}

func randomBox(rnd *rand.Rand, maxStart, maxWidth float64) *Envelope {
	minX := rnd.Float64() * maxStart
	minY := rnd.Float64() * maxStart
	maxX := minX + rnd.Float64()*maxWidth
	maxY := minY + rnd.Float64()*maxWidth

	minX = float64(int(minX*100)) / 100
	minY = float64(int(minY*100)) / 100
	maxX = float64(int(maxX*100)) / 100
	maxY = float64(int(maxY*100)) / 100
	return NewBox(minX, minY, maxX, maxY)
}

// unitSquares returns n unit squares on a coarse grid, ten units apart.
func unitSquares(n, perRow int) []*Envelope {
	out := make([]*Envelope, n)
	for i := range out {
		x := float64(i%perRow) * 10
		y := float64(i/perRow) * 10
		out[i] = NewBox(x, y, x+1, y+1)
	}
	return out
}

func collectAll(t *testing.T, tr *Tree, region *Envelope) map[*Envelope]int {
	t.Helper()
	seen := make(map[*Envelope]int)
	err := tr.Search(region, VisitorFuncs{VisitFunc: func(e *Envelope) Signal {
		seen[e]++
		return Continue
	}})
	require.NoError(t, err)
	return seen
}

func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()
	if tr.root == nil {
		require.Equal(t, 0, tr.Len())
		return
	}
	require.Nil(t, tr.root.Parent())
	require.Equal(t, tr.Len(), checkNode(t, tr, tr.root))
}

func checkNode(t *testing.T, tr *Tree, n Node) int {
	t.Helper()
	entries := n.entries()
	require.NotEmpty(t, entries, "empty node retained")
	require.Equal(t, len(entries), n.Len())
	if want := boundsOf(entries); !want.Equal(n.Boundary()) {
		t.Fatalf("boundary %v does not bound contents %v:\n%s", n.Boundary(), want, spew.Sdump(entries))
	}

	switch n := n.(type) {
	case *Branch:
		require.GreaterOrEqual(t, len(n.children), 2)
		require.LessOrEqual(t, len(n.children), tr.MaxElements())
		total := 0
		for _, c := range n.children {
			require.Same(t, n, c.Parent())
			total += checkNode(t, tr, c)
		}
		return total
	case *Leaf:
		require.LessOrEqual(t, n.Order(), tr.HilbertOrder())
		require.Equal(t, tr.capacityAt(n.LiveDims(), n.Order()), n.Capacity())
		require.LessOrEqual(t, n.Len(), n.Capacity())
		require.Len(t, n.cells, 1<<(n.LiveDims()*n.Order()))
		for i, c := range n.cells {
			require.Equal(t, i, c.HilbertValue())
			require.LessOrEqual(t, c.Len(), tr.MaxElements())
			if want := boundsOf(c.entries); !want.Equal(c.Boundary()) {
				t.Fatalf("cell %d boundary %v does not bound %s", i, c.Boundary(), spew.Sdump(c.entries))
			}
		}
		return n.Len()
	}
	t.Fatalf("unexpected node %T", n)
	return 0
}
