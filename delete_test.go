package hrtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeleteCollapsesToLeaf(t *testing.T) {
	tr := newTestTree(t, WithMaxElements(4), WithMaxHilbertOrder(2))
	boxes := unitSquares(10, 4)
	for _, e := range boxes {
		require.NoError(t, tr.Insert(e))
	}
	require.Equal(t, 1, tr.Root().(*Leaf).Order())

	for _, e := range boxes[:9] {
		ok, err := tr.Delete(e)
		require.NoError(t, err)
		require.True(t, ok)
		checkInvariants(t, tr)
	}
	leaf, ok := tr.Root().(*Leaf)
	require.True(t, ok)
	require.Equal(t, 0, leaf.Order())
	require.Equal(t, 1, leaf.Len())
	require.Equal(t, 1, tr.Len())
	require.Same(t, boxes[9], leaf.entries()[0])
}

func TestDeleteCollapsesBranches(t *testing.T) {
	tr := newTestTree(t, WithMaxElements(3), WithMaxHilbertOrder(1))
	boxes := unitSquares(90, 9)
	for _, e := range boxes {
		require.NoError(t, tr.Insert(e))
	}
	_, ok := tr.Root().(*Branch)
	require.True(t, ok)

	for _, e := range boxes[1:] {
		ok, err := tr.Delete(e)
		require.NoError(t, err)
		require.True(t, ok)
		checkInvariants(t, tr)
	}
	leaf, ok := tr.Root().(*Leaf)
	require.True(t, ok)
	require.Equal(t, 0, leaf.Order())
	require.Nil(t, leaf.Parent())
	require.True(t, boxes[0].Equal(tr.Bounds()))
}

func TestDeleteMissing(t *testing.T) {
	tr := newTestTree(t, WithMaxElements(4))
	for _, e := range unitSquares(20, 5) {
		require.NoError(t, tr.Insert(e))
	}
	ok, err := tr.Delete(NewBox(0.5, 0.5, 1.5, 1.5))
	require.NoError(t, err)
	require.False(t, ok)
	ok, err = tr.Delete(NewBox(1000, 1000, 1001, 1001))
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 20, tr.Len())
}

func TestDeleteByValue(t *testing.T) {
	tr := newTestTree(t)
	require.NoError(t, tr.Insert(NewBox(1, 2, 3, 4)))

	ok, err := tr.Remove(NewBox(1, 2, 3, 4))
	require.NoError(t, err)
	require.True(t, ok)
	require.Nil(t, tr.Root())

	ok, err = tr.Remove(NewBox(1, 2, 3, 4))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDeleteShrinksBoundaries(t *testing.T) {
	tr := newTestTree(t, WithMaxElements(2), WithMaxHilbertOrder(1))
	boxes := unitSquares(30, 6)
	for _, e := range boxes {
		require.NoError(t, tr.Insert(e))
	}
	far := NewBox(-100, -100, -99, -99)
	require.NoError(t, tr.Insert(far))
	require.Equal(t, -100.0, tr.Bounds().Lower(0))

	ok, err := tr.Delete(far)
	require.NoError(t, err)
	require.True(t, ok)
	checkInvariants(t, tr)
	require.True(t, boundsOf(boxes).Equal(tr.Bounds()))

	// Inserting after shrinking reuses the stale grid without breaking
	// capacity or boundaries.
	for _, e := range unitSquares(12, 3) {
		require.NoError(t, tr.Insert(NewBox(e.Lower(0)+2, e.Lower(1)+2, e.Upper(0)+2, e.Upper(1)+2)))
		checkInvariants(t, tr)
	}
}

func TestInsertDeleteRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	tr := newTestTree(t, WithMaxElements(4), WithMaxHilbertOrder(2))
	boxes := make([]*Envelope, 400)
	for i := range boxes {
		boxes[i] = randomBox(rnd, 50, 3)
		require.NoError(t, tr.Insert(boxes[i]))
	}
	checkInvariants(t, tr)

	for _, i := range rnd.Perm(len(boxes)) {
		ok, err := tr.Delete(boxes[i])
		require.NoError(t, err)
		require.True(t, ok)
	}
	checkInvariants(t, tr)
	require.Equal(t, 0, tr.Len())
	require.Nil(t, tr.Root())
	require.Empty(t, collectAll(t, tr, nil))
}

func TestTrimRejectsInconsistentParent(t *testing.T) {
	tr := newTestTree(t, WithMaxElements(2))
	a, err := tr.newLeaf(0, []*Envelope{NewBox(0, 0, 1, 1)})
	require.NoError(t, err)
	b, err := tr.newLeaf(0, []*Envelope{NewBox(5, 5, 6, 6)})
	require.NoError(t, err)
	br := newBranch(a, b)
	b.setParent(nil)
	require.ErrorIs(t, tr.trimBranch(br), ErrIllegalState)
}
