package hrtree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurveBijection(t *testing.T) {
	for dims := 0; dims <= 4; dims++ {
		for order := 0; order*dims <= 12 && order <= 4; order++ {
			t.Run(fmt.Sprintf("dims_%d_order_%d", dims, order), func(t *testing.T) {
				c, err := NewCurve(order, dims)
				require.NoError(t, err)
				require.Equal(t, 1<<(order*dims), c.Len())

				seen := make(map[string]bool)
				for r, p := range c.All() {
					require.Len(t, p, dims)
					for _, v := range p {
						require.Less(t, v, uint32(1)<<order)
					}
					key := fmt.Sprint(p)
					require.False(t, seen[key], "tuple %v visited twice", p)
					seen[key] = true
					require.Equal(t, r, c.Rank(p))
				}
				require.Len(t, seen, c.Len())
			})
		}
	}
}

func TestCurveAdjacency(t *testing.T) {
	for dims := 1; dims <= 4; dims++ {
		for order := 1; order*dims <= 12 && order <= 4; order++ {
			c, err := NewCurve(order, dims)
			require.NoError(t, err)
			for r := 1; r < c.Len(); r++ {
				prev, cur := c.Point(r-1), c.Point(r)
				dist := 0
				for i := range cur {
					d := int(cur[i]) - int(prev[i])
					if d < 0 {
						d = -d
					}
					dist += d
				}
				require.Equal(t, 1, dist, "dims %d order %d: rank %d %v -> %v", dims, order, r, prev, cur)
			}
		}
	}
}

func TestCurveRestartable(t *testing.T) {
	c, err := NewCurve(2, 2)
	require.NoError(t, err)

	var first, second [][]uint32
	for _, p := range c.All() {
		first = append(first, p)
	}
	for _, p := range c.All() {
		second = append(second, p)
		if len(second) == 3 {
			break
		}
	}
	require.Len(t, first, 16)
	require.Equal(t, first[:3], second)
}

func TestCurveNesting2D(t *testing.T) {
	// Every cell of the coarser curve is covered by four consecutive ranks
	// of the finer one.
	for order := 2; order <= 6; order++ {
		fine := newCurve(order, 2)
		coarse := newCurve(order-1, 2)
		for r, p := range fine.All() {
			parent := []uint32{p[0] >> 1, p[1] >> 1}
			require.Equal(t, r>>2, coarse.Rank(parent))
		}
	}
}

func TestNewCurveLimits(t *testing.T) {
	_, err := NewCurve(-1, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCurve(17, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCurve(11, 2)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestHilbertIndex1D(t *testing.T) {
	for x := uint32(0); x < 8; x++ {
		require.Equal(t, uint64(x), hilbertIndex(3, []uint32{x}))
	}
}
