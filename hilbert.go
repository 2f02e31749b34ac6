package hrtree

import (
	"fmt"
	"iter"
)

// maxCurveBits bounds order*dims for curves whose cells are materialised.
const maxCurveBits = 20

// Curve is the canonical Hilbert curve of a given order over dims axes. The
// point at rank r is the r'th grid tuple visited; every coordinate lies in
// [0, 2^order).
type Curve struct {
	order  int
	dims   int
	points [][]uint32 // rank -> tuple
	ranks  []uint32   // row-major tuple key -> rank
}

// NewCurve enumerates the Hilbert curve of the given order and dimension.
func NewCurve(order, dims int) (*Curve, error) {
	if order < 0 || dims < 0 || order > 16 || order*dims > maxCurveBits {
		return nil, fmt.Errorf("%w: unsupported curve order %d over %d axes", ErrInvalidArgument, order, dims)
	}
	return newCurve(order, dims), nil
}

func newCurve(order, dims int) *Curve {
	n := 1 << (order * dims)
	c := &Curve{
		order:  order,
		dims:   dims,
		points: make([][]uint32, n),
		ranks:  make([]uint32, n),
	}
	mask := uint32(1)<<order - 1
	tuple := make([]uint32, dims)
	for key := 0; key < n; key++ {
		k := uint32(key)
		for d := dims - 1; d >= 0; d-- {
			tuple[d] = k & mask
			k >>= order
		}
		r := hilbertIndex(order, tuple)
		c.ranks[key] = uint32(r)
		c.points[r] = append([]uint32(nil), tuple...)
	}
	return c
}

func (c *Curve) Order() int { return c.order }
func (c *Curve) Dims() int  { return c.dims }
func (c *Curve) Len() int   { return len(c.points) }

// Point returns the grid tuple at rank. The slice must not be modified.
func (c *Curve) Point(rank int) []uint32 { return c.points[rank] }

// Rank returns the position of tuple along the curve.
func (c *Curve) Rank(tuple []uint32) int {
	key := uint32(0)
	for _, v := range tuple {
		key = key<<c.order | v
	}
	return int(c.ranks[key])
}

// All yields (rank, tuple) in curve order. Each call starts a fresh walk.
func (c *Curve) All() iter.Seq2[int, []uint32] {
	return func(yield func(int, []uint32) bool) {
		for r, p := range c.points {
			if !yield(r, p) {
				return
			}
		}
	}
}

// hilbertIndex maps a grid tuple to its Hilbert rank at the given order.
func hilbertIndex(order int, x []uint32) uint64 {
	switch {
	case order == 0 || len(x) == 0:
		return 0
	case len(x) == 1:
		return uint64(x[0])
	case len(x) == 2:
		return uint64(hilbertXYToIndex(uint32(order), x[0], x[1]))
	}
	return transposeToIndex(order, axesToTranspose(order, x))
}

// axesToTranspose is Skilling's "Programming the Hilbert curve" (2004)
// forward transform. It returns the transposed Hilbert index of x.
func axesToTranspose(order int, in []uint32) []uint32 {
	x := append([]uint32(nil), in...)
	n := len(x)
	m := uint32(1) << (order - 1)

	// Inverse undo
	for q := m; q > 1; q >>= 1 {
		p := q - 1
		for i := 0; i < n; i++ {
			if x[i]&q != 0 {
				x[0] ^= p
			} else {
				t := (x[0] ^ x[i]) & p
				x[0] ^= t
				x[i] ^= t
			}
		}
	}

	// Gray encode
	for i := 1; i < n; i++ {
		x[i] ^= x[i-1]
	}
	t := uint32(0)
	for q := m; q > 1; q >>= 1 {
		if x[n-1]&q != 0 {
			t ^= q - 1
		}
	}
	for i := range x {
		x[i] ^= t
	}
	return x
}

// transposeToIndex interleaves the transposed form, most significant bit
// of the first axis first.
func transposeToIndex(order int, x []uint32) uint64 {
	var idx uint64
	for b := order - 1; b >= 0; b-- {
		for _, v := range x {
			idx = idx<<1 | uint64(v>>b&1)
		}
	}
	return idx
}

// hilbertXYToIndex computes the 2-D Hilbert index of (x, y) for an order n
// curve, 1 <= n <= 16.
func hilbertXYToIndex(n uint32, x uint32, y uint32) uint32 {
	x = x << (16 - n)
	y = y << (16 - n)

	var A, B, C, D uint32

	// Initial prefix scan round, prime with x and y
	{
		a := uint32(x ^ y)
		b := uint32(0xFFFF ^ a)
		c := uint32(0xFFFF ^ (x | y))
		d := uint32(x & (y ^ 0xFFFF))

		A = a | (b >> 1)
		B = (a >> 1) ^ a

		C = ((c >> 1) ^ (b & (d >> 1))) ^ c
		D = ((a & (c >> 1)) ^ (d >> 1)) ^ d
	}

	for _, shift := range [...]uint32{2, 4} {
		a := A
		b := B
		c := C
		d := D

		A = ((a & (a >> shift)) ^ (b & (b >> shift)))
		B = ((a & (b >> shift)) ^ (b & ((a ^ b) >> shift)))

		C ^= ((a & (c >> shift)) ^ (b & (d >> shift)))
		D ^= ((b & (c >> shift)) ^ ((a ^ b) & (d >> shift)))
	}

	// Final round and projection
	{
		a := A
		b := B
		c := C
		d := D

		C ^= ((a & (c >> 8)) ^ (b & (d >> 8)))
		D ^= ((b & (c >> 8)) ^ ((a ^ b) & (d >> 8)))
	}

	// Undo transformation prefix scan
	a := uint32(C ^ (C >> 1))
	b := uint32(D ^ (D >> 1))

	// Recover index bits
	i0 := uint32(x ^ y)
	i1 := uint32(b | (0xFFFF ^ (i0 | a)))

	return ((interleave(i1) << 1) | interleave(i0)) >> (32 - 2*n)
}

// From https://github.com/rawrunprotected/hilbert_curves (public domain)
func interleave(x uint32) uint32 {
	x = (x | (x << 8)) & 0x00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F
	x = (x | (x << 2)) & 0x33333333
	x = (x | (x << 1)) & 0x55555555
	return x
}
