package hrtree

import "cmp"

// Calculator supplies the cost functions used to choose subtrees and split
// nodes. A custom calculator can be injected with WithCalculator, for
// example to handle periodic axes.
type Calculator interface {
	// Edge is the perimeter-like cost of an envelope.
	Edge(e *Envelope) float64
	// Area is the volume of an envelope.
	Area(e *Envelope) float64
	// Overlap is the volume shared by two envelopes, 0 when disjoint.
	Overlap(a, b *Envelope) float64
	// Enlargement is how much e has to grow to also cover add.
	Enlargement(e, add *Envelope) float64
	// Compare orders two envelopes along axis, by their upper bound when
	// upper is set and by their lower bound otherwise.
	Compare(a, b *Envelope, axis int, upper bool) int
}

// DefaultCalculator implements Calculator for cartesian frames.
type DefaultCalculator struct{}

func (DefaultCalculator) Edge(e *Envelope) float64 {
	var sum float64
	for i := 0; i < e.Dimension(); i++ {
		sum += e.Span(i)
	}
	return 2 * sum
}

func (DefaultCalculator) Area(e *Envelope) float64 {
	area := 1.0
	for i := 0; i < e.Dimension(); i++ {
		area *= e.Span(i)
	}
	return area
}

// Overlap ignores axes on which both envelopes are flat, so that boxes lying
// in a common plane still report the overlap within that plane. Envelopes
// that are flat on every axis never overlap.
func (DefaultCalculator) Overlap(a, b *Envelope) float64 {
	overlap := 1.0
	counted := false
	for i := 0; i < a.Dimension(); i++ {
		lo := max(a.Lower(i), b.Lower(i))
		hi := min(a.Upper(i), b.Upper(i))
		if hi < lo {
			return 0
		}
		if a.Degenerate(i) && b.Degenerate(i) {
			continue
		}
		overlap *= hi - lo
		counted = true
	}
	if !counted {
		return 0
	}
	return overlap
}

func (c DefaultCalculator) Enlargement(e, add *Envelope) float64 {
	return c.Area(e.Union(add)) - c.Area(e)
}

func (DefaultCalculator) Compare(a, b *Envelope, axis int, upper bool) int {
	if upper {
		return cmp.Or(cmp.Compare(a.Upper(axis), b.Upper(axis)), cmp.Compare(a.Lower(axis), b.Lower(axis)))
	}
	return cmp.Or(cmp.Compare(a.Lower(axis), b.Lower(axis)), cmp.Compare(a.Upper(axis), b.Upper(axis)))
}
