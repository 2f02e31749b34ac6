package hrtree

import "math"

// chooseSubtree picks the child of b that should receive e.
func (t *Tree) chooseSubtree(b *Branch, e *Envelope) Node {
	if b.allLeaves() {
		return t.chooseLeafChild(b, e)
	}
	var best Node
	bestEnlargement := math.Inf(1)
	for _, c := range b.children {
		if c.Boundary().Contains(e) {
			return c
		}
		if enl := t.calc.Enlargement(c.Boundary(), e); enl < bestEnlargement {
			best = c
			bestEnlargement = enl
		}
	}
	if best == nil {
		best = b.children[0]
	}
	return best
}

// chooseLeafChild prefers a leaf that can take e without increasing its
// overlap with the siblings, the smallest such by resulting area. Otherwise
// it takes the smallest overlap increase, then the fewest entries.
func (t *Tree) chooseLeafChild(b *Branch, e *Envelope) Node {
	var zero, positive Node
	zeroArea := math.Inf(1)
	positiveInc := math.Inf(1)
	for i, c := range b.children {
		grown := c.Boundary().Union(e)
		var inc float64
		for j, s := range b.children {
			if i == j {
				continue
			}
			inc += t.calc.Overlap(grown, s.Boundary()) - t.calc.Overlap(c.Boundary(), s.Boundary())
		}
		if inc <= 0 {
			if area := t.calc.Area(grown); zero == nil || area < zeroArea {
				zero = c
				zeroArea = area
			}
			continue
		}
		if positive == nil || inc < positiveInc || (inc == positiveInc && c.Len() < positive.Len()) {
			positive = c
			positiveInc = inc
		}
	}
	if zero != nil {
		return zero
	}
	return positive
}
