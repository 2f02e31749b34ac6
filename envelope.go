package hrtree

import (
	"fmt"
	"math"
	"strings"
)

// Frame describes the coordinate reference frame shared by a tree and
// everything stored in it.
type Frame interface {
	Dimension() int
	Equal(other Frame) bool
}

type namedFrame struct {
	name string
	dim  int
}

// Cartesian returns a plain cartesian frame of the given dimension.
func Cartesian(dim int) Frame {
	return namedFrame{name: "cartesian", dim: dim}
}

// NamedFrame returns a frame that is only equal to frames with the same name
// and dimension.
func NamedFrame(name string, dim int) Frame {
	return namedFrame{name: name, dim: dim}
}

func (f namedFrame) Dimension() int { return f.dim }

func (f namedFrame) Equal(other Frame) bool {
	o, ok := other.(namedFrame)
	return ok && o == f
}

func (f namedFrame) String() string {
	return fmt.Sprintf("%s/%dD", f.name, f.dim)
}

// Envelope is an axis-aligned bounding box in a Frame.
// Envelopes are treated as immutable once created.
type Envelope struct {
	frame Frame
	lower []float64
	upper []float64
}

// NewEnvelope creates an envelope from its lower and upper corners.
func NewEnvelope(frame Frame, lower, upper []float64) (*Envelope, error) {
	if frame == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidArgument)
	}
	dim := frame.Dimension()
	if len(lower) != dim || len(upper) != dim {
		return nil, fmt.Errorf("%w: envelope corners have %d and %d coordinates, frame has %d",
			ErrInvalidArgument, len(lower), len(upper), dim)
	}
	for i := range lower {
		if math.IsNaN(lower[i]) || math.IsNaN(upper[i]) {
			return nil, fmt.Errorf("%w: NaN coordinate on axis %d", ErrInvalidArgument, i)
		}
		if lower[i] > upper[i] {
			return nil, fmt.Errorf("%w: lower %g exceeds upper %g on axis %d",
				ErrInvalidArgument, lower[i], upper[i], i)
		}
	}
	return &Envelope{
		frame: frame,
		lower: append([]float64(nil), lower...),
		upper: append([]float64(nil), upper...),
	}, nil
}

// NewBox creates a 2-D cartesian envelope. The corners are normalised so
// that min <= max on both axes.
func NewBox(minX, minY, maxX, maxY float64) *Envelope {
	return &Envelope{
		frame: Cartesian(2),
		lower: []float64{math.Min(minX, maxX), math.Min(minY, maxY)},
		upper: []float64{math.Max(minX, maxX), math.Max(minY, maxY)},
	}
}

// NewPoint creates a zero-extent envelope at the given coordinates.
func NewPoint(frame Frame, coords ...float64) (*Envelope, error) {
	return NewEnvelope(frame, coords, coords)
}

func (e *Envelope) Frame() Frame           { return e.frame }
func (e *Envelope) Dimension() int         { return len(e.lower) }
func (e *Envelope) Lower(axis int) float64 { return e.lower[axis] }
func (e *Envelope) Upper(axis int) float64 { return e.upper[axis] }

func (e *Envelope) Span(axis int) float64 {
	return e.upper[axis] - e.lower[axis]
}

func (e *Envelope) Median(axis int) float64 {
	return (e.lower[axis] + e.upper[axis]) / 2
}

// Degenerate reports whether the envelope has (almost) no extent on axis.
func (e *Envelope) Degenerate(axis int) bool {
	scale := math.Max(1, math.Max(math.Abs(e.lower[axis]), math.Abs(e.upper[axis])))
	return e.Span(axis) <= 1e-12*scale
}

// Intersects reports whether the two envelopes share at least one point.
// Touching boundaries count as an intersection.
func (e *Envelope) Intersects(o *Envelope) bool {
	for i := range e.lower {
		if o.upper[i] < e.lower[i] || o.lower[i] > e.upper[i] {
			return false
		}
	}
	return true
}

// Contains reports whether o lies entirely within e.
func (e *Envelope) Contains(o *Envelope) bool {
	for i := range e.lower {
		if o.lower[i] < e.lower[i] || o.upper[i] > e.upper[i] {
			return false
		}
	}
	return true
}

// Union returns the smallest envelope containing both e and o.
func (e *Envelope) Union(o *Envelope) *Envelope {
	u := e.clone()
	u.expand(o)
	return u
}

func (e *Envelope) Equal(o *Envelope) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil || len(e.lower) != len(o.lower) {
		return false
	}
	for i := range e.lower {
		if e.lower[i] != o.lower[i] || e.upper[i] != o.upper[i] {
			return false
		}
	}
	return sameFrame(e.frame, o.frame)
}

func (e *Envelope) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range e.lower {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%g..%g", e.lower[i], e.upper[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

func (e *Envelope) clone() *Envelope {
	return &Envelope{
		frame: e.frame,
		lower: append([]float64(nil), e.lower...),
		upper: append([]float64(nil), e.upper...),
	}
}

func (e *Envelope) expand(o *Envelope) {
	for i := range e.lower {
		e.lower[i] = math.Min(e.lower[i], o.lower[i])
		e.upper[i] = math.Max(e.upper[i], o.upper[i])
	}
}

// liveAxes lists the axes on which e has a usable extent.
func (e *Envelope) liveAxes() []int {
	axes := make([]int, 0, len(e.lower))
	for i := range e.lower {
		if !e.Degenerate(i) {
			axes = append(axes, i)
		}
	}
	return axes
}

// boundsOf returns a fresh minimum bounding envelope, or nil for no input.
func boundsOf(envs []*Envelope) *Envelope {
	if len(envs) == 0 {
		return nil
	}
	bb := envs[0].clone()
	for _, e := range envs[1:] {
		bb.expand(e)
	}
	return bb
}

func sameFrame(a, b Frame) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Dimension() == b.Dimension() && a.Equal(b)
}
