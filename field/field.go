/*
Package field checks sampled paths against the boundary of the playing
field. The field is a rectangle centered at the origin, in the
application's unit of length.

Leaving the field is not an error for encoders: firmware may well accept
such paths. Clients use the check to warn users.
*/
package field

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/robopath"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'field'
func tracer() tracing.Trace {
	return tracing.Select("field")
}

// Field is the boundary of a rectangular playing field.
type Field struct {
	boundary polyclip.Polygon
}

// New creates a field of the given dimensions, centered at the origin.
// Returns nil if either dimension is not positive, meaning "no field".
func New(width, height float64) *Field {
	if !(width > 0) || !(height > 0) {
		return nil
	}
	w, h := width/2, height/2
	return &Field{
		boundary: polyclip.Polygon{box(-w, -h, w, h)},
	}
}

func box(x0, y0, x1, y1 float64) polyclip.Contour {
	return polyclip.Contour{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}
}

// Bounds returns the lower left and upper right corners of the field.
func (f *Field) Bounds() (robopath.Pair, robopath.Pair) {
	bb := f.boundary.BoundingBox()
	return robopath.P(bb.Min.X, bb.Min.Y), robopath.P(bb.Max.X, bb.Max.Y)
}

// Contains is a predicate: is p inside the field (or on its border)?
func (f *Field) Contains(p robopath.Pair) bool {
	lo, hi := f.Bounds()
	if onBorder(p, lo, hi) {
		return true
	}
	return f.boundary[0].Contains(polyclip.Point{X: p.X(), Y: p.Y()})
}

func onBorder(p, lo, hi robopath.Pair) bool {
	inX := p.X() >= lo.X()-robopath.Epsilon && p.X() <= hi.X()+robopath.Epsilon
	inY := p.Y() >= lo.Y()-robopath.Epsilon && p.Y() <= hi.Y()+robopath.Epsilon
	onX := robopath.Is0(p.X()-lo.X()) || robopath.Is0(p.X()-hi.X())
	onY := robopath.Is0(p.Y()-lo.Y()) || robopath.Is0(p.Y()-hi.Y())
	return (onX && inY) || (onY && inX)
}

// Outside returns the indices of all waypoints outside of the field.
func (f *Field) Outside(points []sampling.Waypoint) []int {
	var out []int
	for i, pt := range points {
		if !f.Contains(pt.Pos) {
			out = append(out, i)
		}
	}
	return out
}

// Leaves is a predicate: does the bounding box of the waypoints reach
// beyond the field? Waypoints touching the border do not leave the field.
func (f *Field) Leaves(points []sampling.Waypoint) bool {
	if len(points) == 0 {
		return false
	}
	lo, hi := bounds(points)
	flo, fhi := f.Bounds()
	return lo.X() < flo.X() || lo.Y() < flo.Y() || hi.X() > fhi.X() || hi.Y() > fhi.Y()
}

// Excess returns the area of the waypoints' bounding box which lies
// outside of the field.
func (f *Field) Excess(points []sampling.Waypoint) float64 {
	if !f.Leaves(points) {
		return 0
	}
	lo, hi := bounds(points)
	if robopath.Is0(hi.X()-lo.X()) || robopath.Is0(hi.Y()-lo.Y()) {
		return 0 // degenerate box, no area
	}
	area := polyclip.Polygon{box(lo.X(), lo.Y(), hi.X(), hi.Y())}
	rest := area.Construct(polyclip.DIFFERENCE, f.boundary)
	a := 0.0
	for _, c := range rest {
		a += math.Abs(shoelace(c))
	}
	tracer().Debugf("path bounds %v to %v exceed field by %g", lo, hi, a)
	return a
}

func bounds(points []sampling.Waypoint) (robopath.Pair, robopath.Pair) {
	lo, hi := points[0].Pos, points[0].Pos
	for _, pt := range points[1:] {
		lo = robopath.P(min(lo.X(), pt.X()), min(lo.Y(), pt.Y()))
		hi = robopath.P(max(hi.X(), pt.X()), max(hi.Y(), pt.Y()))
	}
	return lo, hi
}

// shoelace returns the signed area of a contour.
func shoelace(c polyclip.Contour) float64 {
	a := 0.0
	for i := range c {
		j := (i + 1) % len(c)
		a += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return a / 2
}
