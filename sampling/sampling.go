// Package sampling converts paths into dense sequences of waypoints.
//
// Waypoints are spaced evenly along the arc length of a path, at a
// configured density, and carry a target speed derived from the path's
// speed limits and its segments' speed keyframes. Each waypoint refers
// back to the segment it was sampled from by the segment's index.
package sampling

import (
	"sort"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/units"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sampling'
func tracer() tracing.Trace {
	return tracing.Select("sampling")
}

// Waypoint is a sampled point along a path.
type Waypoint struct {
	Pos       robopath.Pair                     // in the path's unit of length
	Speed     units.Quantity[units.UnitOfSpeed] // target speed
	SampleRef int                               // index of the originating segment
}

// X is the x-coordinate of a waypoint.
func (w Waypoint) X() float64 {
	return w.Pos.X()
}

// Y is the y-coordinate of a waypoint.
func (w Waypoint) Y() float64 {
	return w.Pos.Y()
}

// Sampler produces waypoints for a path. density is the distance between
// two waypoints, in the path's unit of length.
type Sampler interface {
	Sample(p *path.Path, density float64) []Waypoint
}

// DefaultResolution is the number of chords used to approximate the arc
// length of a curve segment.
const DefaultResolution = 64

// Uniform samples waypoints at constant arc length distance. Spacing
// carries across segment boundaries. The end point of the path is always
// appended, with the path's minimum speed.
type Uniform struct {
	SpeedUnit  units.UnitOfSpeed
	Resolution int
}

var _ Sampler = (*Uniform)(nil)

// NewUniform creates a uniform sampler producing speeds in unit speedUnit.
func NewUniform(speedUnit units.UnitOfSpeed) *Uniform {
	return &Uniform{SpeedUnit: speedUnit, Resolution: DefaultResolution}
}

// MaxWaypoints limits the number of waypoints of a single path.
const MaxWaypoints = 1 << 20

// Sample returns the waypoints of p. Malformed segments are skipped and
// zero-length segments yield no waypoints; neither aborts sampling. A path
// which would need more than MaxWaypoints waypoints at density is not
// sampled at all.
func (u *Uniform) Sample(p *path.Path, density float64) []Waypoint {
	if p == nil {
		return nil
	}
	if !(density > 0) || !robopath.IsFinite(density) {
		tracer().Errorf("cannot sample path %q with density %g", p.Name, density)
		return nil
	}
	luts := make([][]float64, len(p.Segments))
	length := 0.0
	for i, seg := range p.Segments {
		if err := seg.Validate(); err != nil {
			tracer().Errorf("path %q: not sampling segment %d: %v", p.Name, i, err)
			continue
		}
		luts[i] = arcLengths(seg.Controls, u.resolution(seg))
		length += luts[i][len(luts[i])-1]
	}
	if !(length/density < MaxWaypoints) {
		tracer().Errorf("path %q: density %g too small for length %g", p.Name, density, length)
		return nil
	}
	var points []Waypoint
	ratio := 1.0 // speed ratio of the active keyframe, carried across segments
	next := 0.0  // distance into the current segment of the next waypoint
	last := -1
	for i, seg := range p.Segments {
		lut := luts[i]
		if lut == nil {
			continue
		}
		last = i
		total := lut[len(lut)-1]
		k := 0
		for d := next; d < total; d = next + float64(k)*density {
			t := paramAt(lut, d)
			r := ratioAt(seg.Keyframes, d/total, ratio)
			points = append(points, Waypoint{
				Pos:       Eval(seg.Controls, t),
				Speed:     u.speed(p.Config, r),
				SampleRef: i,
			})
			k++
		}
		next += float64(k)*density - total
		ratio = ratioAt(seg.Keyframes, 1, ratio)
	}
	if last >= 0 {
		points = append(points, Waypoint{
			Pos:       p.Segments[last].Last(),
			Speed:     units.Q(p.Config.SpeedMin, u.SpeedUnit),
			SampleRef: last,
		})
	}
	tracer().Debugf("sampled %d waypoints for path %q", len(points), p.Name)
	return points
}

// Filter returns the waypoints sampled from segment ref, in their original
// order. The input is not modified; the result is never nil.
func Filter(points []Waypoint, ref int) []Waypoint {
	related := make([]Waypoint, 0)
	for _, pt := range points {
		if pt.SampleRef == ref {
			related = append(related, pt)
		}
	}
	return related
}

func (u *Uniform) resolution(seg *path.Segment) int {
	if len(seg.Controls) == 2 {
		return 1 // chord length is exact
	}
	if u.Resolution < 1 {
		return DefaultResolution
	}
	return u.Resolution
}

func (u *Uniform) speed(cfg path.Config, ratio float64) units.Quantity[units.UnitOfSpeed] {
	return units.Q(cfg.SpeedMin+(cfg.SpeedMax-cfg.SpeedMin)*ratio, u.SpeedUnit)
}

// ratioAt returns the speed ratio at fraction frac of a segment: the ratio
// of the keyframe with the largest XPos ≤ frac, or carried if none applies.
func ratioAt(kfs []path.SpeedKeyframe, frac, carried float64) float64 {
	r, at := carried, -1.0
	for _, kf := range kfs {
		if kf.XPos <= frac && kf.XPos >= at {
			r, at = clamp01(kf.YPos), kf.XPos
		}
	}
	return r
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	} else if x > 1 {
		return 1
	}
	return x
}

// === Bézier geometry =======================================================

// Eval evaluates the Bézier curve with the given control points at t,
// using de Casteljau's algorithm. Two control points make a line.
func Eval(ctrls []robopath.Pair, t float64) robopath.Pair {
	work := make([]robopath.Pair, len(ctrls))
	copy(work, ctrls)
	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = work[i].Lerp(work[i+1], t)
		}
	}
	return work[0]
}

// Length approximates the arc length of a Bézier curve by n chords.
func Length(ctrls []robopath.Pair, n int) float64 {
	lut := arcLengths(ctrls, n)
	return lut[len(lut)-1]
}

// arcLengths returns the cumulative chord lengths at t = k/n, k = 0…n.
func arcLengths(ctrls []robopath.Pair, n int) []float64 {
	lut := make([]float64, n+1)
	prev := ctrls[0]
	for k := 1; k <= n; k++ {
		pt := Eval(ctrls, float64(k)/float64(n))
		lut[k] = lut[k-1] + prev.Dist(pt)
		prev = pt
	}
	return lut
}

// paramAt inverts an arc length table: it returns t for distance d.
func paramAt(lut []float64, d float64) float64 {
	n := len(lut) - 1
	k := sort.SearchFloat64s(lut, d)
	if k == 0 {
		return 0
	} else if k > n {
		return 1
	}
	seglen := lut[k] - lut[k-1]
	frac := 0.0
	if seglen > 0 {
		frac = (d - lut[k-1]) / seglen
	}
	return (float64(k-1) + frac) / float64(n)
}
