package path

import (
	"github.com/npillmayer/robopath"
)

// Builder extends a path segment by segment.
type Builder struct {
	path    *Path
	current robopath.Pair
	started bool
}

// New starts building a path with the given name. The path starts with
// DefaultConfig.
//
//	p := New("p1").Start(robopath.P(0, 0)).LineTo(robopath.P(5, 0)).End()
func New(name string) *Builder {
	return &Builder{
		path: &Path{Name: name, Config: DefaultConfig()},
	}
}

// DefaultConfig returns the per-path configuration used for new paths.
// The maximum speed is the format's cruise speed.
func DefaultConfig() Config {
	return Config{SpeedMin: 0.5, SpeedMax: 5.4}
}

// Start sets the start point of the path. Part of builder functionality.
func (b *Builder) Start(p robopath.Pair) *Builder {
	b.current = p
	b.started = true
	return b
}

// LineTo connects the current point with p by a straight line.
// Part of builder functionality.
func (b *Builder) LineTo(p robopath.Pair) *Builder {
	if !b.started {
		panic("cannot add line to empty path")
	}
	b.path.Segments = append(b.path.Segments, NewSegment(b.current, p))
	b.current = p
	return b
}

// CurveTo connects the current point by a Bézier curve. pts are the inner
// control points followed by the end point, so at least two are required;
// CurveTo(c1, c2, p) adds a cubic curve ending at p.
// Part of builder functionality.
func (b *Builder) CurveTo(pts ...robopath.Pair) *Builder {
	if !b.started {
		panic("cannot add curve to empty path")
	}
	if len(pts) < 2 {
		panic("curve needs inner control points")
	}
	controls := make([]robopath.Pair, 0, len(pts)+1)
	controls = append(controls, b.current)
	controls = append(controls, pts...)
	b.path.Segments = append(b.path.Segments, NewSegment(controls...))
	b.current = pts[len(pts)-1]
	return b
}

// Keyframes attaches speed keyframes to the most recently added segment.
// Part of builder functionality.
func (b *Builder) Keyframes(kf ...SpeedKeyframe) *Builder {
	if len(b.path.Segments) == 0 {
		panic("cannot add keyframes to path without segments")
	}
	b.path.Segments[len(b.path.Segments)-1].WithKeyframes(kf...)
	return b
}

// Speeds sets the speed limits of the path. Part of builder functionality.
func (b *Builder) Speeds(lo, hi float64) *Builder {
	b.path.Config = Config{SpeedMin: lo, SpeedMax: hi}
	return b
}

// End finishes building and returns the path.
func (b *Builder) End() *Path {
	tracer().Debugf("built path %q with %d segments", b.path.Name, len(b.path.Segments))
	return b.path
}
