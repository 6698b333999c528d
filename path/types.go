package path

import (
	"errors"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'path'
func tracer() tracing.Trace {
	return tracing.Select("path")
}

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewControls indicates a segment with less than two control points.
	ErrTooFewControls = errors.New("segment has too few control points")
	// ErrInvalidControl indicates a control point coordinate containing NaN/Inf.
	ErrInvalidControl = errors.New("segment has invalid control point")
	// ErrBrokenChain indicates a segment not starting where its predecessor ends.
	ErrBrokenChain = errors.New("segment does not start at end of previous segment")
)

// Kind is the variant of a segment.
type Kind int8

const (
	// Line is a straight move between two control points.
	Line Kind = iota
	// Curve is a Bézier curve with three or more control points.
	Curve
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Curve:
		return "curve"
	}
	return "unknown"
}

// Config is the per-path configuration. Speeds are in the application's
// user unit of speed.
type Config struct {
	SpeedMin float64
	SpeedMax float64
}

// SpeedKeyframe sets the speed ratio YPos (0 ⇒ SpeedMin, 1 ⇒ SpeedMax) from
// position XPos (fraction of the segment's length, 0 ≤ XPos < 1) onwards.
type SpeedKeyframe struct {
	XPos float64
	YPos float64
}

// Segment is a single geometric piece of a path. Control points are in the
// application's internal unit of length.
type Segment struct {
	Controls  []robopath.Pair
	Keyframes []SpeedKeyframe
}

// Path is an ordered collection of segments, representing one planned
// robot trajectory.
type Path struct {
	Name     string
	Config   Config
	Segments []*Segment
}
