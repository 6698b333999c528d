package path

import (
	"fmt"

	"github.com/npillmayer/robopath"
)

// NewSegment creates a segment from its control points. Two control points
// make a line, more make a curve.
func NewSegment(controls ...robopath.Pair) *Segment {
	return &Segment{Controls: controls}
}

// Classify returns the variant of a segment, based solely on its control
// point count: a segment with more than two control points is a curve.
func Classify(seg *Segment) Kind {
	if len(seg.Controls) > 2 {
		return Curve
	}
	return Line
}

// Kind returns the variant of seg, see Classify.
func (seg *Segment) Kind() Kind {
	return Classify(seg)
}

// First returns the start point of a segment.
func (seg *Segment) First() robopath.Pair {
	return seg.Controls[0]
}

// Last returns the terminal control point of a segment.
func (seg *Segment) Last() robopath.Pair {
	return seg.Controls[len(seg.Controls)-1]
}

// WithKeyframes adds speed keyframes to a segment. Part of builder
// functionality.
func (seg *Segment) WithKeyframes(kf ...SpeedKeyframe) *Segment {
	seg.Keyframes = append(seg.Keyframes, kf...)
	return seg
}

// Validate checks a single segment for export- or sample-ability.
func (seg *Segment) Validate() error {
	if len(seg.Controls) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewControls, len(seg.Controls))
	}
	for i, c := range seg.Controls {
		if !c.IsFinite() {
			return fmt.Errorf("%w at control %d", ErrInvalidControl, i)
		}
	}
	return nil
}

// Validate checks a path segment by segment. Export is tolerant of
// malformed segments; Validate lets clients find them upfront.
func (p *Path) Validate() error {
	if p == nil {
		return ErrNilPath
	}
	for i, seg := range p.Segments {
		if err := seg.Validate(); err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		if i > 0 {
			prev := p.Segments[i-1]
			if len(prev.Controls) > 0 && !prev.Last().Equal(seg.First()) {
				return fmt.Errorf("%w: segment %d", ErrBrokenChain, i)
			}
		}
	}
	return nil
}
