/*
Package path models planned robot trajectories.

A Path is an ordered sequence of segments. Each segment is either a
straight Line (exactly two control points, start and end) or a Curve
(three or more control points, i.e. a Bézier curve of degree two or
higher). Consecutive segments share their joining point: the first
control point of a segment equals the last control point of its
predecessor.

Usage

Clients usually build a path with a kind of builder pattern:

	p := New("approach").Start(robopath.P(0, 0)).
	    LineTo(robopath.P(60, 0)).
	    CurveTo(robopath.P(90, 0), robopath.P(120, 30), robopath.P(120, 60)).
	    End()

Segments carry optional speed keyframes. A keyframe sets the speed ratio
(between the path's minimum and maximum speed) from a position along its
segment onwards, until the next keyframe of the path.

Paths are produced and edited by the application; encoders treat them as
read-only snapshots.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package path

import (
	"fmt"
	"strings"
)

// AsString returns a path as a (debugging) string, one segment per line.
//
// Example:
//
//	approach:
//	  line (0,0) -- (60,0)
//	  curve (60,0) .. controls (90,0) and (120,30) .. (120,60)
func AsString(p *Path) string {
	if p == nil {
		return "<nil path>"
	}
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(":")
	for _, seg := range p.Segments {
		b.WriteString("\n  ")
		b.WriteString(seg.String())
	}
	return b.String()
}

func (seg *Segment) String() string {
	n := len(seg.Controls)
	switch {
	case n == 0:
		return "<empty segment>"
	case n == 1:
		return fmt.Sprintf("<degenerate segment %s>", seg.Controls[0])
	case Classify(seg) == Line:
		return fmt.Sprintf("line %s -- %s", seg.Controls[0], seg.Controls[1])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "curve %s .. controls %s", seg.Controls[0], seg.Controls[1])
	for _, c := range seg.Controls[2 : n-1] {
		fmt.Fprintf(&b, " and %s", c)
	}
	fmt.Fprintf(&b, " .. %s", seg.Controls[n-1])
	return b.String()
}
