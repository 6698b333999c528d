package pathjerryio

import (
	"bytes"
	"fmt"

	"github.com/npillmayer/robopath/field"
	"github.com/npillmayer/robopath/format"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/robopath/units"
)

const (
	// CruiseSpeed is the firmware's default speed. A velocity block where
	// all but the last waypoint run at cruise speed is compressed.
	CruiseSpeed = 5.4
	// MoveDuration is the fixed duration argument of move instructions.
	MoveDuration = 2000
	// CompressedVelocities replaces a velocity block running at cruise speed.
	CompressedVelocities = "0, 0, 0"

	pathMarker       = "#PATH-START "
	pointsMarker     = "#POINTS-START"
	velocitiesMarker = "#VELOCITIES-START"
)

// normalizer converts lengths from the application's unit to the units of
// the file: meters for curves, inches for straight moves.
type normalizer struct {
	meters units.Converter[units.UnitOfLength]
	linear units.Converter[units.UnitOfLength]
}

func newNormalizer(uol units.UnitOfLength) normalizer {
	return normalizer{
		meters: units.NewConverter(uol, units.Meter),
		linear: units.NewConverter(uol, units.Inch),
	}
}

func (n normalizer) m(v float64) string {
	return units.FormatUser(n.meters.FromAtoB(v).Value)
}

func (n normalizer) inch(v float64) string {
	return units.FormatUser(n.linear.FromAtoB(v).Value)
}

// Export encodes all paths of app. Each path is sampled once; malformed
// segments are skipped and never abort the export. The metadata trailer is
// appended exactly once, after the last path.
func (f *Format) Export(app *format.App) ([]byte, error) {
	if err := app.Config.Validate(); err != nil {
		return nil, err
	}
	norm := newNormalizer(app.Config.UOL)
	bounds := field.New(app.Config.FieldWidth, app.Config.FieldHeight)
	var out bytes.Buffer
	for _, p := range app.Paths {
		if p == nil {
			tracer().Errorf("skipping nil path")
			continue
		}
		out.WriteString(pathMarker + p.Name + "\n")
		points := f.PathPoints(app, p)
		if bounds != nil && bounds.Leaves(points) {
			w := format.FieldWarning{
				Path:    p.Name,
				Outside: len(bounds.Outside(points)),
				Excess:  units.ToUser(bounds.Excess(points)),
			}
			tracer().Infof("%s %s²", w, app.Config.UOL)
			if app.Warn != nil {
				app.Warn(w)
			}
		}
		for i, seg := range p.Segments {
			if err := seg.Validate(); err != nil {
				tracer().Errorf("path %q: skipping segment %d: %v", p.Name, i, err)
				continue
			}
			switch path.Classify(seg) {
			case path.Curve:
				writeCurve(&out, norm, seg, sampling.Filter(points, i))
			case path.Line:
				writeMove(&out, norm, seg)
			default:
				panic(fmt.Sprintf("unhandled segment kind %s", path.Classify(seg)))
			}
		}
	}
	return format.AppendMetadata(out.Bytes(), format.MetadataMarker, app)
}

// writeCurve writes the control points and the velocity block of a curve.
func writeCurve(out *bytes.Buffer, norm normalizer, seg *path.Segment, related []sampling.Waypoint) {
	out.WriteString(pointsMarker + "\n")
	for _, c := range seg.Controls {
		fmt.Fprintf(out, "%s, %s\n", norm.m(c.X()), norm.m(c.Y()))
	}
	out.WriteString(velocitiesMarker + "\n")
	for _, line := range velocityLines(norm, related) {
		out.WriteString(line + "\n")
	}
}

// writeMove writes a move instruction to the end point of a line. The start
// point is implied by the end of the previous segment.
func writeMove(out *bytes.Buffer, norm normalizer, seg *path.Segment) {
	end := seg.Last()
	fmt.Fprintf(out, "moveToPoint(%s, %s, %d);\n", norm.inch(end.X()), norm.inch(end.Y()), MoveDuration)
}

// velocityLines encodes the waypoints of a curve segment, one line per
// waypoint, or the single compressed line if all waypoints but the last run
// at cruise speed. Lists of less than two waypoints are never compressed.
func velocityLines(norm normalizer, related []sampling.Waypoint) []string {
	if isCruise(related) {
		return []string{CompressedVelocities}
	}
	lines := make([]string, len(related))
	for i, pt := range related {
		lines[i] = fmt.Sprintf("%s, %s, %s", norm.m(pt.X()), norm.m(pt.Y()),
			units.FormatUser(pt.Speed.Value))
	}
	return lines
}

func isCruise(related []sampling.Waypoint) bool {
	if len(related) <= 1 {
		return false
	}
	for _, pt := range related[:len(related)-1] {
		if pt.Speed.ToUser() != CruiseSpeed {
			return false
		}
	}
	return true
}
