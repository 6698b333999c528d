package pathjerryio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/robopath/config"
	"github.com/npillmayer/robopath/format"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/robopath/units"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSampler returns prepared waypoints per path name.
type fixedSampler map[string][]sampling.Waypoint

func (fs fixedSampler) Sample(p *path.Path, density float64) []sampling.Waypoint {
	return fs[p.Name]
}

type staticMetadata map[string]any

func (m staticMetadata) ExportMetadata() (map[string]any, error) {
	return m, nil
}

type failingMetadata struct{}

func (failingMetadata) ExportMetadata() (map[string]any, error) {
	return nil, errors.New("no metadata today")
}

func wp(x, y, speed float64, ref int) sampling.Waypoint {
	return sampling.Waypoint{
		Pos:       robopath.P(x, y),
		Speed:     units.Q(speed, units.MeterPerSecond),
		SampleRef: ref,
	}
}

func speeds(ss ...float64) []sampling.Waypoint {
	w := make([]sampling.Waypoint, len(ss))
	for i, s := range ss {
		w[i] = wp(float64(i), 0, s, 0)
	}
	return w
}

func approach() *path.Path {
	return path.New("approach").Start(robopath.P(0, 0)).
		LineTo(robopath.P(60, 0)).
		CurveTo(robopath.P(90, 0), robopath.P(120, 30), robopath.P(120, 60)).
		End()
}

func testApp(paths ...*path.Path) *format.App {
	return &format.App{Config: config.Default(), Paths: paths}
}

func TestVelocityCompression(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	norm := newNormalizer(units.Centimeter)
	assert.Equal(t, []string{CompressedVelocities}, velocityLines(norm, speeds(5.4, 5.4, 5.4, 3.0)))
	assert.Equal(t, []string{CompressedVelocities}, velocityLines(norm, speeds(5.4, 5.4, 5.4)))
	assert.Equal(t, []string{CompressedVelocities}, velocityLines(norm, speeds(5.4, 0)))
	assert.Equal(t, []string{CompressedVelocities}, velocityLines(norm, speeds(5.4000001, 1)),
		"speeds compare by their display value")
}

func TestVelocityExplicit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	norm := newNormalizer(units.Centimeter)
	assert.Equal(t, []string{"0, 0, 1"}, velocityLines(norm, speeds(1.0)))
	assert.Equal(t, []string{"0, 0, 5.4"}, velocityLines(norm, speeds(5.4)),
		"a single waypoint is never compressed")
	assert.Empty(t, velocityLines(norm, nil))
	assert.Empty(t, velocityLines(norm, []sampling.Waypoint{}))
	assert.Equal(t, []string{"0, 0, 5.4", "0.01, 0, 3", "0.02, 0, 5.4"},
		velocityLines(norm, speeds(5.4, 3, 5.4)))
}

func TestExportSnapshot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	second := path.New("second").Start(robopath.P(0, 0)).
		CurveTo(robopath.P(0, 50), robopath.P(-20, 70)).End()
	f := NewWithSampler(fixedSampler{
		"approach": {wp(0, 0, 5.4, 0), wp(60, 0, 5.4, 1), wp(100, 10, 5.4, 1), wp(120, 60, 0.5, 1)},
		"second":   {wp(0, 0, 4, 0), wp(-20, 70, 0.5, 0)},
	})
	out, err := f.Export(testApp(approach(), second))
	require.NoError(t, err)
	want := "#PATH-START approach\n" +
		"moveToPoint(23.622, 0, 2000);\n" +
		"#POINTS-START\n" +
		"0.6, 0\n" +
		"0.9, 0\n" +
		"1.2, 0.3\n" +
		"1.2, 0.6\n" +
		"#VELOCITIES-START\n" +
		"0, 0, 0\n" +
		"#PATH-START second\n" +
		"#POINTS-START\n" +
		"0, 0\n" +
		"0, 0.5\n" +
		"-0.2, 0.7\n" +
		"#VELOCITIES-START\n" +
		"0, 0, 4\n" +
		"-0.2, 0.7, 0.5\n" +
		"#PATH.JERRYIO-DATA {}"
	assert.Equal(t, want, string(out))
}

func TestExportLinesOnly(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := path.New("square").Start(robopath.P(0, 0)).
		LineTo(robopath.P(2.54, 0)).LineTo(robopath.P(2.54, 5.08)).
		LineTo(robopath.P(0, 5.08)).LineTo(robopath.P(0, 0)).End()
	out, err := New().Export(testApp(p))
	require.NoError(t, err)
	var moves []string
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "moveToPoint(") {
			moves = append(moves, line)
		}
	}
	assert.Equal(t, []string{
		"moveToPoint(1, 0, 2000);",
		"moveToPoint(1, 2, 2000);",
		"moveToPoint(0, 2, 2000);",
		"moveToPoint(0, 0, 2000);",
	}, moves)
	assert.NotContains(t, string(out), "#POINTS-START")
}

func TestExportUniformSampler(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := New().Export(testApp(approach()))
	require.NoError(t, err)
	// default speeds: cruise speed everywhere, but the path's end point
	assert.Contains(t, string(out), "#VELOCITIES-START\n0, 0, 0\n#PATH.JERRYIO-DATA ")
}

func TestExportEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := New().Export(testApp())
	require.NoError(t, err)
	assert.Equal(t, "#PATH.JERRYIO-DATA {}", string(out))
}

func TestExportTrailerOnce(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	app := testApp(approach(), approach(), approach())
	app.Metadata = staticMetadata{"name": "three"}
	out, err := New().Export(app)
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(out, []byte(format.MetadataMarker)))
	assert.Greater(t, bytes.Index(out, []byte(format.MetadataMarker)),
		bytes.LastIndex(out, []byte("#VELOCITIES-START")))
	assert.True(t, bytes.HasSuffix(out, []byte(`{"name":"three"}`)))
}

func TestExportSkipsMalformedSegments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := approach()
	p.Segments = append([]*path.Segment{path.NewSegment(robopath.P(1, 1))}, p.Segments...)
	p.Segments = append(p.Segments, path.NewSegment(robopath.P(120, 60), robopath.P(math.NaN(), 0)))
	p.Segments = append(p.Segments, path.NewSegment(robopath.P(120, 60), robopath.P(254, 0)))
	out, err := New().Export(testApp(p, nil))
	require.NoError(t, err)
	text := string(out)
	assert.Equal(t, 2, strings.Count(text, "moveToPoint("))
	assert.Contains(t, text, "moveToPoint(100, 0, 2000);")
	assert.Equal(t, 1, strings.Count(text, "#POINTS-START"))
}

func TestExportFieldWarnings(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	inside := approach()
	outside := path.New("outside").Start(robopath.P(0, 0)).LineTo(robopath.P(254, 0)).End()
	var warnings []format.FieldWarning
	app := testApp(inside, outside)
	app.Warn = func(w format.FieldWarning) { warnings = append(warnings, w) }
	_, err := New().Export(app)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "outside", warnings[0].Path)
	assert.Greater(t, warnings[0].Outside, 0)
	assert.Equal(t, 0.0, warnings[0].Excess, "a straight path has no area")

	app.Config.FieldWidth = 0
	warnings = nil
	_, err = New().Export(app)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestExportDeterministic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	app := testApp(approach())
	app.Metadata = staticMetadata{"a": 1.0, "b": []any{"x", true}}
	out1, err := New().Export(app)
	require.NoError(t, err)
	out2, err := New().Export(app)
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestExportErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	app := testApp(approach())
	app.Config.PointDensity = 0
	_, err := New().Export(app)
	assert.True(t, errors.Is(err, config.ErrInvalidDensity))

	app = testApp(approach())
	app.Metadata = failingMetadata{}
	_, err = New().Export(app)
	assert.Error(t, err)
}

func TestMetadataRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	meta := staticMetadata{
		"appVersion": "0.1.0",
		"paths":      []any{map[string]any{"name": "approach", "len": 2.5}},
		"nested":     map[string]any{"ok": true, "none": nil},
	}
	app := testApp(approach())
	app.Metadata = meta
	f := New()
	out, err := f.Export(app)
	require.NoError(t, err)
	got, ok := f.ImportMetadata(out)
	require.True(t, ok)
	assert.Equal(t, map[string]any(meta), got)
}

func TestMetadataWithMarkerInNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, name := range []string{"a #PATH.JERRYIO-DATA b", "x #PATH.JERRYIO-DATA {}"} {
		p := approach()
		p.Name = name
		meta := staticMetadata{"paths": []any{map[string]any{"name": name}}}
		app := testApp(p)
		app.Metadata = meta
		f := New()
		out, err := f.Export(app)
		require.NoError(t, err)
		got, ok := f.ImportMetadata(out)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, map[string]any(meta), got)
	}
}

func TestImportMetadataAbsent(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New()
	_, ok := f.ImportMetadata([]byte("#PATH-START x\nmoveToPoint(1, 2, 2000);\n"))
	assert.False(t, ok)
	_, ok = f.ImportMetadata([]byte("#PATH.JERRYIO-DATA {broken"))
	assert.False(t, ok)
	_, ok = f.ImportMetadata(nil)
	assert.False(t, ok)
}

func TestImportPathsUnsupported(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f := New()
	out, err := f.Export(testApp(approach()))
	require.NoError(t, err)
	for _, buf := range [][]byte{nil, {}, []byte("garbage"), out} {
		paths, err := f.ImportPaths(buf)
		assert.Nil(t, paths)
		assert.True(t, errors.Is(err, format.ErrUnsupported))
	}
}

func TestRegistered(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	f, err := format.Lookup(Name)
	require.NoError(t, err)
	assert.Equal(t, "path.jerryio v0.1", f.Name())
	assert.NotEmpty(t, f.Description())
	assert.Contains(t, format.Names(), Name)
}
