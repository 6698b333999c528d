package format

import (
	"errors"
	"testing"

	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFormat struct{ name string }

func (f *stubFormat) Name() string        { return f.name }
func (f *stubFormat) Description() string { return "stub" }
func (f *stubFormat) NewInstance() Format { return &stubFormat{name: f.name} }
func (f *stubFormat) PathPoints(app *App, p *path.Path) []sampling.Waypoint {
	return nil
}
func (f *stubFormat) Export(app *App) ([]byte, error) {
	return AppendMetadata(nil, MetadataMarker, app)
}
func (f *stubFormat) ImportPaths(buf []byte) ([]*path.Path, error) { return nil, ErrUnsupported }
func (f *stubFormat) ImportMetadata(buf []byte) (map[string]any, bool) {
	return ReadMetadata(buf, MetadataMarker)
}

type mapProvider map[string]any

func (m mapProvider) ExportMetadata() (map[string]any, error) { return m, nil }

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	proto := &stubFormat{name: "stub v1"}
	Register(proto)
	f, err := Lookup("stub v1")
	require.NoError(t, err)
	assert.Equal(t, "stub v1", f.Name())
	assert.NotSame(t, proto, f)
	assert.Contains(t, Names(), "stub v1")
	_, err = Lookup("no such format")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestReadMetadata(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	buf := []byte("#PATH-START a\n#PATH.JERRYIO-DATA {\"old\":1}\n#PATH.JERRYIO-DATA {\"x\":[1,2]}")
	m, ok := ReadMetadata(buf, MetadataMarker)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"x": []any{1.0, 2.0}}, m)

	buf = []byte("#PATH-START p #PATH.JERRYIO-DATA q\n#PATH.JERRYIO-DATA {\"name\":\"#PATH.JERRYIO-DATA \"}")
	m, ok = ReadMetadata(buf, MetadataMarker)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "#PATH.JERRYIO-DATA "}, m)

	for _, bad := range []string{"", "no marker", "#PATH.JERRYIO-DATA ", "#PATH.JERRYIO-DATA null",
		"#PATH.JERRYIO-DATA [1,2]", "#PATH.JERRYIO-DATA {\"a\":1} trailing"} {
		_, ok = ReadMetadata([]byte(bad), MetadataMarker)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestAppendMetadata(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	out, err := AppendMetadata([]byte("body\n"), MetadataMarker, &App{})
	require.NoError(t, err)
	assert.Equal(t, "body\n#PATH.JERRYIO-DATA {}", string(out))

	app := &App{Metadata: mapProvider{"k": "v"}}
	out, err = (&stubFormat{}).Export(app)
	require.NoError(t, err)
	m, ok := (&stubFormat{}).ImportMetadata(out)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"k": "v"}, m)

	_, err = AppendMetadata(nil, MetadataMarker, &App{Metadata: mapProvider{"f": func() {}}})
	assert.Error(t, err)
}
