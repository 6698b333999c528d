package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/robopath/units"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gc := Default()
	require.NoError(t, gc.Validate())
	assert.Equal(t, units.Centimeter, gc.UOL)
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gc := Default()
	gc.PointDensity = 0
	assert.True(t, errors.Is(gc.Validate(), ErrInvalidDensity))
	gc.PointDensity = 1e-300
	assert.True(t, errors.Is(gc.Validate(), ErrInvalidDensity))
	gc.PointDensity = MinPointDensity
	assert.NoError(t, gc.Validate())
	gc = Default()
	gc.UOL = 0
	assert.True(t, errors.Is(gc.Validate(), ErrInvalidUnit))
	gc = Default()
	gc.SpeedUnit = 99
	assert.True(t, errors.Is(gc.Validate(), ErrInvalidUnit))
}

func TestLoadMissingFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gc, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), gc)
}

func TestLoadPartial(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	file := filepath.Join(t.TempDir(), "gc.yaml")
	require.NoError(t, os.WriteFile(file, []byte("uol: inch\npoint_density: 0.5\n"), 0o644))
	gc, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, units.Inch, gc.UOL)
	assert.Equal(t, 0.5, gc.PointDensity)
	assert.Equal(t, units.MeterPerSecond, gc.SpeedUnit)
}

func TestOverlayKeepsBase(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	base := Default()
	base.UOL = units.Inch
	base.SpeedUnit = units.FootPerSecond
	file := filepath.Join(t.TempDir(), "gc.yaml")
	require.NoError(t, os.WriteFile(file, []byte("point_density: 4\n"), 0o644))
	gc, err := base.Overlay(file)
	require.NoError(t, err)
	assert.Equal(t, 4.0, gc.PointDensity)
	assert.Equal(t, units.Inch, gc.UOL)
	assert.Equal(t, units.FootPerSecond, gc.SpeedUnit)
	assert.Equal(t, units.Inch, base.UOL, "base is not modified")

	require.NoError(t, os.WriteFile(file, []byte("point_density: 0\n"), 0o644))
	gc, err = base.Overlay(file)
	assert.True(t, errors.Is(err, ErrInvalidDensity))
	assert.Equal(t, base, gc)
}

func TestLoadInvalid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("uol: parsec\n"), 0o644))
	_, err := Load(bad)
	assert.True(t, errors.Is(err, units.ErrUnknownUnit))
	neg := filepath.Join(dir, "neg.yaml")
	require.NoError(t, os.WriteFile(neg, []byte("point_density: -1\n"), 0o644))
	_, err = Load(neg)
	assert.True(t, errors.Is(err, ErrInvalidDensity))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	file := filepath.Join(t.TempDir(), "gc.yaml")
	gc := Default()
	gc.UOL = units.Millimeter
	gc.SpeedUnit = units.RPM
	gc.FieldWidth = 0
	require.NoError(t, gc.Save(file))
	loaded, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, gc, loaded)
}
