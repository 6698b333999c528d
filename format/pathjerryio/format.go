package pathjerryio

import (
	"github.com/npillmayer/robopath/format"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pathjerryio'
func tracer() tracing.Trace {
	return tracing.Select("pathjerryio")
}

// Name is the registered name of this format.
const Name = "path.jerryio v0.1"

func init() {
	format.Register(New())
}

// Format is the path.jerryio v0.1 format. The zero value is not usable,
// create instances with New.
type Format struct {
	sampler sampling.Sampler // nil ⇒ uniform sampler in the app's speed unit
}

var _ format.Format = (*Format)(nil)

// New creates a format instance which samples paths uniformly.
func New() *Format {
	return &Format{}
}

// NewWithSampler creates a format instance using a custom sampler.
func NewWithSampler(s sampling.Sampler) *Format {
	return &Format{sampler: s}
}

// Name returns "path.jerryio v0.1".
func (f *Format) Name() string {
	return Name
}

// Description returns a user facing description.
func (f *Format) Description() string {
	return "The default and official format for path planning purposes and custom library. " +
		"Output is in meters and inches, speeds in the configured unit."
}

// NewInstance creates a fresh instance, sharing a custom sampler if set.
func (f *Format) NewInstance() format.Format {
	return &Format{sampler: f.sampler}
}

// PathPoints samples a path at the application's point density.
func (f *Format) PathPoints(app *format.App, p *path.Path) []sampling.Waypoint {
	s := f.sampler
	if s == nil {
		s = sampling.NewUniform(app.Config.SpeedUnit)
	}
	return s.Sample(p, app.Config.PointDensity)
}

// ImportPaths always fails with format.ErrUnsupported: instruction lines
// are not parsed back into paths.
func (f *Format) ImportPaths(buf []byte) ([]*path.Path, error) {
	return nil, format.ErrUnsupported
}

// ImportMetadata extracts the metadata trailer of an exported file.
func (f *Format) ImportMetadata(buf []byte) (map[string]any, bool) {
	return format.ReadMetadata(buf, format.MetadataMarker)
}
