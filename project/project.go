// Package project holds the application's document: its configuration and
// its paths, in a JSON serializable form.
//
// Formats embed the document as metadata ("PDJ data") into exported files.
// Reading the metadata back and calling Build recovers the paths, even for
// formats which cannot parse their own instructions.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/robopath/config"
	"github.com/npillmayer/robopath/format"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'project'
func tracer() tracing.Trace {
	return tracing.Select("project")
}

// AppVersion is written into every document.
const AppVersion = "0.1.0"

// ErrInvalidDocument indicates a document which cannot be decoded.
var ErrInvalidDocument = errors.New("invalid project document")

// Document is the serializable state of the application.
type Document struct {
	AppVersion string               `json:"appVersion"`
	Format     string               `json:"format"`
	GC         config.GeneralConfig `json:"gc"`
	Paths      []PathData           `json:"paths"`
}

// PathData is the serializable form of a path.
type PathData struct {
	Name     string        `json:"name"`
	PC       PathConfig    `json:"pc"`
	Segments []SegmentData `json:"segments"`
}

// PathConfig is the serializable form of a path's configuration.
type PathConfig struct {
	SpeedMin float64 `json:"speedMin"`
	SpeedMax float64 `json:"speedMax"`
}

// SegmentData is the serializable form of a segment.
type SegmentData struct {
	Controls []Point    `json:"controls"`
	Speed    []Keyframe `json:"speed,omitempty"`
}

// Point is the serializable form of a control point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Keyframe is the serializable form of a speed keyframe.
type Keyframe struct {
	XPos float64 `json:"xPos"`
	YPos float64 `json:"yPos"`
}

var _ format.MetadataProvider = (*Document)(nil)

// NewDocument captures configuration and paths for a format.
func NewDocument(formatName string, gc config.GeneralConfig, paths []*path.Path) *Document {
	doc := &Document{
		AppVersion: AppVersion,
		Format:     formatName,
		GC:         gc,
		Paths:      make([]PathData, 0, len(paths)),
	}
	for _, p := range paths {
		if p == nil {
			continue
		}
		pd := PathData{
			Name:     p.Name,
			PC:       PathConfig{SpeedMin: p.Config.SpeedMin, SpeedMax: p.Config.SpeedMax},
			Segments: make([]SegmentData, 0, len(p.Segments)),
		}
		for _, seg := range p.Segments {
			sd := SegmentData{Controls: make([]Point, len(seg.Controls))}
			for i, c := range seg.Controls {
				sd.Controls[i] = Point{X: c.X(), Y: c.Y()}
			}
			for _, kf := range seg.Keyframes {
				sd.Speed = append(sd.Speed, Keyframe{XPos: kf.XPos, YPos: kf.YPos})
			}
			pd.Segments = append(pd.Segments, sd)
		}
		doc.Paths = append(doc.Paths, pd)
	}
	return doc
}

// ExportMetadata returns the document as a generic JSON mapping, as it
// would be decoded from JSON text.
func (doc *Document) ExportMetadata() (map[string]any, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// FromMetadata converts a metadata mapping back into a document.
func FromMetadata(m map[string]any) (*Document, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return decode(data)
}

// Decode reads a document from JSON text.
func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (*Document, error) {
	doc := &Document{GC: config.Default()}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.GC.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	tracer().Debugf("decoded document with %d paths, format %q", len(doc.Paths), doc.Format)
	return doc, nil
}

// Build creates the paths of a document.
func (doc *Document) Build() []*path.Path {
	paths := make([]*path.Path, 0, len(doc.Paths))
	for _, pd := range doc.Paths {
		p := &path.Path{
			Name:   pd.Name,
			Config: path.Config{SpeedMin: pd.PC.SpeedMin, SpeedMax: pd.PC.SpeedMax},
		}
		for _, sd := range pd.Segments {
			seg := &path.Segment{Controls: make([]robopath.Pair, len(sd.Controls))}
			for i, c := range sd.Controls {
				seg.Controls[i] = robopath.P(c.X, c.Y)
			}
			for _, kf := range sd.Speed {
				seg.Keyframes = append(seg.Keyframes, path.SpeedKeyframe{XPos: kf.XPos, YPos: kf.YPos})
			}
			p.Segments = append(p.Segments, seg)
		}
		paths = append(paths, p)
	}
	return paths
}

// App creates an application snapshot of the document, ready for export.
func (doc *Document) App() *format.App {
	return &format.App{
		Config:   doc.GC,
		Paths:    doc.Build(),
		Metadata: doc,
	}
}
