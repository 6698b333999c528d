/*
Package format defines the contract of path file formats.

A Format encodes the paths of an application into a file for robot
firmware, and may be able to read paths back. Every format embeds the
application's metadata ("PDJ data") into its files, which lets the
application recover its state from a file even if the format itself
cannot be parsed back into paths.

Formats register themselves by name, see Register and Lookup.
*/
package format

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/npillmayer/robopath/config"
	"github.com/npillmayer/robopath/path"
	"github.com/npillmayer/robopath/sampling"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'format'
func tracer() tracing.Trace {
	return tracing.Select("format")
}

var (
	// ErrUnsupported indicates that a format cannot import paths from files.
	ErrUnsupported = errors.New("unable to import paths from this format, try other formats?")
	// ErrUnknownFormat indicates a lookup for an unregistered format name.
	ErrUnknownFormat = errors.New("unknown format")
)

// MetadataProvider exports the application's metadata as a JSON
// serializable mapping.
type MetadataProvider interface {
	ExportMetadata() (map[string]any, error)
}

// App is a snapshot of the application state handed to a format. Formats
// treat it as read-only; callers must not modify the paths while an export
// is in progress.
type App struct {
	Config   config.GeneralConfig
	Paths    []*path.Path
	Metadata MetadataProvider
	Warn     func(FieldWarning) // optional, receives field boundary warnings
}

// FieldWarning reports a path whose waypoints leave the playing field.
// Leaving the field does not fail an export.
type FieldWarning struct {
	Path    string  // name of the path
	Outside int     // number of waypoints outside of the field
	Excess  float64 // area of the waypoints' bounding box outside the field, in UOL²
}

func (w FieldWarning) String() string {
	return fmt.Sprintf("path %q leaves the field at %d waypoint(s), by an area of %g",
		w.Path, w.Outside, w.Excess)
}

// Format is implemented by every path file format.
type Format interface {
	// Name returns the unique name of the format, including its version.
	Name() string
	// Description returns a user facing description.
	Description() string
	// NewInstance creates a fresh instance of the format.
	NewInstance() Format
	// PathPoints samples a path at the application's point density.
	PathPoints(app *App, p *path.Path) []sampling.Waypoint
	// Export encodes all paths of app, including the metadata trailer.
	Export(app *App) ([]byte, error)
	// ImportPaths reconstructs paths from an exported file.
	ImportPaths(buf []byte) ([]*path.Path, error)
	// ImportMetadata extracts the metadata trailer of an exported file.
	ImportMetadata(buf []byte) (map[string]any, bool)
}

// === Registry ==============================================================

var registry = struct {
	sync.RWMutex
	formats map[string]func() Format
}{formats: make(map[string]func() Format)}

// Register makes a format available by its name. Registering a name twice
// replaces the earlier registration.
func Register(proto Format) {
	registry.Lock()
	defer registry.Unlock()
	name := proto.Name()
	if _, ok := registry.formats[name]; ok {
		tracer().Infof("replacing format %q", name)
	}
	registry.formats[name] = proto.NewInstance
}

// Lookup returns a new instance of the format registered under name.
func Lookup(name string) (Format, error) {
	registry.RLock()
	defer registry.RUnlock()
	create, ok := registry.formats[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return create(), nil
}

// Names returns the names of all registered formats, sorted.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.formats))
	for name := range registry.formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
