// Package config holds the general configuration of an export.
//
// A GeneralConfig is an immutable value: encoders receive a copy at call
// time and never observe later edits. Configurations are stored as YAML:
//
//	uol: cm
//	point_density: 2
//	speed_unit: m/s
//	field_width: 365.76
//	field_height: 365.76
//
// Load falls back to Default for a missing file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/robopath/units"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'config'
func tracer() tracing.Trace {
	return tracing.Select("config")
}

var (
	// ErrInvalidDensity indicates a point density below MinPointDensity.
	ErrInvalidDensity = errors.New("point density too small")
	// ErrInvalidUnit indicates an unset or unknown unit.
	ErrInvalidUnit = errors.New("invalid unit")
)

// MinPointDensity is the smallest accepted waypoint spacing, in UOL.
const MinPointDensity = 0.001

// GeneralConfig is the application wide configuration for paths.
type GeneralConfig struct {
	UOL          units.UnitOfLength `yaml:"uol" json:"uol"`                    // internal unit of length
	PointDensity float64            `yaml:"point_density" json:"pointDensity"` // waypoint spacing, in UOL
	SpeedUnit    units.UnitOfSpeed  `yaml:"speed_unit" json:"speedUnit"`       // user unit of speed
	FieldWidth   float64            `yaml:"field_width" json:"fieldWidth"`     // in UOL, 0 ⇒ no field check
	FieldHeight  float64            `yaml:"field_height" json:"fieldHeight"`   // in UOL, 0 ⇒ no field check
}

// Default returns the configuration of a new project: centimeters, a
// waypoint every 2 cm, speeds in m/s and a 12 ft square field.
func Default() GeneralConfig {
	return GeneralConfig{
		UOL:          units.Centimeter,
		PointDensity: 2,
		SpeedUnit:    units.MeterPerSecond,
		FieldWidth:   365.76,
		FieldHeight:  365.76,
	}
}

// Validate checks a configuration for usability by encoders.
func (gc GeneralConfig) Validate() error {
	if !gc.UOL.Valid() {
		return fmt.Errorf("%w of length: %s", ErrInvalidUnit, gc.UOL)
	}
	if !gc.SpeedUnit.Valid() {
		return fmt.Errorf("%w of speed: %s", ErrInvalidUnit, gc.SpeedUnit)
	}
	if !(gc.PointDensity >= MinPointDensity) || !robopath.IsFinite(gc.PointDensity) {
		return fmt.Errorf("%w: %g", ErrInvalidDensity, gc.PointDensity)
	}
	return nil
}

// Load reads a configuration from a YAML file. Keys missing from the file
// keep their default values. If the file does not exist, Load returns the
// defaults.
func Load(file string) (GeneralConfig, error) {
	return Default().Overlay(file)
}

// Overlay reads a YAML file on top of gc: keys present in the file replace
// the values of gc, all others are kept. If the file does not exist,
// Overlay returns gc unchanged. On error gc is returned as well.
func (gc GeneralConfig) Overlay(file string) (GeneralConfig, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, os.ErrNotExist) {
		tracer().Infof("no configuration at %s, keeping current values", file)
		return gc, nil
	} else if err != nil {
		return gc, err
	}
	merged := gc
	if err = yaml.Unmarshal(data, &merged); err != nil {
		return gc, fmt.Errorf("parsing %s: %w", file, err)
	}
	if err = merged.Validate(); err != nil {
		return gc, fmt.Errorf("%s: %w", file, err)
	}
	tracer().Debugf("loaded configuration from %s", file)
	return merged, nil
}

// Save writes a configuration to a YAML file.
func (gc GeneralConfig) Save(file string) error {
	data, err := yaml.Marshal(gc)
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}
