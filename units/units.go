/*
Package units supports the units of length and speed used by robot paths.

A Quantity stores a value together with its unit. Quantities of different
units never mix silently: arithmetic requires matching units, and values
move between units through an explicit Converter.

Values presented to users (and written to export files) are rounded to
UserDecimals fractional digits, see Quantity.ToUser.
*/
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/npillmayer/robopath"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'units'
func tracer() tracing.Trace {
	return tracing.Select("units")
}

// UserDecimals is the number of fractional digits of user facing values.
const UserDecimals = 3

var (
	// ErrUnitMismatch indicates arithmetic between quantities of different units.
	ErrUnitMismatch = errors.New("units do not match")
	// ErrUnknownUnit indicates an unparsable unit name.
	ErrUnknownUnit = errors.New("unknown unit")
)

// Unit is the constraint for units a Quantity may carry.
type Unit interface {
	comparable
	fmt.Stringer
	// base returns the size of one unit in the base unit of its dimension,
	// or NaN if the unit is not convertible.
	base() float64
}

// === Length ================================================================

// UnitOfLength is an enum for units of length. Base unit is the millimeter.
type UnitOfLength int32

const (
	Millimeter UnitOfLength = iota + 1
	Centimeter
	Meter
	Inch
	Foot
	Tile // a 600 mm field tile
)

var lengthNames = [...]string{
	Millimeter: "mm",
	Centimeter: "cm",
	Meter:      "m",
	Inch:       "inch",
	Foot:       "ft",
	Tile:       "tile",
}

var lengthMM = [...]float64{
	Millimeter: 1,
	Centimeter: 10,
	Meter:      1000,
	Inch:       25.4,
	Foot:       304.8,
	Tile:       600,
}

// Valid is a predicate: is u a known unit of length?
func (u UnitOfLength) Valid() bool {
	return u >= Millimeter && u <= Tile
}

func (u UnitOfLength) String() string {
	if !u.Valid() {
		return fmt.Sprintf("UnitOfLength(%d)", int32(u))
	}
	return lengthNames[u]
}

func (u UnitOfLength) base() float64 {
	if !u.Valid() {
		return math.NaN()
	}
	return lengthMM[u]
}

// MarshalText encodes a unit by its short name.
func (u UnitOfLength) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, int32(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText decodes a unit from its short name.
func (u *UnitOfLength) UnmarshalText(text []byte) error {
	for i, name := range lengthNames {
		if name != "" && name == string(text) {
			*u = UnitOfLength(i)
			return nil
		}
	}
	return fmt.Errorf("%w of length: %q", ErrUnknownUnit, text)
}

// === Speed =================================================================

// UnitOfSpeed is an enum for units of speed. Base unit is meters per second.
// RPM is a display-only unit; it does not convert to linear speeds.
type UnitOfSpeed int32

const (
	MeterPerSecond UnitOfSpeed = iota + 1
	CentimeterPerSecond
	InchPerSecond
	FootPerSecond
	RPM
)

var speedNames = [...]string{
	MeterPerSecond:      "m/s",
	CentimeterPerSecond: "cm/s",
	InchPerSecond:       "inch/s",
	FootPerSecond:       "ft/s",
	RPM:                 "rpm",
}

var speedMPS = [...]float64{
	MeterPerSecond:      1,
	CentimeterPerSecond: 0.01,
	InchPerSecond:       0.0254,
	FootPerSecond:       0.3048,
	RPM:                 math.NaN(),
}

// Valid is a predicate: is u a known unit of speed?
func (u UnitOfSpeed) Valid() bool {
	return u >= MeterPerSecond && u <= RPM
}

func (u UnitOfSpeed) String() string {
	if !u.Valid() {
		return fmt.Sprintf("UnitOfSpeed(%d)", int32(u))
	}
	return speedNames[u]
}

func (u UnitOfSpeed) base() float64 {
	if !u.Valid() {
		return math.NaN()
	}
	return speedMPS[u]
}

// MarshalText encodes a unit by its short name.
func (u UnitOfSpeed) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, int32(u))
	}
	return []byte(u.String()), nil
}

// UnmarshalText decodes a unit from its short name.
func (u *UnitOfSpeed) UnmarshalText(text []byte) error {
	for i, name := range speedNames {
		if name != "" && name == string(text) {
			*u = UnitOfSpeed(i)
			return nil
		}
	}
	return fmt.Errorf("%w of speed: %q", ErrUnknownUnit, text)
}

// === Quantity ==============================================================

// Quantity is a numeric value tagged with its unit.
type Quantity[U Unit] struct {
	Value float64
	Unit  U
}

// Q is a quick notation for constructing a quantity.
func Q[U Unit](value float64, unit U) Quantity[U] {
	return Quantity[U]{Value: value, Unit: unit}
}

// Add returns q + o. Both quantities must carry the same unit.
func (q Quantity[U]) Add(o Quantity[U]) (Quantity[U], error) {
	if q.Unit != o.Unit {
		return q, fmt.Errorf("%w: %s + %s", ErrUnitMismatch, q.Unit, o.Unit)
	}
	return Q(q.Value+o.Value, q.Unit), nil
}

// Sub returns q - o. Both quantities must carry the same unit.
func (q Quantity[U]) Sub(o Quantity[U]) (Quantity[U], error) {
	if q.Unit != o.Unit {
		return q, fmt.Errorf("%w: %s - %s", ErrUnitMismatch, q.Unit, o.Unit)
	}
	return Q(q.Value-o.Value, q.Unit), nil
}

// To converts q to unit u.
func (q Quantity[U]) To(u U) Quantity[U] {
	return NewConverter(q.Unit, u).FromAtoB(q.Value)
}

// ToUser returns the value rounded to UserDecimals, with -0 normalized to 0.
func (q Quantity[U]) ToUser() float64 {
	return ToUser(q.Value)
}

// String renders the user value followed by the unit name.
func (q Quantity[U]) String() string {
	return FormatUser(q.Value) + " " + q.Unit.String()
}

// ToUser rounds v to UserDecimals fractional digits.
func ToUser(v float64) float64 {
	if !robopath.IsFinite(v) {
		return v
	}
	f := math.Pow10(UserDecimals)
	return robopath.Zap(math.Round(v*f) / f)
}

// FormatUser renders the user value of v as the shortest decimal text,
// e.g. 1.5 ⇒ "1.5", 2 ⇒ "2".
func FormatUser(v float64) string {
	return strconv.FormatFloat(ToUser(v), 'f', -1, 64)
}

// === Converter =============================================================

// Converter maps values from one unit to another. A Converter is an
// immutable value and may be shared freely.
type Converter[U Unit] struct {
	from, to U
	factor   float64
}

// NewConverter creates a converter from unit `from` to unit `to`.
// Converting between a unit and itself is the identity, even for
// display-only units. Otherwise converting from or to a display-only
// unit yields NaN values and is traced as an error.
func NewConverter[U Unit](from, to U) Converter[U] {
	c := Converter[U]{from: from, to: to, factor: 1}
	if from != to {
		c.factor = from.base() / to.base()
		if math.IsNaN(c.factor) {
			tracer().Errorf("cannot convert %s to %s", from, to)
		}
	}
	return c
}

// FromAtoB converts value (in unit A) to a quantity in unit B.
func (c Converter[U]) FromAtoB(value float64) Quantity[U] {
	return Q(value*c.factor, c.to)
}
