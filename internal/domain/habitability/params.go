// Package habitability scores a planet's physical, atmospheric, orbital and
// geological parameters against a fixed human-habitability rubric.
//
// Everything in this package is pure: no logging, no I/O, no shared state.
// Callers may evaluate on every input change without caching.
package habitability

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Parameter names as they appear on the wire and in catalog requirements.
const (
	Temperature        = "temperature"
	Gravity            = "gravity"
	HasWater           = "hasWater"
	OxygenLevel        = "oxygenLevel"
	CarbonDioxideLevel = "carbonDioxideLevel"
	DistanceToStar     = "distanceToStar"
	SolarRadiation     = "solarRadiation"
	VolcanicActivity   = "volcanicActivity"
	StormFrequency     = "stormFrequency"
	AtmosphereDensity  = "atmosphereDensity"
	MagneticField      = "magneticField"
	RotationPeriod     = "rotationPeriod"
)

// fieldNames lists every ParameterSet field in declaration order.
var fieldNames = []string{
	Temperature,
	Gravity,
	HasWater,
	OxygenLevel,
	CarbonDioxideLevel,
	DistanceToStar,
	SolarRadiation,
	VolcanicActivity,
	StormFrequency,
	AtmosphereDensity,
	MagneticField,
	RotationPeriod,
}

// FieldNames returns the twelve parameter names in declaration order.
func FieldNames() []string {
	out := make([]string, len(fieldNames))
	copy(out, fieldNames)
	return out
}

// ParameterSet describes a planet. All twelve fields are required; the zero
// value is a valid (and very hostile) planet.
type ParameterSet struct {
	Temperature        float64 `json:"temperature" yaml:"temperature"`               // °C
	Gravity            float64 `json:"gravity" yaml:"gravity"`                       // multiples of 1 g
	HasWater           bool    `json:"hasWater" yaml:"hasWater"`                     // liquid water present
	OxygenLevel        float64 `json:"oxygenLevel" yaml:"oxygenLevel"`               // percent
	CarbonDioxideLevel float64 `json:"carbonDioxideLevel" yaml:"carbonDioxideLevel"` // percent
	DistanceToStar     float64 `json:"distanceToStar" yaml:"distanceToStar"`         // AU
	SolarRadiation     float64 `json:"solarRadiation" yaml:"solarRadiation"`         // relative flux
	VolcanicActivity   float64 `json:"volcanicActivity" yaml:"volcanicActivity"`     // 0..1
	StormFrequency     float64 `json:"stormFrequency" yaml:"stormFrequency"`         // 0..1
	AtmosphereDensity  float64 `json:"atmosphereDensity" yaml:"atmosphereDensity"`   // relative to Earth
	MagneticField      bool    `json:"magneticField" yaml:"magneticField"`
	RotationPeriod     float64 `json:"rotationPeriod" yaml:"rotationPeriod"` // hours
}

// EarthBaseline returns the Earth-like parameter set the calculator starts from.
func EarthBaseline() ParameterSet {
	return ParameterSet{
		Temperature:        15,
		Gravity:            1,
		HasWater:           true,
		OxygenLevel:        21,
		CarbonDioxideLevel: 0.04,
		DistanceToStar:     1,
		SolarRadiation:     1,
		VolcanicActivity:   0.5,
		StormFrequency:     0.3,
		AtmosphereDensity:  1,
		MagneticField:      true,
		RotationPeriod:     24,
	}
}

// Kind tells whether a Value holds a number or a boolean.
type Kind int

// Value kinds.
const (
	KindNumber Kind = iota
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a single parameter value: either a number or a boolean.
type Value struct {
	Kind   Kind
	Number float64
	Bool   bool
}

// Number wraps a numeric parameter value.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Bool wraps a boolean parameter value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func (v Value) String() string {
	if v.Kind == KindBool {
		return strconv.FormatBool(v.Bool)
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

// MarshalJSON encodes the value as a bare JSON number or boolean.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Kind == KindBool {
		return json.Marshal(v.Bool)
	}
	return json.Marshal(v.Number)
}

// UnmarshalJSON accepts a JSON number or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case bool:
		*v = Bool(t)
	case float64:
		*v = Number(t)
	default:
		return fmt.Errorf("%w: %s", ErrKindMismatch, string(data))
	}
	return nil
}

// Field returns the value of the named parameter.
func (p ParameterSet) Field(name string) (Value, bool) {
	switch name {
	case Temperature:
		return Number(p.Temperature), true
	case Gravity:
		return Number(p.Gravity), true
	case HasWater:
		return Bool(p.HasWater), true
	case OxygenLevel:
		return Number(p.OxygenLevel), true
	case CarbonDioxideLevel:
		return Number(p.CarbonDioxideLevel), true
	case DistanceToStar:
		return Number(p.DistanceToStar), true
	case SolarRadiation:
		return Number(p.SolarRadiation), true
	case VolcanicActivity:
		return Number(p.VolcanicActivity), true
	case StormFrequency:
		return Number(p.StormFrequency), true
	case AtmosphereDensity:
		return Number(p.AtmosphereDensity), true
	case MagneticField:
		return Bool(p.MagneticField), true
	case RotationPeriod:
		return Number(p.RotationPeriod), true
	default:
		return Value{}, false
	}
}

// KindOf reports the kind of the named parameter.
func KindOf(name string) (Kind, bool) {
	v, ok := ParameterSet{}.Field(name)
	return v.Kind, ok
}

// With returns a copy of p with the named parameter replaced.
func (p ParameterSet) With(name string, v Value) (ParameterSet, error) {
	want, ok := KindOf(name)
	if !ok {
		return p, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	if want != v.Kind {
		return p, fmt.Errorf("%w: %s wants %s, got %s", ErrKindMismatch, name, want, v.Kind)
	}
	switch name {
	case Temperature:
		p.Temperature = v.Number
	case Gravity:
		p.Gravity = v.Number
	case HasWater:
		p.HasWater = v.Bool
	case OxygenLevel:
		p.OxygenLevel = v.Number
	case CarbonDioxideLevel:
		p.CarbonDioxideLevel = v.Number
	case DistanceToStar:
		p.DistanceToStar = v.Number
	case SolarRadiation:
		p.SolarRadiation = v.Number
	case VolcanicActivity:
		p.VolcanicActivity = v.Number
	case StormFrequency:
		p.StormFrequency = v.Number
	case AtmosphereDensity:
		p.AtmosphereDensity = v.Number
	case MagneticField:
		p.MagneticField = v.Bool
	case RotationPeriod:
		p.RotationPeriod = v.Number
	}
	return p, nil
}
