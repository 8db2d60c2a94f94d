package state

import "github.com/okian/habitat/internal/domain/habitability"

// Range is the span an input control accepts.
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Clamp pins v into the range.
func (r Range) Clamp(v float64) float64 {
	return min(r.Max, max(r.Min, v))
}

var ranges = map[string]Range{
	habitability.Temperature:        {Min: -50, Max: 50, Step: 1},
	habitability.Gravity:            {Min: 0.1, Max: 2, Step: 0.1},
	habitability.OxygenLevel:        {Min: 0, Max: 100, Step: 1},
	habitability.CarbonDioxideLevel: {Min: 0, Max: 100, Step: 0.1},
	habitability.DistanceToStar:     {Min: 0.1, Max: 2, Step: 0.1},
	habitability.SolarRadiation:     {Min: 0, Max: 2, Step: 0.1},
	habitability.VolcanicActivity:   {Min: 0, Max: 1, Step: 0.1},
	habitability.StormFrequency:     {Min: 0, Max: 1, Step: 0.1},
	habitability.AtmosphereDensity:  {Min: 0, Max: 2, Step: 0.1},
	habitability.RotationPeriod:     {Min: 6, Max: 48, Step: 1},
}

// RangeOf returns the input range of a numeric parameter.
func RangeOf(name string) (Range, bool) {
	r, ok := ranges[name]
	return r, ok
}

// Ranges returns every numeric input range keyed by parameter name.
func Ranges() map[string]Range {
	out := make(map[string]Range, len(ranges))
	for k, v := range ranges {
		out[k] = v
	}
	return out
}

// Clamp pins every numeric field of p into its input range.
func Clamp(p habitability.ParameterSet) habitability.ParameterSet {
	p.Temperature = ranges[habitability.Temperature].Clamp(p.Temperature)
	p.Gravity = ranges[habitability.Gravity].Clamp(p.Gravity)
	p.OxygenLevel = ranges[habitability.OxygenLevel].Clamp(p.OxygenLevel)
	p.CarbonDioxideLevel = ranges[habitability.CarbonDioxideLevel].Clamp(p.CarbonDioxideLevel)
	p.DistanceToStar = ranges[habitability.DistanceToStar].Clamp(p.DistanceToStar)
	p.SolarRadiation = ranges[habitability.SolarRadiation].Clamp(p.SolarRadiation)
	p.VolcanicActivity = ranges[habitability.VolcanicActivity].Clamp(p.VolcanicActivity)
	p.StormFrequency = ranges[habitability.StormFrequency].Clamp(p.StormFrequency)
	p.AtmosphereDensity = ranges[habitability.AtmosphereDensity].Clamp(p.AtmosphereDensity)
	p.RotationPeriod = ranges[habitability.RotationPeriod].Clamp(p.RotationPeriod)
	return p
}
