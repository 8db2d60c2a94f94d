package presentation

import "github.com/okian/habitat/internal/domain/habitability"

// Visual intensity bounds.
const (
	atmosphereOpacityMin  = 0.2
	atmosphereOpacityMax  = 0.8
	cloudOpacityMax       = 0.6
	radiationIntensityMax = 0.8
	radiationBaseline     = 1.0
)

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}

// AtmosphereOpacity maps atmosphere density onto the halo opacity.
func AtmosphereOpacity(density float64) float64 {
	return clamp(density, atmosphereOpacityMin, atmosphereOpacityMax)
}

// CloudOpacity maps storm frequency onto the cloud layer opacity.
func CloudOpacity(stormFrequency float64) float64 {
	return clamp(stormFrequency, 0, cloudOpacityMax)
}

// RadiationIntensity maps solar radiation above Earth's flux onto the
// radiation ring intensity.
func RadiationIntensity(solarRadiation float64) float64 {
	return clamp(solarRadiation-radiationBaseline, 0, radiationIntensityMax)
}

// Rendering holds everything needed to draw the schematic planet.
type Rendering struct {
	PlanetColor        string  `json:"planetColor"`
	AtmosphereOpacity  float64 `json:"atmosphereOpacity"`
	CloudOpacity       float64 `json:"cloudOpacity"`
	RadiationIntensity float64 `json:"radiationIntensity"`
	ShowWater          bool    `json:"showWater"`
	ShowMagnetosphere  bool    `json:"showMagnetosphere"`
}

// Render derives the planet rendering from raw parameters and their score.
func Render(p habitability.ParameterSet, score int) Rendering {
	return Rendering{
		PlanetColor:        ColorTierFor(score).Color,
		AtmosphereOpacity:  AtmosphereOpacity(p.AtmosphereDensity),
		CloudOpacity:       CloudOpacity(p.StormFrequency),
		RadiationIntensity: RadiationIntensity(p.SolarRadiation),
		ShowWater:          p.HasWater,
		ShowMagnetosphere:  p.MagneticField,
	}
}
