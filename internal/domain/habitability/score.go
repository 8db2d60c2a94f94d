package habitability

// Scoring bounds.
const (
	MaxScore = 100
	MinScore = 0
)

// Rule is one entry of the habitability rubric: a threshold test and the
// points it deducts when the test holds.
type Rule struct {
	ID          string `json:"id"`
	Parameter   string `json:"parameter"`
	Description string `json:"description"`
	Penalty     int    `json:"penalty"`

	applies func(ParameterSet) bool
}

// Applies reports whether the rule's penalty condition holds for p.
func (r Rule) Applies(p ParameterSet) bool {
	return r.applies != nil && r.applies(p)
}

func outside(v, lo, hi float64) bool { return v < lo || v > hi }

// rubric is evaluated in this order; the order does not change the result.
var rubric = []Rule{
	{
		ID: "temperature", Parameter: Temperature, Penalty: 20,
		Description: "temperature outside 0..30 °C",
		applies:     func(p ParameterSet) bool { return outside(p.Temperature, 0, 30) },
	},
	{
		ID: "gravity", Parameter: Gravity, Penalty: 20,
		Description: "gravity outside 0.8..1.2 g",
		applies:     func(p ParameterSet) bool { return outside(p.Gravity, 0.8, 1.2) },
	},
	{
		ID: "water", Parameter: HasWater, Penalty: 30,
		Description: "no liquid water",
		applies:     func(p ParameterSet) bool { return !p.HasWater },
	},
	{
		ID: "oxygen", Parameter: OxygenLevel, Penalty: 15,
		Description: "oxygen outside 19..23 %",
		applies:     func(p ParameterSet) bool { return outside(p.OxygenLevel, 19, 23) },
	},
	{
		ID: "carbon_dioxide", Parameter: CarbonDioxideLevel, Penalty: 15,
		Description: "carbon dioxide above 0.1 %",
		applies:     func(p ParameterSet) bool { return p.CarbonDioxideLevel > 0.1 },
	},
	{
		ID: "distance", Parameter: DistanceToStar, Penalty: 10,
		Description: "distance to star outside 0.8..1.2 AU",
		applies:     func(p ParameterSet) bool { return outside(p.DistanceToStar, 0.8, 1.2) },
	},
	{
		ID: "solar_radiation", Parameter: SolarRadiation, Penalty: 10,
		Description: "solar radiation outside 0.5..1.5",
		applies:     func(p ParameterSet) bool { return outside(p.SolarRadiation, 0.5, 1.5) },
	},
	{
		ID: "volcanic_activity", Parameter: VolcanicActivity, Penalty: 10,
		Description: "volcanic activity above 0.8",
		applies:     func(p ParameterSet) bool { return p.VolcanicActivity > 0.8 },
	},
	{
		ID: "storm_frequency", Parameter: StormFrequency, Penalty: 10,
		Description: "storm frequency above 0.7",
		applies:     func(p ParameterSet) bool { return p.StormFrequency > 0.7 },
	},
	{
		ID: "atmosphere_density", Parameter: AtmosphereDensity, Penalty: 10,
		Description: "atmosphere density below 0.3",
		applies:     func(p ParameterSet) bool { return p.AtmosphereDensity < 0.3 },
	},
	{
		ID: "magnetic_field", Parameter: MagneticField, Penalty: 10,
		Description: "no magnetic field",
		applies:     func(p ParameterSet) bool { return !p.MagneticField },
	},
	{
		ID: "rotation_period", Parameter: RotationPeriod, Penalty: 10,
		Description: "rotation period outside 12..36 h",
		applies:     func(p ParameterSet) bool { return outside(p.RotationPeriod, 12, 36) },
	},
}

// Rules returns a copy of the rubric in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rubric))
	copy(out, rubric)
	return out
}

// MaxDeduction is the sum of every penalty in the rubric.
func MaxDeduction() int {
	total := 0
	for _, r := range rubric {
		total += r.Penalty
	}
	return total
}

// Score computes the habitability score of p in [MinScore, MaxScore].
func Score(p ParameterSet) int {
	score := MaxScore
	for _, r := range rubric {
		if r.applies(p) {
			score -= r.Penalty
		}
	}
	return max(MinScore, score)
}

// Penalty is a rubric rule that fired for a parameter set.
type Penalty struct {
	Rule        string `json:"rule"`
	Parameter   string `json:"parameter"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// Assessment explains a score: the clamped result, the unclamped sum and
// every penalty applied, in rubric order.
type Assessment struct {
	Score     int       `json:"score"`
	RawScore  int       `json:"rawScore"`
	Penalties []Penalty `json:"penalties"`
}

// Evaluate scores p and records which rules fired. Evaluate(p).Score always
// equals Score(p).
func Evaluate(p ParameterSet) Assessment {
	a := Assessment{RawScore: MaxScore, Penalties: []Penalty{}}
	for _, r := range rubric {
		if !r.applies(p) {
			continue
		}
		a.RawScore -= r.Penalty
		a.Penalties = append(a.Penalties, Penalty{
			Rule:        r.ID,
			Parameter:   r.Parameter,
			Description: r.Description,
			Points:      r.Penalty,
		})
	}
	a.Score = max(MinScore, a.RawScore)
	return a
}
