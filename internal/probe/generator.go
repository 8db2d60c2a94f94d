package probe

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/state"
)

// Generator draws parameter sets uniformly from the calculator's input
// control ranges, snapped to each range's step.
type Generator struct {
	rng    *rand.Rand
	ranges map[string]state.Range
}

// NewGenerator returns a deterministic generator for seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		ranges: state.Ranges(),
	}
}

// Next returns the next parameter set.
func (g *Generator) Next() habitability.ParameterSet {
	p := habitability.EarthBaseline()
	for _, name := range habitability.FieldNames() {
		kind, _ := habitability.KindOf(name)
		var v habitability.Value
		if kind == habitability.KindBool {
			v = habitability.Bool(g.rng.IntN(2) == 1)
		} else {
			v = habitability.Number(g.number(g.ranges[name]))
		}
		var err error
		if p, err = p.With(name, v); err != nil {
			panic(fmt.Sprintf("generator: field table out of sync: %v", err))
		}
	}
	return p
}

// Generate returns n parameter sets.
func (g *Generator) Generate(n int) []habitability.ParameterSet {
	out := make([]habitability.ParameterSet, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

func (g *Generator) number(r state.Range) float64 {
	if r.Step <= 0 {
		return r.Min + g.rng.Float64()*(r.Max-r.Min)
	}
	steps := int(math.Round((r.Max - r.Min) / r.Step))
	v := r.Min + float64(g.rng.IntN(steps+1))*r.Step
	// Round off float noise from the step multiplication.
	return r.Clamp(math.Round(v*1e6) / 1e6)
}
