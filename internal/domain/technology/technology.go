// Package technology decides which colonization technologies a planet's
// conditions can support.
package technology

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/okian/habitat/internal/domain/habitability"
)

// Requirement is one condition a technology places on a parameter.
// A boolean Value must match exactly; a numeric Value is a minimum.
type Requirement struct {
	Parameter string
	Value     habitability.Value
}

// Satisfied reports whether p meets the requirement. Unknown parameters and
// kind mismatches are never satisfied.
func (r Requirement) Satisfied(p habitability.ParameterSet) bool {
	cur, ok := p.Field(r.Parameter)
	if !ok || cur.Kind != r.Value.Kind {
		return false
	}
	if r.Value.Kind == habitability.KindBool {
		return cur.Bool == r.Value.Bool
	}
	return cur.Number >= r.Value.Number
}

func (r Requirement) String() string {
	if r.Value.Kind == habitability.KindBool {
		return fmt.Sprintf("%s = %s", r.Parameter, r.Value)
	}
	return fmt.Sprintf("%s >= %s", r.Parameter, r.Value)
}

// Requirements is an ordered requirement list. It encodes as a JSON object
// keyed by parameter name.
type Requirements []Requirement

func (rs Requirements) MarshalJSON() ([]byte, error) {
	m := make(map[string]habitability.Value, len(rs))
	for _, r := range rs {
		m[r.Parameter] = r.Value
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object of parameter name to bool or number,
// ordered by parameter name.
func (rs *Requirements) UnmarshalJSON(data []byte) error {
	var m map[string]habitability.Value
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := make(Requirements, 0, len(m))
	for name, v := range m {
		out = append(out, Requirement{Parameter: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Parameter < out[j].Parameter })
	*rs = out
	return nil
}

// Technology is a colonization technology from the reference catalog.
type Technology struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Requirements    Requirements `json:"requirements"`
	Cost            int64        `json:"cost"`            // USD
	TimeToImplement int          `json:"timeToImplement"` // years
	ReferenceURL    string       `json:"referenceUrl,omitempty"`
}

// Available reports whether every requirement holds for p. An empty list is
// always available.
func Available(reqs Requirements, p habitability.ParameterSet) bool {
	for _, r := range reqs {
		if !r.Satisfied(p) {
			return false
		}
	}
	return true
}

// Filter returns the technologies available for p, preserving order.
func Filter(techs []Technology, p habitability.ParameterSet) []Technology {
	out := make([]Technology, 0, len(techs))
	for _, t := range techs {
		if Available(t.Requirements, p) {
			out = append(out, t)
		}
	}
	return out
}

// Explain lists the requirements p does not satisfy, in requirement order.
func Explain(reqs Requirements, p habitability.ParameterSet) []Requirement {
	var unmet []Requirement
	for _, r := range reqs {
		if !r.Satisfied(p) {
			unmet = append(unmet, r)
		}
	}
	return unmet
}

// Verdict pairs a technology with its eligibility for one parameter set.
type Verdict struct {
	Technology Technology `json:"technology"`
	Available  bool       `json:"available"`
	Unmet      []string   `json:"unmet,omitempty"`
}

// Assess evaluates every technology against p, preserving order.
func Assess(techs []Technology, p habitability.ParameterSet) []Verdict {
	out := make([]Verdict, 0, len(techs))
	for _, t := range techs {
		unmet := Explain(t.Requirements, p)
		v := Verdict{Technology: t, Available: len(unmet) == 0}
		for _, r := range unmet {
			v.Unmet = append(v.Unmet, r.String())
		}
		out = append(out, v)
	}
	return out
}
