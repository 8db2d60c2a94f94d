// Package state models the calculator's UI state as an immutable value.
// Reducers take a State and return a new one; nothing is mutated in place.
package state

import (
	"fmt"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
)

// Tab is a calculator view.
type Tab string

// Tabs.
const (
	TabCalculator   Tab = "calculator"
	TabPlanets      Tab = "planets"
	TabExoplanets   Tab = "exoplanets"
	TabTechnologies Tab = "technologies"
	TabResources    Tab = "resources"
)

// Tabs lists every tab in display order.
func Tabs() []Tab {
	return []Tab{TabCalculator, TabPlanets, TabExoplanets, TabTechnologies, TabResources}
}

// ParseTab resolves a tab name, ignoring case.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, s)
}

// State is the calculator's full UI state.
type State struct {
	Parameters     habitability.ParameterSet `json:"parameters"`
	Tab            Tab                       `json:"tab"`
	SelectedPlanet string                    `json:"selectedPlanet,omitempty"`
}

// New returns the initial state: Earth parameters on the calculator tab.
func New() State {
	return State{Parameters: habitability.EarthBaseline(), Tab: TabCalculator}
}

// SetParameter replaces one parameter, clamping numbers to the input range.
func SetParameter(s State, name string, v habitability.Value) (State, error) {
	if v.Kind == habitability.KindNumber {
		if r, ok := RangeOf(name); ok {
			v = habitability.Number(r.Clamp(v.Number))
		}
	}
	p, err := s.Parameters.With(name, v)
	if err != nil {
		return s, err
	}
	s.Parameters = p
	return s, nil
}

// SetTab switches the active tab.
func SetTab(s State, t Tab) (State, error) {
	if _, err := ParseTab(string(t)); err != nil {
		return s, err
	}
	s.Tab = t
	return s, nil
}

// SelectPlanet highlights a body without touching the parameters.
func SelectPlanet(s State, name string) State {
	s.SelectedPlanet = name
	return s
}

// ClearSelection removes the highlighted body.
func ClearSelection(s State) State {
	s.SelectedPlanet = ""
	return s
}

// LoadPlanet copies a body's parameters into the calculator, selects it and
// switches to the calculator tab. Parameters are loaded unclamped.
func LoadPlanet(s State, name string, p habitability.ParameterSet) State {
	s.Parameters = p
	s.SelectedPlanet = name
	s.Tab = TabCalculator
	return s
}

// Reset returns the initial state.
func Reset(State) State {
	return New()
}
