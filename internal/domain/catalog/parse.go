package catalog

import (
	"fmt"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/technology"
	"gopkg.in/yaml.v3"
)

type document struct {
	Planets      []planetDoc     `yaml:"planets"`
	Exoplanets   []exoplanetDoc  `yaml:"exoplanets"`
	Technologies []technologyDoc `yaml:"technologies"`
	Resources    []Resource      `yaml:"resources"`
}

type planetDoc struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Image       string    `yaml:"image"`
	Parameters  yaml.Node `yaml:"parameters"`
}

type exoplanetDoc struct {
	planetDoc             `yaml:",inline"`
	DiscoveryYear         int     `yaml:"discoveryYear"`
	StarType              string  `yaml:"starType"`
	Mass                  float64 `yaml:"mass"`
	Radius                float64 `yaml:"radius"`
	OrbitalPeriod         float64 `yaml:"orbitalPeriod"`
	PotentialHabitability int     `yaml:"potentialHabitability"`
	NASAURL               string  `yaml:"nasaUrl"`
	WikipediaURL          string  `yaml:"wikipediaUrl"`
}

type technologyDoc struct {
	Name            string    `yaml:"name"`
	Description     string    `yaml:"description"`
	Requirements    yaml.Node `yaml:"requirements"`
	Cost            int64     `yaml:"cost"`
	TimeToImplement int       `yaml:"timeToImplement"`
	ReferenceURL    string    `yaml:"referenceUrl"`
}

func parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{}
	names := map[string]string{}
	claim := func(table, name string) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: %s entry with empty name", ErrInvalidCatalog, table)
		}
		key := strings.ToLower(name)
		if prev, ok := names[key]; ok {
			return fmt.Errorf("%w: duplicate name %q (already a %s)", ErrInvalidCatalog, name, prev)
		}
		names[key] = table
		return nil
	}

	for _, pd := range doc.Planets {
		p, err := pd.planet()
		if err != nil {
			return nil, err
		}
		if err := claim(KindPlanet, p.Name); err != nil {
			return nil, err
		}
		c.planets = append(c.planets, p)
	}

	for _, ed := range doc.Exoplanets {
		p, err := ed.planet()
		if err != nil {
			return nil, err
		}
		if err := claim(KindExoplanet, p.Name); err != nil {
			return nil, err
		}
		if ed.PotentialHabitability < 0 || ed.PotentialHabitability > 100 {
			return nil, fmt.Errorf("%w: exoplanet %q potentialHabitability %d outside 0..100",
				ErrInvalidCatalog, p.Name, ed.PotentialHabitability)
		}
		c.exoplanets = append(c.exoplanets, Exoplanet{
			Planet:                p,
			DiscoveryYear:         ed.DiscoveryYear,
			StarType:              ed.StarType,
			Mass:                  ed.Mass,
			Radius:                ed.Radius,
			OrbitalPeriod:         ed.OrbitalPeriod,
			PotentialHabitability: ed.PotentialHabitability,
			NASAURL:               ed.NASAURL,
			WikipediaURL:          ed.WikipediaURL,
		})
	}

	techNames := map[string]bool{}
	for _, td := range doc.Technologies {
		if strings.TrimSpace(td.Name) == "" {
			return nil, fmt.Errorf("%w: technology entry with empty name", ErrInvalidCatalog)
		}
		if techNames[strings.ToLower(td.Name)] {
			return nil, fmt.Errorf("%w: duplicate technology %q", ErrInvalidCatalog, td.Name)
		}
		techNames[strings.ToLower(td.Name)] = true
		reqs, err := requirements(&td.Requirements)
		if err != nil {
			return nil, fmt.Errorf("technology %q: %w", td.Name, err)
		}
		c.technologies = append(c.technologies, technology.Technology{
			Name:            td.Name,
			Description:     td.Description,
			Requirements:    reqs,
			Cost:            td.Cost,
			TimeToImplement: td.TimeToImplement,
			ReferenceURL:    td.ReferenceURL,
		})
	}

	titles := map[string]bool{}
	for _, r := range doc.Resources {
		if strings.TrimSpace(r.Title) == "" {
			return nil, fmt.Errorf("%w: resource entry with empty title", ErrInvalidCatalog)
		}
		if titles[strings.ToLower(r.Title)] {
			return nil, fmt.Errorf("%w: duplicate resource %q", ErrInvalidCatalog, r.Title)
		}
		titles[strings.ToLower(r.Title)] = true
		if !contains(categories, r.Category) {
			return nil, fmt.Errorf("%w: resource %q category %q", ErrInvalidCatalog, r.Title, r.Category)
		}
		if !contains(difficulties, r.Difficulty) {
			return nil, fmt.Errorf("%w: resource %q difficulty %q", ErrInvalidCatalog, r.Title, r.Difficulty)
		}
		c.resources = append(c.resources, r)
	}

	return c, nil
}

func (pd planetDoc) planet() (Planet, error) {
	params, err := parameters(&pd.Parameters)
	if err != nil {
		return Planet{}, fmt.Errorf("body %q: %w", pd.Name, err)
	}
	return Planet{Name: pd.Name, Description: pd.Description, Image: pd.Image, Parameters: params}, nil
}

// parameters decodes a parameter mapping that must name all twelve fields.
func parameters(n *yaml.Node) (habitability.ParameterSet, error) {
	var p habitability.ParameterSet
	if n.Kind != yaml.MappingNode {
		return p, fmt.Errorf("%w: parameters must be a mapping", ErrInvalidCatalog)
	}
	seen := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if _, ok := habitability.KindOf(key); !ok {
			return p, fmt.Errorf("%w: unknown parameter %q", ErrInvalidCatalog, key)
		}
		seen[key] = true
	}
	for _, name := range habitability.FieldNames() {
		if !seen[name] {
			return p, fmt.Errorf("%w: missing parameter %q", ErrInvalidCatalog, name)
		}
	}
	if err := n.Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return p, nil
}

// requirements decodes a requirement mapping in document order. Each value
// must be a boolean or a number matching the kind of the named field.
func requirements(n *yaml.Node) (technology.Requirements, error) {
	out := technology.Requirements{}
	if n.Kind == 0 {
		return out, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: requirements must be a mapping", ErrInvalidCatalog)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		want, ok := habitability.KindOf(key)
		if !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q", ErrInvalidCatalog, key)
		}
		v, err := scalar(val)
		if err != nil {
			return nil, fmt.Errorf("%w: requirement %q: %v", ErrInvalidCatalog, key, err)
		}
		if v.Kind != want {
			return nil, fmt.Errorf("%w: requirement %q wants a %s, got %s", ErrInvalidCatalog, key, want, v.Kind)
		}
		out = append(out, technology.Requirement{Parameter: key, Value: v})
	}
	return out, nil
}

func scalar(n *yaml.Node) (habitability.Value, error) {
	switch n.ShortTag() {
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return habitability.Value{}, err
		}
		return habitability.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return habitability.Value{}, err
		}
		return habitability.Number(f), nil
	default:
		return habitability.Value{}, fmt.Errorf("%w: %q", habitability.ErrKindMismatch, n.Value)
	}
}
