// Package catalog holds the immutable reference tables: known bodies,
// exoplanets, colonization technologies and educational resources.
package catalog

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/technology"
)

//go:embed data/catalog.yaml
var builtinFS embed.FS

const builtinPath = "data/catalog.yaml"

// Planet is a named body with a fixed parameter set.
type Planet struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Image       string                    `json:"image,omitempty"`
	Parameters  habitability.ParameterSet `json:"parameters"`
}

// Exoplanet is a Planet with discovery metadata.
type Exoplanet struct {
	Planet
	DiscoveryYear         int     `json:"discoveryYear,omitempty"`
	StarType              string  `json:"starType,omitempty"`
	Mass                  float64 `json:"mass,omitempty"`          // Earth masses
	Radius                float64 `json:"radius,omitempty"`        // Earth radii
	OrbitalPeriod         float64 `json:"orbitalPeriod,omitempty"` // days
	PotentialHabitability int     `json:"potentialHabitability,omitempty"`
	NASAURL               string  `json:"nasaUrl,omitempty"`
	WikipediaURL          string  `json:"wikipediaUrl,omitempty"`
}

// Resource categories.
const (
	CategoryColonization = "colonization"
	CategoryHabitability = "habitability"
	CategoryTechnology   = "technology"
	CategoryResearch     = "research"
)

// Resource difficulty levels.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

var (
	categories   = []string{CategoryColonization, CategoryHabitability, CategoryTechnology, CategoryResearch}
	difficulties = []string{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
)

// Resource is an educational link.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	Difficulty  string `json:"difficulty"`
}

// Catalog is a validated, read-only set of reference tables. All accessors
// return copies.
type Catalog struct {
	planets      []Planet
	exoplanets   []Exoplanet
	technologies []technology.Technology
	resources    []Resource
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	data, err := builtinFS.ReadFile(builtinPath)
	if err != nil {
		return nil, fmt.Errorf("catalog.Default: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.Default: %w", err)
	}
	return c, nil
}

// LoadFile parses a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a catalog YAML document.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	return c, nil
}

// Planets returns the known bodies in catalog order.
func (c *Catalog) Planets() []Planet {
	return append([]Planet(nil), c.planets...)
}

// Exoplanets returns the exoplanets in catalog order.
func (c *Catalog) Exoplanets() []Exoplanet {
	return append([]Exoplanet(nil), c.exoplanets...)
}

// Technologies returns the colonization technologies in catalog order.
func (c *Catalog) Technologies() []technology.Technology {
	out := make([]technology.Technology, len(c.technologies))
	for i, t := range c.technologies {
		t.Requirements = append(technology.Requirements(nil), t.Requirements...)
		out[i] = t
	}
	return out
}

// Resources returns the educational resources matching category and
// difficulty. Empty arguments match everything.
func (c *Catalog) Resources(category, difficulty string) ([]Resource, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	if category != "" && !contains(categories, category) {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidFilter, category)
	}
	if difficulty != "" && !contains(difficulties, difficulty) {
		return nil, fmt.Errorf("%w: difficulty %q", ErrInvalidFilter, difficulty)
	}
	out := []Resource{}
	for _, r := range c.resources {
		if category != "" && r.Category != category {
			continue
		}
		if difficulty != "" && r.Difficulty != difficulty {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Planet looks up a known body by name, ignoring case.
func (c *Catalog) Planet(name string) (Planet, error) {
	for _, p := range c.planets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Planet{}, fmt.Errorf("%w: planet %q", ErrNotFound, name)
}

// Exoplanet looks up an exoplanet by name, ignoring case.
func (c *Catalog) Exoplanet(name string) (Exoplanet, error) {
	for _, e := range c.exoplanets {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Exoplanet{}, fmt.Errorf("%w: exoplanet %q", ErrNotFound, name)
}

// Technology looks up a technology by name, ignoring case.
func (c *Catalog) Technology(name string) (technology.Technology, error) {
	for _, t := range c.Technologies() {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return technology.Technology{}, fmt.Errorf("%w: technology %q", ErrNotFound, name)
}

// Body kinds.
const (
	KindPlanet    = "planet"
	KindExoplanet = "exoplanet"
)

// Body is any scorable catalog entry.
type Body struct {
	Name       string
	Kind       string
	Parameters habitability.ParameterSet
	// PotentialHabitability is the published index; zero for known planets.
	PotentialHabitability int
}

// Bodies lists known planets followed by exoplanets.
func (c *Catalog) Bodies() []Body {
	out := make([]Body, 0, len(c.planets)+len(c.exoplanets))
	for _, p := range c.planets {
		out = append(out, Body{Name: p.Name, Kind: KindPlanet, Parameters: p.Parameters})
	}
	for _, e := range c.exoplanets {
		out = append(out, Body{
			Name:                  e.Name,
			Kind:                  KindExoplanet,
			Parameters:            e.Parameters,
			PotentialHabitability: e.PotentialHabitability,
		})
	}
	return out
}

// Body looks up a planet or exoplanet by name, ignoring case.
func (c *Catalog) Body(name string) (Body, error) {
	for _, b := range c.Bodies() {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return Body{}, fmt.Errorf("%w: body %q", ErrNotFound, name)
}

// Counts reports the size of each table.
type Counts struct {
	Planets      int `json:"planets"`
	Exoplanets   int `json:"exoplanets"`
	Technologies int `json:"technologies"`
	Resources    int `json:"resources"`
}

// Counts returns the size of each table.
func (c *Catalog) Counts() Counts {
	return Counts{
		Planets:      len(c.planets),
		Exoplanets:   len(c.exoplanets),
		Technologies: len(c.technologies),
		Resources:    len(c.resources),
	}
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
