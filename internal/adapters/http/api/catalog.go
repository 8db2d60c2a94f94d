package api

import (
	"context"
	"net/http"

	service "github.com/okian/habitat/internal/app"
	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/technology"
)

// CatalogDependencies defines the reference data operations.
type CatalogDependencies interface {
	Planets(ctx context.Context) ([]service.Body, error)
	Planet(ctx context.Context, name string) (service.Body, error)
	Exoplanets(ctx context.Context) ([]service.Body, error)
	Exoplanet(ctx context.Context, name string) (service.Body, error)
	Technologies(ctx context.Context) ([]technology.Technology, error)
	AvailableTechnologies(ctx context.Context, p habitability.ParameterSet) ([]technology.Technology, error)
	AssessTechnologies(ctx context.Context, p habitability.ParameterSet) ([]technology.Verdict, error)
	Resources(ctx context.Context, category, difficulty string) ([]catalog.Resource, error)
}

// CatalogHandler serves bodies, technologies and resources.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleListPlanets handles GET /v1/planets requests.
func (h *CatalogHandler) HandleListPlanets(w http.ResponseWriter, r *http.Request) {
	bodies, err := h.deps.Planets(r.Context())
	if err != nil {
		writeErr(w, Wrap("api.list_planets", err))
		return
	}
	writeJSON(w, http.StatusOK, bodies)
}

// HandleGetPlanet handles GET /v1/planets/{name} requests.
func (h *CatalogHandler) HandleGetPlanet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_planet"
	name, err := nameParam(r)
	if err != nil {
		writeErr(w, NewKind(op, err))
		return
	}
	body, err := h.deps.Planet(r.Context(), name)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleListExoplanets handles GET /v1/exoplanets requests.
func (h *CatalogHandler) HandleListExoplanets(w http.ResponseWriter, r *http.Request) {
	bodies, err := h.deps.Exoplanets(r.Context())
	if err != nil {
		writeErr(w, Wrap("api.list_exoplanets", err))
		return
	}
	writeJSON(w, http.StatusOK, bodies)
}

// HandleGetExoplanet handles GET /v1/exoplanets/{name} requests.
func (h *CatalogHandler) HandleGetExoplanet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_exoplanet"
	name, err := nameParam(r)
	if err != nil {
		writeErr(w, NewKind(op, err))
		return
	}
	body, err := h.deps.Exoplanet(r.Context(), name)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// HandleListTechnologies handles GET /v1/technologies requests.
func (h *CatalogHandler) HandleListTechnologies(w http.ResponseWriter, r *http.Request) {
	techs, err := h.deps.Technologies(r.Context())
	if err != nil {
		writeErr(w, Wrap("api.list_technologies", err))
		return
	}
	writeJSON(w, http.StatusOK, techs)
}

// HandleAvailableTechnologies handles POST /v1/technologies/available
// requests. With ?explain=true it returns a verdict per technology,
// including the unmet requirements.
func (h *CatalogHandler) HandleAvailableTechnologies(w http.ResponseWriter, r *http.Request) {
	const op = "api.available_technologies"
	explain, err := boolQuery(r, "explain")
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	p, err := readParameters(w, r)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	if explain {
		verdicts, err := h.deps.AssessTechnologies(r.Context(), p)
		if err != nil {
			writeErr(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, verdicts)
		return
	}
	techs, err := h.deps.AvailableTechnologies(r.Context(), p)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, techs)
}

// HandleListResources handles GET /v1/resources?category=&difficulty=
// requests. Empty filters match everything.
func (h *CatalogHandler) HandleListResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resources, err := h.deps.Resources(r.Context(), q.Get("category"), q.Get("difficulty"))
	if err != nil {
		writeErr(w, Wrap("api.list_resources", err))
		return
	}
	writeJSON(w, http.StatusOK, resources)
}
