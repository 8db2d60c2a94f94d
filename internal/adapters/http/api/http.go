// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EvaluateDependencies
	CatalogDependencies
	LeaderboardDependencies
	RankDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	evaluateHandler    *EvaluateHandler
	catalogHandler     *CatalogHandler
	leaderboardHandler *LeaderboardHandler
	rankHandler        *RankHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// leaderboard page size.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		evaluateHandler:    NewEvaluateHandler(deps),
		catalogHandler:     NewCatalogHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		rankHandler:        NewRankHandler(deps),
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	r.Method(http.MethodGet, "/metrics", s.healthHandler.MetricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/evaluate", MetricsMiddleware(s.evaluateHandler.HandleEvaluate, "evaluate"))
		r.Post("/evaluate/batch", MetricsMiddleware(s.evaluateHandler.HandleEvaluateBatch, "evaluate_batch"))
		r.Get("/rubric", MetricsMiddleware(s.evaluateHandler.HandleRubric, "rubric"))

		r.Get("/planets", MetricsMiddleware(s.catalogHandler.HandleListPlanets, "planets"))
		r.Get("/planets/{name}", MetricsMiddleware(s.catalogHandler.HandleGetPlanet, "planet"))
		r.Get("/exoplanets", MetricsMiddleware(s.catalogHandler.HandleListExoplanets, "exoplanets"))
		r.Get("/exoplanets/{name}", MetricsMiddleware(s.catalogHandler.HandleGetExoplanet, "exoplanet"))
		r.Get("/technologies", MetricsMiddleware(s.catalogHandler.HandleListTechnologies, "technologies"))
		r.Post("/technologies/available", MetricsMiddleware(s.catalogHandler.HandleAvailableTechnologies, "technologies_available"))
		r.Get("/resources", MetricsMiddleware(s.catalogHandler.HandleListResources, "resources"))

		r.Get("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
		r.Get("/rank/{name}", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	})
}

// RouterConfig controls the middleware stack of NewRouter.
type RouterConfig struct {
	AllowedOrigins []string
	Timeout        time.Duration
	Compression    bool
}

// NewRouter builds the chi router with the shared middleware stack and lets
// each mount register its routes on it.
func NewRouter(cfg RouterConfig, mounts ...func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})

	for _, mount := range mounts {
		mount(r)
	}

	if !cfg.Compression {
		return r
	}
	return gzhttp.GzipHandler(r)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeErr picks the status and code from the error's kind.
func writeErr(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// nameParam returns the unescaped {name} path segment.
func nameParam(r *http.Request) (string, error) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || name == "" {
		return "", ErrBadRequest
	}
	return name, nil
}
