// Package service wires the habitability engine, catalog and leaderboard
// into the operations the HTTP API and CLI depend on.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/presentation"
	"github.com/okian/habitat/internal/domain/ranking"
	"github.com/okian/habitat/internal/domain/state"
	"github.com/okian/habitat/internal/domain/technology"
	"github.com/okian/habitat/pkg/logger"
	"github.com/okian/habitat/pkg/metrics"
)

// Default limits.
const (
	defaultMaxBatchSize = 100
)

// Service implements the API dependencies for the habitability service.
type Service struct {
	mu sync.RWMutex

	// Reference data, immutable once started
	catalog     *catalog.Catalog
	leaderboard *ranking.Leaderboard

	// Configuration
	catalogPath  string
	maxBatchSize int

	// State
	started   bool
	startedAt time.Time
	evaluated int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalog uses an already loaded catalog instead of reading one at Start.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithCatalogPath loads the catalog from a YAML file at Start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithMaxBatchSize caps the number of parameter sets per EvaluateBatch call.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxBatchSize: defaultMaxBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog and builds the leaderboard.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting habitability service...")

	if s.catalog == nil {
		c, err := s.loadCatalog()
		if err != nil {
			metrics.RecordErrorByComponent("service", "catalog_load")
			return err
		}
		s.catalog = c
	}
	s.leaderboard = ranking.New(s.catalog)

	counts := s.catalog.Counts()
	_ = metrics.UpdateCatalogRecords(metrics.TablePlanets, counts.Planets)
	_ = metrics.UpdateCatalogRecords(metrics.TableExoplanets, counts.Exoplanets)
	_ = metrics.UpdateCatalogRecords(metrics.TableTechnologies, counts.Technologies)
	_ = metrics.UpdateCatalogRecords(metrics.TableResources, counts.Resources)
	metrics.UpdateRankedBodies(s.leaderboard.Count())

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "habitability service started",
		logger.Int("planets", counts.Planets),
		logger.Int("exoplanets", counts.Exoplanets),
		logger.Int("technologies", counts.Technologies),
		logger.Int("resources", counts.Resources),
		logger.Int("maxBatchSize", s.maxBatchSize),
	)
	return nil
}

func (s *Service) loadCatalog() (*catalog.Catalog, error) {
	if s.catalogPath == "" {
		return catalog.Default()
	}
	c, err := catalog.LoadFile(s.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", s.catalogPath, err)
	}
	return c, nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "habitability service stopped",
		logger.Int("evaluations", int(s.evaluated)),
		logger.Duration("uptime", time.Since(s.startedAt)),
	)
}

// snapshot returns the reference data or ErrNotStarted.
func (s *Service) snapshot() (*catalog.Catalog, *ranking.Leaderboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.catalog, s.leaderboard, nil
}

// Evaluation is the full result of scoring one parameter set.
type Evaluation struct {
	ID           string                    `json:"evaluationId"`
	Parameters   habitability.ParameterSet `json:"parameters"`
	Clamped      bool                      `json:"clamped"`
	Assessment   habitability.Assessment   `json:"assessment"`
	ColorTier    presentation.ColorTier    `json:"colorTier"`
	MessageTier  presentation.MessageTier  `json:"messageTier"`
	Rendering    presentation.Rendering    `json:"rendering"`
	Technologies []technology.Technology   `json:"technologies"`
}

// EvaluateOptions adjusts a single evaluation.
type EvaluateOptions struct {
	// Clamp pins numeric inputs into the calculator's control ranges first.
	Clamp bool
	// Source labels the caller in metrics, e.g. "api" or "batch".
	Source string
}

// Evaluate scores p and derives tiers, rendering and available technologies.
func (s *Service) Evaluate(ctx context.Context, p habitability.ParameterSet, opts EvaluateOptions) (Evaluation, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return Evaluation{}, err
	}
	return s.evaluate(ctx, c, p, opts), nil
}

func (s *Service) evaluate(ctx context.Context, c *catalog.Catalog, p habitability.ParameterSet, opts EvaluateOptions) Evaluation {
	start := time.Now()

	if opts.Clamp {
		p = state.Clamp(p)
	}
	v := state.Derive(state.State{Parameters: p, Tab: state.TabCalculator}, c)
	ev := Evaluation{
		ID:           uuid.NewString(),
		Parameters:   p,
		Clamped:      opts.Clamp,
		Assessment:   v.Assessment,
		ColorTier:    v.ColorTier,
		MessageTier:  v.MessageTier,
		Rendering:    v.Rendering,
		Technologies: v.Technologies,
	}

	source := opts.Source
	if source == "" {
		source = "direct"
	}
	metrics.RecordEvaluation(source, ev.Assessment.Score)
	for _, pen := range ev.Assessment.Penalties {
		metrics.RecordPenalty(pen.Rule)
	}
	metrics.RecordTier(metrics.PolicyColor, ev.ColorTier.Name)
	metrics.RecordTier(metrics.PolicyMessage, ev.MessageTier.Name)
	metrics.RecordEvaluationLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.mu.Lock()
	s.evaluated++
	s.mu.Unlock()

	s.logger.Debug(ctx, "evaluated parameter set",
		logger.String("evaluationId", ev.ID),
		logger.Int("score", ev.Assessment.Score),
		logger.Int("rawScore", ev.Assessment.RawScore),
		logger.Int("penalties", len(ev.Assessment.Penalties)),
		logger.Bool("clamped", opts.Clamp),
	)
	return ev
}

// EvaluateBatch evaluates each parameter set in order. It stops early if ctx
// is done.
func (s *Service) EvaluateBatch(ctx context.Context, ps []habitability.ParameterSet, clamp bool) ([]Evaluation, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(ps) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(ps), s.maxBatchSize)
	}
	out := make([]Evaluation, 0, len(ps))
	for i, p := range ps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch interrupted at item %d: %w", i, err)
		}
		out = append(out, s.evaluate(ctx, c, p, EvaluateOptions{Clamp: clamp, Source: "batch"}))
	}
	return out, nil
}

// Rubric returns the scoring rules in evaluation order.
func (s *Service) Rubric() []habitability.Rule {
	return habitability.Rules()
}

// Ranges returns the calculator's numeric input ranges.
func (s *Service) Ranges() map[string]state.Range {
	return state.Ranges()
}

// Body is a catalog body with its computed score and tiers.
type Body struct {
	catalog.Exoplanet
	Kind        string                   `json:"kind"`
	Score       int                      `json:"score"`
	ColorTier   presentation.ColorTier   `json:"colorTier"`
	MessageTier presentation.MessageTier `json:"messageTier"`
}

func scoredPlanet(p catalog.Planet) Body {
	return scored(catalog.Exoplanet{Planet: p}, catalog.KindPlanet)
}

func scored(e catalog.Exoplanet, kind string) Body {
	score := habitability.Score(e.Parameters)
	return Body{
		Exoplanet:   e,
		Kind:        kind,
		Score:       score,
		ColorTier:   presentation.ColorTierFor(score),
		MessageTier: presentation.MessageTierFor(score),
	}
}

// Planets returns the known bodies with their scores, in catalog order.
func (s *Service) Planets(_ context.Context) ([]Body, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	planets := c.Planets()
	out := make([]Body, 0, len(planets))
	for _, p := range planets {
		out = append(out, scoredPlanet(p))
	}
	return out, nil
}

// Planet returns one known body by name.
func (s *Service) Planet(_ context.Context, name string) (Body, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return Body{}, err
	}
	p, err := c.Planet(name)
	metrics.RecordCatalogLookup(metrics.TablePlanets, err == nil)
	if err != nil {
		return Body{}, err
	}
	return scoredPlanet(p), nil
}

// Exoplanets returns the exoplanets with their scores, in catalog order.
func (s *Service) Exoplanets(_ context.Context) ([]Body, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	exos := c.Exoplanets()
	out := make([]Body, 0, len(exos))
	for _, e := range exos {
		out = append(out, scored(e, catalog.KindExoplanet))
	}
	return out, nil
}

// Exoplanet returns one exoplanet by name.
func (s *Service) Exoplanet(_ context.Context, name string) (Body, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return Body{}, err
	}
	e, err := c.Exoplanet(name)
	metrics.RecordCatalogLookup(metrics.TableExoplanets, err == nil)
	if err != nil {
		return Body{}, err
	}
	return scored(e, catalog.KindExoplanet), nil
}

// Technologies returns the technology catalog.
func (s *Service) Technologies(_ context.Context) ([]technology.Technology, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return c.Technologies(), nil
}

// AvailableTechnologies returns the technologies p supports, in catalog order.
func (s *Service) AvailableTechnologies(ctx context.Context, p habitability.ParameterSet) ([]technology.Technology, error) {
	verdicts, err := s.AssessTechnologies(ctx, p)
	if err != nil {
		return nil, err
	}
	out := make([]technology.Technology, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Available {
			out = append(out, v.Technology)
		}
	}
	return out, nil
}

// AssessTechnologies reports every technology's eligibility and unmet
// requirements for p.
func (s *Service) AssessTechnologies(_ context.Context, p habitability.ParameterSet) ([]technology.Verdict, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	verdicts := technology.Assess(c.Technologies(), p)
	for _, v := range verdicts {
		metrics.RecordTechnologyCheck(v.Technology.Name, v.Available)
	}
	return verdicts, nil
}

// Resources returns educational resources filtered by category and difficulty.
func (s *Service) Resources(_ context.Context, category, difficulty string) ([]catalog.Resource, error) {
	c, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return c.Resources(category, difficulty)
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(_ context.Context, n int) ([]ranking.Entry, error) {
	_, lb, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return lb.TopN(n)
}

// Rank returns the leaderboard entry for a body.
func (s *Service) Rank(_ context.Context, name string) (ranking.Entry, error) {
	_, lb, err := s.snapshot()
	if err != nil {
		return ranking.Entry{}, err
	}
	return lb.Rank(name)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"maxBatchSize": s.maxBatchSize,
		"evaluations":  s.evaluated,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["catalog"] = s.catalog.Counts()
		stats["rankedBodies"] = s.leaderboard.Count()
		stats["rules"] = len(habitability.Rules())
	}
	return stats
}
