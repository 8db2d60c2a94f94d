package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/okian/habitat/internal/app"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/state"
)

// EvaluateDependencies defines the scoring operations used by the handler.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, p habitability.ParameterSet, opts service.EvaluateOptions) (service.Evaluation, error)
	EvaluateBatch(ctx context.Context, ps []habitability.ParameterSet, clamp bool) ([]service.Evaluation, error)
	Rubric() []habitability.Rule
	Ranges() map[string]state.Range
}

// EvaluateHandler handles scoring requests.
type EvaluateHandler struct {
	deps EvaluateDependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandleEvaluate handles POST /v1/evaluate[?clamp=true] requests.
func (h *EvaluateHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate"
	clamp, err := boolQuery(r, "clamp")
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	p, err := readParameters(w, r)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	ev, err := h.deps.Evaluate(r.Context(), p, service.EvaluateOptions{Clamp: clamp, Source: "api"})
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// batchRequest mirrors the OpenAPI schema for POST /v1/evaluate/batch.
type batchRequest struct {
	Items []json.RawMessage `json:"items"`
}

type batchResponse struct {
	Count   int                  `json:"count"`
	Results []service.Evaluation `json:"results"`
}

// HandleEvaluateBatch handles POST /v1/evaluate/batch[?clamp=true] requests.
func (h *EvaluateHandler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_batch"
	clamp, err := boolQuery(r, "clamp")
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeErr(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	ps := make([]habitability.ParameterSet, 0, len(req.Items))
	for i, raw := range req.Items {
		p, err := decodeParameters(raw)
		if err != nil {
			writeErr(w, Wrap(op, fmt.Errorf("items[%d]: %w", i, err)))
			return
		}
		ps = append(ps, p)
	}
	results, err := h.deps.EvaluateBatch(r.Context(), ps, clamp)
	if err != nil {
		writeErr(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Count: len(results), Results: results})
}

type rubricResponse struct {
	MaxScore     int                    `json:"maxScore"`
	MaxDeduction int                    `json:"maxDeduction"`
	Rules        []habitability.Rule    `json:"rules"`
	Ranges       map[string]state.Range `json:"ranges"`
}

// HandleRubric handles GET /v1/rubric requests.
func (h *EvaluateHandler) HandleRubric(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rubricResponse{
		MaxScore:     habitability.MaxScore,
		MaxDeduction: habitability.MaxDeduction(),
		Rules:        h.deps.Rubric(),
		Ranges:       h.deps.Ranges(),
	})
}
