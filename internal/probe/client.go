package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
)

// Client talks to the habitability HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Evaluation is the subset of POST /v1/evaluate the probe checks.
type Evaluation struct {
	ID         string                    `json:"evaluationId"`
	Parameters habitability.ParameterSet `json:"parameters"`
	Assessment habitability.Assessment   `json:"assessment"`
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Evaluate posts p to /v1/evaluate.
func (c *Client) Evaluate(ctx context.Context, p habitability.ParameterSet, clamp bool) (Evaluation, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to marshal request body: %w", err)
	}
	url := c.baseURL + "/v1/evaluate"
	if clamp {
		url += "?clamp=true"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Evaluation{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Evaluation{}, fmt.Errorf("post evaluate: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Evaluation{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Evaluation{}, fmt.Errorf("%w: %d: %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	var ev Evaluation
	if err := json.Unmarshal(data, &ev); err != nil {
		return Evaluation{}, fmt.Errorf("decode response: %w", err)
	}
	return ev, nil
}
