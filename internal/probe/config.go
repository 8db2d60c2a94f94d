// Package probe exercises a running habitability service with generated
// parameter sets and checks every returned score against the local engine.
package probe

import (
	"errors"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
)

// Defaults for Config fields left zero.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultCount   = 1000
	DefaultTimeout = 10 * time.Second
)

// Sentinel errors.
var (
	ErrUnhealthy = errors.New("service unhealthy")
	ErrMismatch  = errors.New("score mismatch")
	ErrStatus    = errors.New("unexpected status")
)

// Config holds configuration for a probe run.
type Config struct {
	BaseURL string        // Base URL of the service
	Count   int           // Number of parameter sets to submit
	Seed    int64         // Generator seed; equal seeds give equal inputs
	Clamp   bool          // Ask the service to clamp inputs first
	Timeout time.Duration // HTTP request timeout
	Report  string        // Optional JSON lines report; ".zst" suffix compresses it
	Verbose bool          // Log every submission
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Count <= 0 {
		out.Count = DefaultCount
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	return out
}

// Stats holds probe statistics.
type Stats struct {
	Generated  int           `json:"generated"`
	Submitted  int           `json:"submitted"`
	Matched    int           `json:"matched"`
	Mismatched int           `json:"mismatched"`
	Failed     int           `json:"failed"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Duration   time.Duration `json:"duration"`
}

// Record is one line of the probe report.
type Record struct {
	Index        int                       `json:"index"`
	EvaluationID string                    `json:"evaluationId,omitempty"`
	LocalScore   int                       `json:"localScore"`
	RemoteScore  int                       `json:"remoteScore"`
	Match        bool                      `json:"match"`
	Error        string                    `json:"error,omitempty"`
	Parameters   habitability.ParameterSet `json:"parameters"`
	LatencyMS    float64                   `json:"latencyMs"`
}
