package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/state"
	"github.com/okian/habitat/pkg/logger"
)

// progressEvery controls how often Run logs progress.
const progressEvery = 100

// Run checks service health, submits cfg.Count generated parameter sets one
// at a time and compares each remote score with habitability.Score. It
// returns ErrMismatch if any score differs; transport failures are counted
// in Stats.Failed.
func Run(ctx context.Context, cfg Config, log logger.Logger) (Stats, error) {
	cfg = cfg.withDefaults()
	stats := Stats{StartTime: time.Now()}

	log.Info(ctx, "starting probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("count", cfg.Count),
		logger.Any("seed", cfg.Seed),
		logger.Bool("clamp", cfg.Clamp),
		logger.Duration("timeout", cfg.Timeout),
		logger.String("report", cfg.Report),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	var report *reportWriter
	if cfg.Report != "" {
		var err error
		if report, err = newReportWriter(cfg.Report); err != nil {
			return stats, err
		}
	}

	inputs := NewGenerator(cfg.Seed).Generate(cfg.Count)
	stats.Generated = len(inputs)

	var runErr error
	for i, p := range inputs {
		if err := ctx.Err(); err != nil {
			runErr = fmt.Errorf("probe interrupted at %d: %w", i, err)
			break
		}
		rec := submit(ctx, client, i, p, cfg.Clamp)
		stats.Submitted++
		switch {
		case rec.Error != "":
			stats.Failed++
		case rec.Match:
			stats.Matched++
		default:
			stats.Mismatched++
			log.Warn(ctx, "score mismatch",
				logger.Int("index", i),
				logger.String("evaluationId", rec.EvaluationID),
				logger.Int("local", rec.LocalScore),
				logger.Int("remote", rec.RemoteScore),
			)
		}
		if cfg.Verbose {
			log.Debug(ctx, "submitted", logger.Any("record", rec))
		}
		if stats.Submitted%progressEvery == 0 {
			log.Info(ctx, "progress",
				logger.Int("submitted", stats.Submitted),
				logger.Int("mismatched", stats.Mismatched),
				logger.Int("failed", stats.Failed),
			)
		}
		if report != nil {
			if err := report.Write(rec); err != nil {
				runErr = err
				break
			}
		}
	}

	if report != nil {
		if err := report.Close(); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if runErr != nil {
		return stats, runErr
	}
	if stats.Mismatched > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrMismatch, stats.Mismatched, stats.Submitted)
	}
	return stats, nil
}

func submit(ctx context.Context, client *Client, index int, p habitability.ParameterSet, clamp bool) Record {
	local := p
	if clamp {
		local = state.Clamp(p)
	}
	rec := Record{Index: index, Parameters: p, LocalScore: habitability.Score(local)}

	start := time.Now()
	ev, err := client.Evaluate(ctx, p, clamp)
	rec.LatencyMS = float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	rec.EvaluationID = ev.ID
	rec.RemoteScore = ev.Assessment.Score
	rec.Match = rec.RemoteScore == rec.LocalScore
	return rec
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats Stats) {
	var matchRate, perSecond float64
	if stats.Submitted > 0 {
		matchRate = float64(stats.Matched) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("matched", stats.Matched),
		logger.Int("mismatched", stats.Mismatched),
		logger.Int("failed", stats.Failed),
		logger.Duration("duration", stats.Duration),
		logger.Float64("matchRate", matchRate),
		logger.Float64("perSecond", perSecond),
	)
}
