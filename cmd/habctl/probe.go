package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/okian/habitat/internal/probe"
	"github.com/okian/habitat/pkg/logger"
	"github.com/spf13/cobra"
)

type probeFlags struct {
	url       string
	count     int
	seed      int64
	clamp     bool
	timeout   time.Duration
	report    string
	verbose   bool
	logFormat string
}

func newProbeCmd(root *rootFlags) *cobra.Command {
	f := &probeFlags{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check a running service against the local scoring engine",
		Long: `Generate seeded parameter sets within the input control ranges, submit
them one at a time to POST /v1/evaluate and compare every returned score with
the local engine. Exits 4 when any score differs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			log, err := logger.New(
				logger.WithFormat(f.logFormat),
				logger.WithOutput(cmd.ErrOrStderr()),
			)
			if err != nil {
				return exitError(exitUsage, "invalid --log-format: %v", err)
			}
			if f.verbose {
				logger.SetLevel(slog.LevelDebug)
			}

			stats, err := probe.Run(cmd.Context(), probe.Config{
				BaseURL: f.url,
				Count:   f.count,
				Seed:    f.seed,
				Clamp:   f.clamp,
				Timeout: f.timeout,
				Report:  f.report,
				Verbose: f.verbose,
			}, log)
			if root.format == formatJSON && stats.Submitted > 0 {
				if werr := writeJSON(cmd.OutOrStdout(), stats); werr != nil {
					return werr
				}
			}
			switch {
			case errors.Is(err, probe.ErrMismatch):
				return exitError(exitMismatch, "%v", err)
			case err != nil:
				return err
			case stats.Failed > 0:
				return exitError(1, "%d of %d submissions failed", stats.Failed, stats.Submitted)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.url, "url", probe.DefaultBaseURL, "Base URL of the habitability service")
	flags.IntVar(&f.count, "count", probe.DefaultCount, "Number of parameter sets to submit")
	flags.Int64Var(&f.seed, "seed", 1, "Generator seed")
	flags.BoolVar(&f.clamp, "clamp", false, "Ask the service to clamp inputs to the control ranges")
	flags.DurationVar(&f.timeout, "timeout", probe.DefaultTimeout, "Per-request timeout")
	flags.StringVar(&f.report, "report", "", "Write a JSON lines report; a .zst suffix compresses it")
	flags.BoolVar(&f.verbose, "verbose", false, "Log every submission")
	flags.StringVar(&f.logFormat, "log-format", logger.FormatText, "Log format: text or json")
	return cmd
}
