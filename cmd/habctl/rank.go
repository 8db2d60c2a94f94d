package main

import (
	"errors"
	"fmt"

	"github.com/okian/habitat/internal/domain/ranking"
	"github.com/spf13/cobra"
)

type rankFlags struct {
	limit int
}

func newRankCmd(root *rootFlags) *cobra.Command {
	f := &rankFlags{}
	cmd := &cobra.Command{
		Use:   "rank [name]",
		Short: "Show the habitability leaderboard, or one body's rank",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			c, err := root.loadCatalog()
			if err != nil {
				return err
			}
			board := ranking.New(c)

			var entries []ranking.Entry
			if len(args) == 1 {
				e, err := board.Rank(args[0])
				if err != nil {
					return exitError(exitUsage, "%v", err)
				}
				entries = []ranking.Entry{e}
			} else {
				limit := f.limit
				if limit == 0 {
					limit = board.Count()
				}
				if entries, err = board.TopN(limit); err != nil {
					if errors.Is(err, ranking.ErrInvalidLimit) {
						return exitError(exitUsage, "%v", err)
					}
					return err
				}
			}

			if root.format == formatJSON {
				if len(args) == 1 {
					return writeJSON(cmd.OutOrStdout(), entries[0])
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			rows := make([]string, 0, len(entries))
			for _, e := range entries {
				published := "-"
				if e.PotentialHabitability > 0 {
					published = fmt.Sprintf("%d", e.PotentialHabitability)
				}
				rows = append(rows, fmt.Sprintf("%d\t%s\t%s\t%d\t%s", e.Rank, e.Name, e.Kind, e.Score, published))
			}
			return table(cmd.OutOrStdout(), "RANK\tNAME\tKIND\tSCORE\tPUBLISHED", rows)
		},
	}
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Show only the top N bodies (default: all)")
	return cmd
}
