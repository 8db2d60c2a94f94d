package main

import (
	"errors"
	"fmt"

	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/presentation"
	"github.com/spf13/cobra"
)

func newCatalogCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the reference catalogs",
	}
	cmd.AddCommand(
		newPlanetsCmd(root),
		newExoplanetsCmd(root),
		newResourcesCmd(root),
	)
	return cmd
}

// scoredPlanet is a catalog planet with its computed score.
type scoredPlanet struct {
	catalog.Planet
	Score     int    `json:"score"`
	ColorTier string `json:"colorTier"`
}

type scoredExoplanet struct {
	catalog.Exoplanet
	Score     int    `json:"score"`
	ColorTier string `json:"colorTier"`
}

func newPlanetsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "planets [name]",
		Short: "List known planets, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			c, err := root.loadCatalog()
			if err != nil {
				return err
			}
			planets := c.Planets()
			if len(args) == 1 {
				p, err := c.Planet(args[0])
				if err != nil {
					return notFound(err)
				}
				planets = []catalog.Planet{p}
			}

			out := make([]scoredPlanet, 0, len(planets))
			for _, p := range planets {
				s := habitability.Score(p.Parameters)
				out = append(out, scoredPlanet{Planet: p, Score: s, ColorTier: presentation.ColorTierFor(s).Name})
			}
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			rows := make([]string, 0, len(out))
			for _, p := range out {
				rows = append(rows, fmt.Sprintf("%s\t%d\t%s\t%s", p.Name, p.Score, p.ColorTier, p.Description))
			}
			return table(cmd.OutOrStdout(), "NAME\tSCORE\tTIER\tDESCRIPTION", rows)
		},
	}
}

func newExoplanetsCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exoplanets [name]",
		Short: "List exoplanets, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			c, err := root.loadCatalog()
			if err != nil {
				return err
			}
			exos := c.Exoplanets()
			if len(args) == 1 {
				e, err := c.Exoplanet(args[0])
				if err != nil {
					return notFound(err)
				}
				exos = []catalog.Exoplanet{e}
			}

			out := make([]scoredExoplanet, 0, len(exos))
			for _, e := range exos {
				s := habitability.Score(e.Parameters)
				out = append(out, scoredExoplanet{Exoplanet: e, Score: s, ColorTier: presentation.ColorTierFor(s).Name})
			}
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			rows := make([]string, 0, len(out))
			for _, e := range out {
				rows = append(rows, fmt.Sprintf("%s\t%d\t%d\t%s\t%d",
					e.Name, e.Score, e.PotentialHabitability, e.StarType, e.DiscoveryYear))
			}
			return table(cmd.OutOrStdout(), "NAME\tSCORE\tPUBLISHED\tSTAR\tDISCOVERED", rows)
		},
	}
}

type resourcesFlags struct {
	category   string
	difficulty string
}

func newResourcesCmd(root *rootFlags) *cobra.Command {
	f := &resourcesFlags{}
	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List educational resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			c, err := root.loadCatalog()
			if err != nil {
				return err
			}
			res, err := c.Resources(f.category, f.difficulty)
			if err != nil {
				return exitError(exitUsage, "%v", err)
			}
			if root.format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			rows := make([]string, 0, len(res))
			for _, r := range res {
				rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s", r.Title, r.Category, r.Difficulty, r.URL))
			}
			return table(cmd.OutOrStdout(), "TITLE\tCATEGORY\tDIFFICULTY\tURL", rows)
		},
	}
	cmd.Flags().StringVar(&f.category, "category", "", "Filter by category: colonization, habitability, technology or research")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Filter by difficulty: beginner, intermediate or advanced")
	return cmd
}

func notFound(err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return exitError(exitUsage, "%v", err)
	}
	return err
}
