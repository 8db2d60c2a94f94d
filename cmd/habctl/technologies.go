package main

import (
	"fmt"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/technology"
	"github.com/spf13/cobra"
)

type technologiesFlags struct {
	body    string
	explain bool
}

func newTechnologiesCmd(root *rootFlags) *cobra.Command {
	f := &technologiesFlags{}
	cmd := &cobra.Command{
		Use:     "technologies [parameters-file|-]",
		Aliases: []string{"tech"},
		Short:   "List colonization technologies available for a parameter set",
		Long: `List colonization technologies. With a parameters file, stdin ("-") or
--body only the technologies whose requirements hold are shown; --explain
shows every technology with its unmet requirements.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			if f.body != "" && len(args) == 1 {
				return exitError(exitUsage, "use either a parameters file or --body, not both")
			}
			c, err := root.loadCatalog()
			if err != nil {
				return err
			}
			techs := c.Technologies()

			var (
				p      habitability.ParameterSet
				scoped = true
			)
			switch {
			case f.body != "":
				b, err := c.Body(f.body)
				if err != nil {
					return exitError(exitUsage, "unknown body %q: %v", f.body, err)
				}
				p = b.Parameters
			case len(args) == 1:
				if p, err = readParameters(cmd.InOrStdin(), args[0]); err != nil {
					return exitError(exitUsage, "failed to read parameters: %v", err)
				}
			default:
				scoped = false
			}

			out := cmd.OutOrStdout()
			if !scoped {
				if root.format == formatJSON {
					return writeJSON(out, techs)
				}
				return technologyTable(cmd, techs)
			}
			if f.explain {
				verdicts := technology.Assess(techs, p)
				if root.format == formatJSON {
					return writeJSON(out, verdicts)
				}
				rows := make([]string, 0, len(verdicts))
				for _, v := range verdicts {
					status := "yes"
					if !v.Available {
						status = "no"
					}
					rows = append(rows, fmt.Sprintf("%s\t%s\t%s", v.Technology.Name, status, strings.Join(v.Unmet, "; ")))
				}
				return table(out, "TECHNOLOGY\tAVAILABLE\tUNMET", rows)
			}
			available := technology.Filter(techs, p)
			if root.format == formatJSON {
				return writeJSON(out, available)
			}
			return technologyTable(cmd, available)
		},
	}
	cmd.Flags().StringVar(&f.body, "body", "", "Use the parameters of a catalog planet or exoplanet")
	cmd.Flags().BoolVar(&f.explain, "explain", false, "Show every technology with its unmet requirements")
	return cmd
}

func technologyTable(cmd *cobra.Command, techs []technology.Technology) error {
	rows := make([]string, 0, len(techs))
	for _, t := range techs {
		reqs := make([]string, 0, len(t.Requirements))
		for _, r := range t.Requirements {
			reqs = append(reqs, r.String())
		}
		rows = append(rows, fmt.Sprintf("%s\t$%d\t%dy\t%s", t.Name, t.Cost, t.TimeToImplement, strings.Join(reqs, ", ")))
	}
	return table(cmd.OutOrStdout(), "TECHNOLOGY\tCOST\tTIME\tREQUIRES", rows)
}
