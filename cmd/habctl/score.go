package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/state"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type scoreFlags struct {
	body  string
	set   []string
	clamp bool
}

func newScoreCmd(root *rootFlags) *cobra.Command {
	f := &scoreFlags{}
	cmd := &cobra.Command{
		Use:   "score [parameters-file|-]",
		Short: "Score a parameter set",
		Long: `Score a parameter set read from a YAML or JSON file, from stdin ("-"),
or from a catalog body (--body). Without input the Earth baseline is used.
Fields missing from the file keep their Earth baseline value. --set applies
calculator-style edits, clamped to the input control ranges.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(root.format); err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runScore(cmd, root, f, path)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.body, "body", "", "Load parameters from a catalog planet or exoplanet")
	flags.StringArrayVar(&f.set, "set", nil, "Set one parameter, e.g. --set hasWater=false (repeatable)")
	flags.BoolVar(&f.clamp, "clamp", false, "Clamp all numeric inputs to the control ranges")
	return cmd
}

func runScore(cmd *cobra.Command, root *rootFlags, f *scoreFlags, path string) error {
	if f.body != "" && path != "" {
		return exitError(exitUsage, "use either a parameters file or --body, not both")
	}
	c, err := root.loadCatalog()
	if err != nil {
		return err
	}

	s := state.New()
	switch {
	case f.body != "":
		b, err := c.Body(f.body)
		if err != nil {
			return exitError(exitUsage, "unknown body %q: %v", f.body, err)
		}
		s = state.LoadPlanet(s, b.Name, b.Parameters)
	case path != "":
		p, err := readParameters(cmd.InOrStdin(), path)
		if err != nil {
			return exitError(exitUsage, "failed to read parameters: %v", err)
		}
		s = state.LoadPlanet(s, "", p)
	}
	for _, a := range f.set {
		name, v, err := parseAssignment(a)
		if err != nil {
			return exitError(exitUsage, "invalid --set %q: %v", a, err)
		}
		if s, err = state.SetParameter(s, name, v); err != nil {
			return exitError(exitUsage, "invalid --set %q: %v", a, err)
		}
	}
	if f.clamp {
		s.Parameters = state.Clamp(s.Parameters)
	}

	v := state.Derive(s, c)
	out := cmd.OutOrStdout()
	if root.format == formatJSON {
		return writeJSON(out, v)
	}
	return printView(out, v)
}

// readParameters decodes a ParameterSet over the Earth baseline. YAML is a
// superset of JSON, so both formats are accepted.
func readParameters(stdin io.Reader, path string) (habitability.ParameterSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return habitability.ParameterSet{}, err
	}

	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return habitability.ParameterSet{}, err
	}
	for name := range fields {
		if _, ok := habitability.KindOf(name); !ok {
			return habitability.ParameterSet{}, fmt.Errorf("%w: %s", habitability.ErrUnknownParameter, name)
		}
	}

	p := habitability.EarthBaseline()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return habitability.ParameterSet{}, err
	}
	return p, nil
}

// parseAssignment parses name=value using the named field's kind.
func parseAssignment(a string) (string, habitability.Value, error) {
	name, raw, ok := strings.Cut(a, "=")
	if !ok {
		return "", habitability.Value{}, fmt.Errorf("want name=value")
	}
	name = strings.TrimSpace(name)
	kind, known := habitability.KindOf(name)
	if !known {
		return "", habitability.Value{}, fmt.Errorf("%w: %s", habitability.ErrUnknownParameter, name)
	}
	raw = strings.TrimSpace(raw)
	if kind == habitability.KindBool {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return "", habitability.Value{}, fmt.Errorf("%w: %s wants a boolean", habitability.ErrKindMismatch, name)
		}
		return name, habitability.Bool(b), nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", habitability.Value{}, fmt.Errorf("%w: %s wants a number", habitability.ErrKindMismatch, name)
	}
	return name, habitability.Number(n), nil
}

func printView(w io.Writer, v state.View) error {
	a := v.Assessment
	title := "Custom parameters"
	if v.State.SelectedPlanet != "" {
		title = v.State.SelectedPlanet
	}
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "Score:       %d/100 (raw %d)\n", a.Score, a.RawScore)
	fmt.Fprintf(w, "Tier:        %s %s\n", v.ColorTier.Label, v.ColorTier.Color)
	fmt.Fprintf(w, "Message:     %s [%s]\n", v.MessageTier.Message, v.MessageTier.Severity)
	r := v.Rendering
	fmt.Fprintf(w, "Rendering:   atmosphere %.2f, clouds %.2f, radiation %.2f, water %t, magnetosphere %t\n",
		r.AtmosphereOpacity, r.CloudOpacity, r.RadiationIntensity, r.ShowWater, r.ShowMagnetosphere)

	fmt.Fprintln(w, "Penalties:")
	if len(a.Penalties) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range a.Penalties {
		fmt.Fprintf(w, "  -%-3d %s\n", p.Points, p.Description)
	}

	fmt.Fprintln(w, "Technologies:")
	if len(v.Technologies) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, t := range v.Technologies {
		fmt.Fprintf(w, "  %s\n", t.Name)
	}
	return nil
}
