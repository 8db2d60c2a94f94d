// Command habctl scores parameter sets, browses the reference catalogs and
// probes a running habitability service.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

type rootFlags struct {
	catalogPath string
	format      string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	root := &cobra.Command{
		Use:           "habctl",
		Short:         "Score planetary habitability and browse the reference catalogs",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&f.catalogPath, "catalog", "", "Catalog YAML file (default: embedded catalog)")
	root.PersistentFlags().StringVar(&f.format, "format", formatText, "Output format: text or json")

	root.AddCommand(
		newScoreCmd(f),
		newCatalogCmd(f),
		newTechnologiesCmd(f),
		newRankCmd(f),
		newProbeCmd(f),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Exit codes.
const (
	exitUsage    = 2
	exitCatalog  = 3
	exitMismatch = 4
)

type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func exitError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func (f *rootFlags) loadCatalog() (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if f.catalogPath == "" {
		c, err = catalog.Default()
	} else {
		c, err = catalog.LoadFile(f.catalogPath)
	}
	if err != nil {
		return nil, exitError(exitCatalog, "failed to load catalog: %v", err)
	}
	return c, nil
}
