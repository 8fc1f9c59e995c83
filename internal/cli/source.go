package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	"github.com/amastis/pyinstaller-excluder/pkg/deps/python"
	"github.com/amastis/pyinstaller-excluder/pkg/observability"
)

// sourceOpts selects where installed package metadata comes from. The first
// non-empty of inspectFile, sitePackages and poetryLock wins; otherwise the
// interpreter is asked via pip inspect.
type sourceOpts struct {
	python       string   // interpreter to run pip inspect with
	sitePackages []string // site-packages directories to scan
	inspectFile  string   // saved pip inspect report
	poetryLock   string   // poetry.lock to read
}

func (o *sourceOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.python, "python", "", fmt.Sprintf("python interpreter to inspect (default %s, or $%s)", python.DefaultPython, envPython))
	cmd.Flags().StringSliceVar(&o.sitePackages, "site-packages", nil, "scan these site-packages directories instead of running python")
	cmd.Flags().StringVar(&o.inspectFile, "inspect-file", "", "read a saved `pip inspect` report instead of running python")
	cmd.Flags().StringVar(&o.poetryLock, "poetry-lock", "", "read installed packages from a poetry.lock file")
}

// applyDefaults fills options the user did not set on the command line from
// the environment and the project settings, in that order.
func (o *sourceOpts) applyDefaults(cmd *cobra.Command, getenv func(string) string, s python.ProjectSettings) {
	flags := cmd.Flags()
	if !flags.Changed("python") {
		if env := getenv(envPython); env != "" {
			o.python = env
		} else if s.Python != "" {
			o.python = s.Python
		}
	}
	if !flags.Changed("site-packages") && len(s.SitePackages) > 0 {
		o.sitePackages = s.SitePackages
	}
	if !flags.Changed("poetry-lock") && s.PoetryLock != "" {
		o.poetryLock = s.PoetryLock
	}
}

// describe names the selected source for log output.
func (o *sourceOpts) describe() string {
	switch {
	case o.inspectFile != "":
		return "pip inspect report " + o.inspectFile
	case len(o.sitePackages) > 0:
		return fmt.Sprintf("site-packages %v", o.sitePackages)
	case o.poetryLock != "":
		return "lock file " + o.poetryLock
	default:
		return "interpreter " + o.interpreter()
	}
}

func (o *sourceOpts) interpreter() string {
	if o.python != "" {
		return o.python
	}
	return python.DefaultPython
}

// load builds the metadata source.
func (o *sourceOpts) load(ctx context.Context) (deps.MetadataSource, error) {
	logger := loggerFromContext(ctx)
	logger.Debug("loading installed packages", "source", o.describe())
	prog := newProgress(logger)

	var (
		idx *python.Index
		err error
	)
	switch {
	case o.inspectFile != "":
		idx, err = python.LoadInspectReport(o.inspectFile)
	case len(o.sitePackages) > 0:
		idx, err = python.LoadSitePackages(o.sitePackages...)
	case o.poetryLock != "":
		idx, err = python.LoadPoetryLock(o.poetryLock)
	default:
		idx, err = python.Interpreter{Python: o.interpreter()}.Load(ctx)
	}
	if err != nil {
		observability.Source().OnSourceLoad(ctx, o.describe(), 0, time.Since(prog.start), err)
		return nil, err
	}
	observability.Source().OnSourceLoad(ctx, o.describe(), idx.Len(), time.Since(prog.start), nil)

	prog.done(fmt.Sprintf("Loaded %d installed packages from %s", idx.Len(), o.describe()))
	return idx, nil
}
