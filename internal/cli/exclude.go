package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amastis/pyinstaller-excluder/pkg/deps/python"
	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
	"github.com/amastis/pyinstaller-excluder/pkg/pipeline"
	"github.com/amastis/pyinstaller-excluder/pkg/specfile"
)

// analysisOpts holds the flags shared by commands that resolve a project.
type analysisOpts struct {
	source       sourceOpts
	keep         []string
	allowMissing bool
}

func (o *analysisOpts) addFlags(cmd *cobra.Command) {
	o.source.addFlags(cmd)
	cmd.Flags().StringSliceVar(&o.keep, "keep", nil, "packages never to exclude (repeatable, comma-separated)")
	cmd.Flags().BoolVar(&o.allowMissing, "allow-missing", false, "warn instead of failing when a dependency is not installed")
}

// project locates the requirements for path and merges the project's
// [tool.excluder] settings under the flags the user did not set.
func (o *analysisOpts) project(cmd *cobra.Command, getenv func(string) string, path string) (file string, s python.ProjectSettings, err error) {
	file, dir, err := pipeline.LocateRequirements(path)
	if err != nil {
		return "", s, err
	}
	s, err = python.ReadProjectSettings(dir)
	if err != nil {
		return "", s, err
	}

	o.source.applyDefaults(cmd, getenv, s)
	if !cmd.Flags().Changed("keep") && len(s.Keep) > 0 {
		o.keep = s.Keep
	}
	if !cmd.Flags().Changed("allow-missing") && s.AllowMissing {
		o.allowMissing = true
	}
	return file, s, nil
}

// excludeOpts holds the command-line flags for the exclude command.
type excludeOpts struct {
	analysisOpts
	spec   string
	dryRun bool
}

func (c *CLI) excludeCommand() *cobra.Command {
	opts := excludeOpts{}

	cmd := &cobra.Command{
		Use:   "exclude [requirements.txt | dir]",
		Short: "Write unused installed packages into a spec file's excludes",
		Long: `Resolve the dependency closure of requirements.txt and add every installed
package outside it to the excludes=[...] slot of the project's spec file.

The argument is requirements.txt or the directory holding it (default ".").
The spec file is --spec, or the only *.spec file next to requirements.txt. When
none can be chosen the excludes list is printed for you to paste.

Examples:
  excluder exclude
  excluder exclude ./app --spec ./app/build.spec
  excluder exclude requirements.txt --dry-run --keep setuptools
  excluder exclude --inspect-file inspect.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExclude(cmd, &opts, requirementsArg(args))
		},
	}

	opts.analysisOpts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.spec, "spec", "s", "", "spec file to patch (default: the only *.spec next to requirements.txt)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "show the change without writing the spec file")

	return cmd
}

func (c *CLI) runExclude(cmd *cobra.Command, opts *excludeOpts, path string) error {
	ctx := cmd.Context()

	file, settings, err := opts.project(cmd, c.Getenv, path)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("spec") && settings.Spec != "" {
		opts.spec = settings.Spec
	}

	source, err := opts.source.load(ctx)
	if err != nil {
		return err
	}

	result, err := newRunner(ctx, source).Run(ctx, pipeline.Options{
		RequirementsPath: file,
		SpecPath:         opts.spec,
		Keep:             opts.keep,
		AllowMissing:     opts.allowMissing,
		DryRun:           opts.dryRun,
	})
	if err != nil {
		return err
	}

	c.report(result, opts.dryRun)
	return nil
}

// report prints the outcome of an exclude run.
func (c *CLI) report(result *pipeline.Result, dryRun bool) {
	w := c.Stdout

	if len(result.Missing) > 0 {
		printWarning(w, "%d required packages are not installed: %s", len(result.Missing), strings.Join(result.Missing, ", "))
	}

	if !result.Patched() {
		printWarning(w, "Unable to add the list of excludes to a spec file: %s", errs.UserMessage(result.TargetErr))
		printInfo(w, "Add the below list to excludes in your spec file for PyInstaller:")
		fmt.Fprintln(w)
		fmt.Fprintln(w, specfile.FormatExcludes(result.Exclusions))
		return
	}

	name := filepath.Base(result.Target)
	switch {
	case dryRun && result.Diff == "":
		printInfo(w, "%s already excludes every unused package", name)
	case dryRun:
		printInfo(w, "Would update excludes in %s", name)
		printDiff(w, result.Diff)
	case !result.Written:
		printInfo(w, "%s already excludes every unused package", name)
	default:
		printInfo(w, "Updating excludes in %s", name)
		printSuccess(w, "Excluded %d packages", len(result.Exclusions))
		printFile(w, result.Target)
	}
	printStats(w, result.Closure.Len(), result.Installed.Len(), len(result.Exclusions))
}
