package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amastis/pyinstaller-excluder/pkg/pipeline"
	"github.com/amastis/pyinstaller-excluder/pkg/render"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	analysisOpts
	format       string
	output       string
	detailed     bool
	hideExcluded bool
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatDOT}

	cmd := &cobra.Command{
		Use:   "graph [requirements.txt | dir]",
		Short: "Draw the dependency closure and the excluded packages",
		Long: `Resolve the project like exclude does and draw the result as a Graphviz graph.
Requirement roots are bold, excluded packages grey and unconnected.

Examples:
  excluder graph > deps.dot
  excluder graph --format svg -o deps.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd, &opts, requirementsArg(args))
		},
	}

	opts.analysisOpts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label packages with their number of dependencies")
	cmd.Flags().BoolVar(&opts.hideExcluded, "hide-excluded", false, "leave excluded packages out")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, opts *graphOpts, path string) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", opts.format)
	}
	ctx := cmd.Context()

	file, _, err := opts.project(cmd, c.Getenv, path)
	if err != nil {
		return err
	}
	source, err := opts.source.load(ctx)
	if err != nil {
		return err
	}

	result, err := newRunner(ctx, source).Analyze(ctx, pipeline.Options{
		RequirementsPath: file,
		Keep:             opts.keep,
		AllowMissing:     opts.allowMissing,
	})
	if err != nil {
		return err
	}

	dot := render.ToDOT(result.Closure, result.Exclusions, render.Options{
		Detailed:     opts.detailed,
		HideExcluded: opts.hideExcluded,
	})
	data := []byte(dot)
	if opts.format == formatSVG {
		prog := newProgress(loggerFromContext(ctx))
		if data, err = render.RenderSVG(ctx, dot); err != nil {
			return err
		}
		prog.done("Rendered SVG")
	}

	if opts.output == "" {
		_, err := c.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return err
	}
	printSuccess(c.Stdout, "Wrote %s graph", opts.format)
	printFile(c.Stdout, opts.output)
	return nil
}
