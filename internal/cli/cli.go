// Package cli implements the excluder command-line interface.
//
// The excluder computes the installed Python packages a PyInstaller build
// does not need and writes them into the excludes slot of the project's
// spec file. Commands are built with cobra and log through charmbracelet/log;
// --verbose (-v) switches to debug-level logging.
//
// # Commands
//
//   - exclude: patch the spec file next to requirements.txt
//   - graph: draw the dependency closure as DOT or SVG
//   - version: print build information
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/amastis/pyinstaller-excluder/pkg/buildinfo"
	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	"github.com/amastis/pyinstaller-excluder/pkg/pipeline"
)

const appName = "excluder"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// envPython names the environment variable that overrides the interpreter.
const envPython = "EXCLUDER_PYTHON"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives command results. Defaults to os.Stdout.
	Stdout io.Writer

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdout: os.Stdout,
		Getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Excluder trims unused packages from PyInstaller builds",
		Long: `Excluder resolves the dependency closure of a project's requirements.txt against
the installed Python environment and writes every installed package outside that
closure into the excludes=[...] slot of the project's PyInstaller spec file.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			registerDebugHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.excludeCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// newRunner creates a pipeline runner over source, logging to the
// command's logger.
func newRunner(ctx context.Context, source deps.MetadataSource) *pipeline.Runner {
	return pipeline.NewRunner(source, loggerFromContext(ctx))
}

// requirementsArg returns the requirements path argument, defaulting to the
// working directory.
func requirementsArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
