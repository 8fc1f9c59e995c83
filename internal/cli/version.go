package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amastis/pyinstaller-excluder/pkg/buildinfo"
)

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.Stdout, StyleTitle.Render(appName))
			printDetail(c.Stdout, "%s", buildinfo.String())
		},
	}
}
