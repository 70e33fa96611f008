package cmd

import (
	"fmt"
	"runtime"

	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	var extended bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information. Use --extended for full details including Crucible and Go versions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !extended {
				_, err := fmt.Fprintf(out, "%s %s\n", AppName, versionInfo.Version)
				return err
			}

			version := crucible.GetVersion()
			_, err := fmt.Fprintf(out, "%s %s\nCommit: %s\nBuilt: %s\nGo: %s\n\nGofulmen: %s\nCrucible: %s\n",
				AppName, versionInfo.Version,
				versionInfo.Commit,
				versionInfo.BuildDate,
				runtime.Version(),
				version.Gofulmen,
				version.Crucible,
			)
			return err
		},
	}

	versionCmd.Flags().BoolVarP(&extended, "extended", "e", false, "show extended version information")
	return versionCmd
}
