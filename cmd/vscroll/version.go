package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Example: `
vscroll version
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vscroll version %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
		},
	}

	topLevel.AddCommand(cmd)
}
