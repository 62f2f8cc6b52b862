package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set by makefile with ldflags
var (
	Version = "dev"
	Commit  = "n/a"
	Build   = "n/a"
)

func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Application version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, Version)
			fmt.Fprintln(out, "Commit:", Commit)
			fmt.Fprintln(out, "Build:", Build)
		},
	}
	return cmd
}
