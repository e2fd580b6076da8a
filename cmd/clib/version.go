// ABOUTME: version subcommand
// ABOUTME: Skips config loading so it works with a broken .clib.yaml

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the clib version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "clib %s (%s) built %s\n", version, commit, date)
		},
	}
}
