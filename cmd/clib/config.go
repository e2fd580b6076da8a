// ABOUTME: config subcommand: print the merged settings and which file they came from
// ABOUTME: Useful for checking CLIB_* overrides and .clib.yaml lookup

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tjk/clib-package/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprint(a.stdout, config.Explain(a.settings, a.v.ConfigFileUsed()))
			return err
		},
	}
}
