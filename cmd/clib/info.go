// ABOUTME: info subcommand: fetch a package manifest and print it
// ABOUTME: --format selects text, json or yaml

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInfoCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <slug>",
		Short: "Show a package's manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _, err := a.loader()
			if err != nil {
				return err
			}
			m, err := loader.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "text":
				newPrinter(a.stdout).manifest(m)
				return nil
			case "json":
				out, err = manifestJSON(m)
				out = append(out, '\n')
			case "yaml":
				out, err = manifestYAML(m)
			default:
				return fmt.Errorf("unknown format %q: expected text, json or yaml", format)
			}
			if err != nil {
				return fmt.Errorf("rendering %s: %w", format, err)
			}
			_, err = a.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	return cmd
}
