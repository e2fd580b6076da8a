// ABOUTME: resolve subcommand: show how a slug expands, without fetching anything
// ABOUTME: Prints author, name, version and the manifest URL

package main

import (
	"github.com/spf13/cobra"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Expand a slug and print its manifest URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, _, err := a.loader()
			if err != nil {
				return err
			}
			s, url, err := loader.Resolve(args[0])
			if err != nil {
				return err
			}

			p := newPrinter(a.stdout)
			p.field("author", s.Author)
			p.field("name", s.Name)
			p.field("version", s.Version)
			p.field("url", url)
			return nil
		},
	}
}
