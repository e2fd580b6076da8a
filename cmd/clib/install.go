// ABOUTME: install subcommand: fetch slugs (or ./package.json dependencies) into the output directory
// ABOUTME: Prints one line per installed package, or a table with --verbose

package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tjk/clib-package/internal/config"
	"github.com/tjk/clib-package/internal/log"
	"github.com/tjk/clib-package/internal/pkgmanager"
)

func newInstallCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [slug...]",
		Short: "Install packages and their dependencies",
		Long: `Install each slug into <out>/<name>, followed by its dependencies.

With no slugs, the dependencies listed in ./package.json are installed, plus its
development dependencies when --dev is set.`,
		Example: `  clib install stephenmathieson/trim.c@0.0.2
  clib install buffer list -o vendor
  clib install --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstall(cmd.Context(), args)
		},
	}

	f := cmd.Flags()
	f.StringP("out", "o", "", "output directory (default ./deps)")
	f.BoolP("dev", "d", false, "also install development dependencies")
	f.IntP("jobs", "j", 0, "maximum parallel downloads (default 1)")
	_ = a.v.BindPFlag("out", f.Lookup("out"))
	_ = a.v.BindPFlag("dev", f.Lookup("dev"))
	_ = a.v.BindPFlag("jobs", f.Lookup("jobs"))
	return cmd
}

func (a *app) runInstall(ctx context.Context, slugs []string) error {
	loader, inst, err := a.loader()
	if err != nil {
		return err
	}
	out := a.settings.Out
	total := &pkgmanager.Result{}

	if len(slugs) == 0 {
		err = a.installProject(ctx, inst, total)
	} else {
		for _, raw := range slugs {
			var m *pkgmanager.Manifest
			m, err = loader.Load(ctx, raw)
			if err != nil {
				break
			}
			var res *pkgmanager.Result
			res, err = inst.Install(ctx, m, out)
			total.Merge(res)
			if err != nil {
				break
			}
		}
	}

	a.report(total)
	return err
}

// installProject installs what ./package.json depends on.
func (a *app) installProject(ctx context.Context, inst *pkgmanager.Installer, total *pkgmanager.Result) error {
	path := config.ProjectManifest(a.root)
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return fmt.Errorf("no slugs given and %w", err)
	}
	m, err := pkgmanager.ParseManifest(data, a.defaults())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if len(m.Dependencies) == 0 && (!a.settings.Dev || len(m.Development) == 0) {
		log.Info("%s lists no dependencies", path)
	}

	res, err := inst.InstallProject(ctx, m, a.settings.Out, a.settings.Dev)
	total.Merge(res)
	return err
}

func (a *app) report(r *pkgmanager.Result) {
	if a.settings.Verbose {
		_ = pkgmanager.WriteReport(a.stdout, r)
		return
	}
	p := newPrinter(a.stdout)
	for _, info := range r.Installed {
		p.installed(info)
	}
}
