// ABOUTME: Root command and shared wiring: config loading, logger level, installer construction
// ABOUTME: Every subcommand reads the merged Settings prepared in PersistentPreRunE

package main

import (
	"io"
	"net/http"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tjk/clib-package/internal/config"
	chttp "github.com/tjk/clib-package/internal/http"
	"github.com/tjk/clib-package/internal/log"
	"github.com/tjk/clib-package/internal/pkgmanager"
)

// app carries the state shared by all subcommands.
type app struct {
	v        *viper.Viper
	settings *config.Settings

	// root is the project directory: .clib.yaml and package.json are read from here.
	root   string
	fs     afero.Fs
	client *http.Client // nil builds one from Settings.Timeout

	stdout io.Writer
	stderr io.Writer
}

func newApp(stdout, stderr io.Writer, root string) *app {
	return &app{
		v:      viper.New(),
		root:   root,
		fs:     afero.NewOsFs(),
		stdout: stdout,
		stderr: stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "clib",
		Short: "Install C packages from GitHub",
		Long: `clib installs C packages described by a package.json.

A package is named by a slug of the form [author/]name[@version]; the author
defaults to "clibs" and the version to "master".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.configure,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .clib.yaml, then ~/.clib/config.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output (same as --log-level debug)")
	pf.String("log-level", "", "log level: debug, info, warn or error (default info)")
	pf.String("base-url", "", "host serving raw package files (default https://raw.github.com)")
	_ = a.v.BindPFlag("verbose", pf.Lookup("verbose"))
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("base_url", pf.Lookup("base-url"))

	root.AddCommand(
		newInstallCmd(a),
		newInfoCmd(a),
		newResolveCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) configure(cmd *cobra.Command, _ []string) error {
	file, _ := cmd.Flags().GetString("config")
	if err := config.Init(a.v, file, a.root); err != nil {
		return err
	}
	s, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.settings = s

	level := log.LevelInfo
	if s.LogLevel != "" {
		if level, err = log.ParseLevel(s.LogLevel); err != nil {
			return err
		}
	}
	if s.Verbose {
		level = log.LevelDebug
	}
	log.SetLevel(level)
	log.Debug("config: out=%s base_url=%s jobs=%d", s.Out, s.BaseURL, s.Jobs)
	return nil
}

func (a *app) defaults() pkgmanager.Defaults {
	return pkgmanager.Defaults{Author: a.settings.DefaultAuthor, Version: a.settings.DefaultVersion}
}

// loader builds a Loader and Installer from the loaded settings.
func (a *app) loader() (*pkgmanager.Loader, *pkgmanager.Installer, error) {
	res, err := pkgmanager.NewResolver(a.settings.BaseURL)
	if err != nil {
		return nil, nil, err
	}
	client := a.client
	if client == nil {
		client = chttp.SecureHTTPClient(a.settings.Timeout)
	}
	fetcher := pkgmanager.NewHTTPFetcher(client, a.fs)
	l := pkgmanager.NewLoader(a.defaults(), res, fetcher)
	return l, pkgmanager.NewInstaller(l, fetcher, a.fs, a.settings.Jobs), nil
}
