// ABOUTME: Installer materializes a manifest into <dir>/<name> and recurses into dependencies
// ABOUTME: Fail-fast; a per-call visited set stops cycles and repeat installs

package pkgmanager

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tjk/clib-package/internal/log"
)

// Installer writes packages and their dependencies to disk.
type Installer struct {
	Loader  *Loader
	Fetcher Fetcher
	FS      afero.Fs
	// Jobs bounds concurrent fetches. Above 1, sibling dependencies are
	// installed in parallel; at 1 the order is strictly depth-first.
	Jobs int
}

// NewInstaller returns an Installer. A nil fs means the OS filesystem.
func NewInstaller(l *Loader, f Fetcher, fs afero.Fs, jobs int) *Installer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Installer{Loader: l, Fetcher: f, FS: fs, Jobs: jobs}
}

// Install writes m into dir/m.Name (its package.json plus every src file,
// flattened to base names) and then installs its dependencies into dir.
// The returned Result lists what was installed even when err is non-nil;
// nothing already written is rolled back.
func (in *Installer) Install(ctx context.Context, m *Manifest, dir string) (*Result, error) {
	s := in.newSession()
	err := s.install(ctx, m, dir)
	return s.result(), err
}

// InstallDependencies installs only the dependencies of m into dir.
func (in *Installer) InstallDependencies(ctx context.Context, m *Manifest, dir string) (*Result, error) {
	return in.installList(ctx, m, dir, func(m *Manifest) []Dependency { return m.Dependencies })
}

// InstallDevelopment installs the development dependencies of m into dir,
// each together with its own runtime dependencies.
func (in *Installer) InstallDevelopment(ctx context.Context, m *Manifest, dir string) (*Result, error) {
	return in.installList(ctx, m, dir, func(m *Manifest) []Dependency { return m.Development })
}

// InstallProject installs the dependencies of m and, when dev is set, its
// development dependencies, sharing one visited set so a package listed in
// both is installed once.
func (in *Installer) InstallProject(ctx context.Context, m *Manifest, dir string, dev bool) (*Result, error) {
	return in.installList(ctx, m, dir, func(m *Manifest) []Dependency {
		if !dev {
			return m.Dependencies
		}
		return append(slices.Clip(m.Dependencies), m.Development...)
	})
}

func (in *Installer) installList(ctx context.Context, m *Manifest, dir string, deps func(*Manifest) []Dependency) (*Result, error) {
	s := in.newSession()
	if m == nil || dir == "" {
		return s.result(), fmt.Errorf("%w: manifest and target directory are required", ErrInvalidArgument)
	}
	if m.Author != "" && m.RepoName != "" {
		// A dependency pointing back at the root is already satisfied.
		s.visit(m.Slug().String())
	}
	err := s.installDeps(ctx, deps(m), dir)
	return s.result(), err
}

func (in *Installer) newSession() *session {
	jobs := in.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &session{
		in:      in,
		jobs:    jobs,
		sem:     semaphore.NewWeighted(int64(jobs)),
		visited: make(map[string]bool),
		dirs:    make(map[string]*sync.Mutex),
	}
}

// session is the state shared by one top-level install call.
type session struct {
	in   *Installer
	jobs int
	sem  *semaphore.Weighted

	mu      sync.Mutex
	visited map[string]bool
	dirs    map[string]*sync.Mutex
	res     Result
}

func (s *session) install(ctx context.Context, m *Manifest, dir string) error {
	if m == nil || dir == "" {
		return fmt.Errorf("%w: manifest and target directory are required", ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !validName(m.Name) {
		return fmt.Errorf("%w: package name %q cannot name a directory", ErrInvalidArgument, m.Name)
	}

	slug := m.Slug()
	base, err := s.in.Loader.Resolver.PackageBase(slug.Author, slug.Name, slug.Version)
	if err != nil {
		return &InstallError{Package: slug.String(), Op: "resolve", Err: err}
	}

	if !s.visit(slug.String()) {
		log.Debug("%s already installed in this run", slug)
		return nil
	}

	info, err := s.materialize(ctx, m, slug, base, dir)
	if err != nil {
		return err
	}
	s.record(info)

	return s.installDeps(ctx, m.Dependencies, dir)
}

// materialize creates the package directory, writes the manifest and downloads sources.
func (s *session) materialize(ctx context.Context, m *Manifest, slug Slug, base, dir string) (Info, error) {
	pkgDir := filepath.Join(dir, m.Name)
	unlock := s.lockDir(pkgDir)
	defer unlock()

	if err := s.in.FS.MkdirAll(pkgDir, 0o755); err != nil {
		return Info{}, &InstallError{Package: slug.String(), Op: "mkdir",
			Err: fmt.Errorf("%w: %s: %w", ErrDirectoryCreate, pkgDir, err)}
	}

	manifestPath := filepath.Join(pkgDir, ManifestFile)
	if err := afero.WriteFile(s.in.FS, manifestPath, m.Raw, 0o644); err != nil {
		return Info{}, &InstallError{Package: slug.String(), Op: "write",
			Err: fmt.Errorf("%w: %s: %w", ErrManifestWrite, manifestPath, err)}
	}

	files := make([]string, 0, len(m.Src)+1)
	files = append(files, manifestPath)
	for _, entry := range m.Src {
		name := path.Base(entry)
		if !validName(name) {
			return Info{}, &InstallError{Package: slug.String(), Op: "download " + entry,
				Err: fmt.Errorf("%w: %q has no file name", ErrFileDownload, entry)}
		}
		dest := filepath.Join(pkgDir, name)
		if err := s.fetchFile(ctx, FileURL(base, entry), dest); err != nil {
			return Info{}, &InstallError{Package: slug.String(), Op: "download " + entry,
				Err: fmt.Errorf("%w: %w", ErrFileDownload, err)}
		}
		log.Debug("saved %s", dest)
		files = append(files, dest)
	}

	return Info{
		Name:        m.Name,
		Slug:        slug.String(),
		Dir:         pkgDir,
		Version:     m.Version,
		Files:       files,
		InstalledAt: time.Now(),
	}, nil
}

// installDeps installs deps into dir and returns the first failure.
func (s *session) installDeps(ctx context.Context, deps []Dependency, dir string) error {
	if len(deps) == 0 {
		return nil
	}

	if s.jobs <= 1 {
		for _, dep := range deps {
			if err := s.installDependency(ctx, dep, dir); err != nil {
				return err
			}
		}
		return nil
	}

	// Siblings are independent subtrees; the first error cancels the rest.
	g, gctx := errgroup.WithContext(ctx)
	for _, dep := range deps {
		g.Go(func() error {
			return s.installDependency(gctx, dep, dir)
		})
	}
	return g.Wait()
}

func (s *session) installDependency(ctx context.Context, dep Dependency, dir string) error {
	slug := dep.Slug().String()
	if s.seen(slug) {
		return nil
	}

	m, err := s.load(ctx, slug)
	if err != nil {
		return &InstallError{Package: slug, Op: "resolve", Err: err}
	}
	return s.install(ctx, m, dir)
}

func (s *session) load(ctx context.Context, slug string) (*Manifest, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)
	return s.in.Loader.Load(ctx, slug)
}

func (s *session) fetchFile(ctx context.Context, url, dest string) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)
	return s.in.Fetcher.FetchFile(ctx, url, dest)
}

// visit marks slug as installed by this session. It returns false, and notes
// slug as satisfied, when it was already marked.
func (s *session) visit(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[slug] {
		s.res.Satisfied = append(s.res.Satisfied, slug)
		return false
	}
	s.visited[slug] = true
	return true
}

// seen is visit without marking: it avoids refetching a manifest already handled.
func (s *session) seen(slug string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.visited[slug] {
		s.res.Satisfied = append(s.res.Satisfied, slug)
		return true
	}
	return false
}

func (s *session) lockDir(dir string) func() {
	s.mu.Lock()
	l, ok := s.dirs[dir]
	if !ok {
		l = &sync.Mutex{}
		s.dirs[dir] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *session) record(info Info) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res.Installed = append(s.res.Installed, info)
}

func (s *session) result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := Result{
		Installed: append([]Info(nil), s.res.Installed...),
		Satisfied: append([]string(nil), s.res.Satisfied...),
	}
	return &r
}

// validName reports whether name is usable as a single path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
