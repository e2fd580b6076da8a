// ABOUTME: Resolves a slug into a Manifest: parse slug, fetch package.json, reconcile
// ABOUTME: The requested version and repo win over what the manifest declares

package pkgmanager

import (
	"context"
	"fmt"

	"github.com/tjk/clib-package/internal/log"
)

// Loader turns slugs into manifests.
type Loader struct {
	Defaults Defaults
	Resolver *Resolver
	Fetcher  Fetcher
}

// NewLoader returns a Loader; zero-valued Defaults fall back to StdDefaults.
func NewLoader(d Defaults, r *Resolver, f Fetcher) *Loader {
	return &Loader{Defaults: d.withFallback(), Resolver: r, Fetcher: f}
}

// Resolve parses raw into a Slug and returns the manifest URL it maps to.
func (l *Loader) Resolve(raw string) (Slug, string, error) {
	s, err := l.Defaults.ParseSlug(NormalizeSlug(raw))
	if err != nil {
		return Slug{}, "", err
	}
	url, err := l.Resolver.ManifestURL(s)
	if err != nil {
		return Slug{}, "", fmt.Errorf("%w: %w", ErrInvalidSlug, err)
	}
	return s, url, nil
}

// Load fetches and parses the manifest named by raw. The returned manifest carries
// the requested author, name and version regardless of what it declares itself.
func (l *Loader) Load(ctx context.Context, raw string) (*Manifest, error) {
	s, url, err := l.Resolve(raw)
	if err != nil {
		return nil, err
	}

	data, err := l.Fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, s, err)
	}

	m, err := ParseManifest(data, l.Defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s, err)
	}

	if m.Version != s.Version || m.Repo != s.Repo() {
		log.Debug("%s: manifest declares %s@%s", s, m.Repo, m.Version)
	}
	return m.Reconcile(s), nil
}
