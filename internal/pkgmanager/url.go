// ABOUTME: Derives remote manifest and source file URLs from author/name/version
// ABOUTME: Base host is configurable; defaults to raw GitHub content

package pkgmanager

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL serves raw repository files at <base>/<author>/<name>/<ref>/<path>.
	DefaultBaseURL = "https://raw.github.com"
	// ManifestFile is the manifest name, both remotely and inside an install directory.
	ManifestFile = "package.json"
)

// Resolver builds URLs below a fixed scheme and host.
type Resolver struct {
	base string
}

// NewResolver validates baseURL and returns a Resolver for it.
func NewResolver(baseURL string) (*Resolver, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url %q: %w", ErrInvalidArgument, baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q needs a scheme and host", ErrInvalidArgument, baseURL)
	}
	return &Resolver{base: strings.TrimRight(baseURL, "/")}, nil
}

// BaseURL returns the normalized base.
func (r *Resolver) BaseURL() string { return r.base }

// PackageBase returns <base>/<author>/<name>/<version>, the root that a package's
// manifest and source files are resolved against.
func (r *Resolver) PackageBase(author, name, version string) (string, error) {
	if author == "" || name == "" || version == "" {
		return "", fmt.Errorf("%w: author, name and version are required (got %q, %q, %q)",
			ErrInvalidArgument, author, name, version)
	}
	return r.base + "/" + author + "/" + name + "/" + version, nil
}

// ManifestURL returns the URL of the package's manifest file.
func (r *Resolver) ManifestURL(s Slug) (string, error) {
	base, err := r.PackageBase(s.Author, s.Name, s.Version)
	if err != nil {
		return "", err
	}
	return FileURL(base, ManifestFile), nil
}

// FileURL joins base and a relative path with exactly one "/".
func FileURL(base, rel string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(rel, "/")
}
