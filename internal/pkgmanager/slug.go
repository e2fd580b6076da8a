// ABOUTME: Slug parser: [author/]name[@version] with default author and version
// ABOUTME: Pure string functions; each field can be parsed independently

package pkgmanager

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSlug trims surrounding whitespace and puts user input into NFC form
// so that visually identical slugs resolve to the same URL.
func NormalizeSlug(raw string) string {
	return norm.NFC.String(strings.TrimSpace(raw))
}

// ParseSlug splits a slug into author, name and version, applying defaults for
// omitted segments. Accepted forms: "name", "name@version", "author/name",
// "author/name@version".
func (d Defaults) ParseSlug(slug string) (Slug, error) {
	author, err := d.ParseAuthor(slug)
	if err != nil {
		return Slug{}, err
	}
	name, err := ParseName(slug)
	if err != nil {
		return Slug{}, err
	}
	version, err := d.ParseVersion(slug)
	if err != nil {
		return Slug{}, err
	}
	return Slug{Author: author, Name: name, Version: version}, nil
}

// ParseAuthor returns the text before the first "/" of the repo part of slug,
// or the default author when there is no "/". The version part is ignored, so a
// branch such as "name@feature/x" does not produce an author.
func (d Defaults) ParseAuthor(slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("%w: empty slug", ErrInvalidSlug)
	}
	repo, _, _ := strings.Cut(slug, "@")
	author, _, ok := strings.Cut(repo, "/")
	if !ok {
		return d.withFallback().Author, nil
	}
	if author == "" {
		return "", fmt.Errorf("%w: missing author in %q", ErrInvalidSlug, slug)
	}
	return author, nil
}

// ParseName returns the text between the first "/" and the first "@". Without a
// "/" the whole text before "@" is the name. An empty name is an error.
func ParseName(slug string) (string, error) {
	repo, _, _ := strings.Cut(slug, "@")
	name := repo
	if _, after, ok := strings.Cut(repo, "/"); ok {
		name = after
	}
	if name == "" {
		return "", fmt.Errorf("%w: missing name in %q", ErrInvalidSlug, slug)
	}
	return name, nil
}

// ParseVersion returns the text after the first "@". A missing or empty version,
// and the wildcard "*", map to the default version.
func (d Defaults) ParseVersion(slug string) (string, error) {
	if slug == "" {
		return "", fmt.Errorf("%w: empty slug", ErrInvalidSlug)
	}
	_, version, _ := strings.Cut(slug, "@")
	return d.normalizeVersion(version), nil
}

func (d Defaults) normalizeVersion(version string) string {
	if version == "" || version == "*" {
		return d.withFallback().Version
	}
	return version
}

// NewDependency builds a dependency from a manifest entry: id is "author/name"
// or a bare name, version is a literal version or "*".
func (d Defaults) NewDependency(id, version string) (Dependency, error) {
	if id == "" || version == "" {
		return Dependency{}, fmt.Errorf("%w: dependency %q needs a name and a version", ErrInvalidArgument, id)
	}
	author, err := d.ParseAuthor(id)
	if err != nil {
		return Dependency{}, err
	}
	name, err := ParseName(id)
	if err != nil {
		return Dependency{}, err
	}
	return Dependency{Author: author, Name: name, Version: d.normalizeVersion(version)}, nil
}
