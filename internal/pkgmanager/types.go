// ABOUTME: Package management types: slug identity, dependency refs, manifest, install results
// ABOUTME: Manifest mirrors a package.json; Info/Result describe what an install produced

package pkgmanager

import (
	"time"
)

const (
	// DefaultAuthor is used when a slug omits the author segment.
	DefaultAuthor = "clibs"
	// DefaultVersion is used when a slug omits the version or asks for "*".
	DefaultVersion = "master"
)

// Defaults holds the fallback author and version applied while parsing slugs.
type Defaults struct {
	Author  string
	Version string
}

// StdDefaults returns the built-in defaults.
func StdDefaults() Defaults {
	return Defaults{Author: DefaultAuthor, Version: DefaultVersion}
}

// withFallback fills empty fields from StdDefaults.
func (d Defaults) withFallback() Defaults {
	if d.Author == "" {
		d.Author = DefaultAuthor
	}
	if d.Version == "" {
		d.Version = DefaultVersion
	}
	return d
}

// Slug is a parsed package identifier. All fields are non-empty after a successful parse.
type Slug struct {
	Author  string
	Name    string
	Version string
}

// String renders the slug as "author/name@version".
func (s Slug) String() string {
	return s.Repo() + "@" + s.Version
}

// Repo renders the "author/name" part.
func (s Slug) Repo() string {
	return s.Author + "/" + s.Name
}

// Dependency is a package required by a manifest.
type Dependency struct {
	Author  string
	Name    string
	Version string // literal version, or the default version for "*"
}

// Slug returns the dependency as a fully qualified slug.
func (d Dependency) Slug() Slug {
	return Slug{Author: d.Author, Name: d.Name, Version: d.Version}
}

// Manifest is the in-memory form of a package's package.json.
type Manifest struct {
	Name        string // self-declared name; names the install directory
	Repo        string // "author/name" as declared, or as requested by the caller
	Author      string
	RepoName    string
	Version     string
	License     string
	Description string
	Install     string // install command, informational only

	Src          []string
	Dependencies []Dependency
	Development  []Dependency

	// Raw is the manifest text exactly as fetched; it is written verbatim on install.
	Raw []byte

	// Issues lists non-fatal problems found while parsing (ErrPartialManifest).
	Issues []error
}

// Slug returns the identity under which the manifest is fetched and installed.
func (m *Manifest) Slug() Slug {
	return Slug{Author: m.Author, Name: m.RepoName, Version: m.Version}
}

// clone returns a copy that shares no slices with m.
func (m *Manifest) clone() *Manifest {
	c := *m
	c.Src = append([]string(nil), m.Src...)
	c.Dependencies = append([]Dependency(nil), m.Dependencies...)
	c.Development = append([]Dependency(nil), m.Development...)
	c.Raw = append([]byte(nil), m.Raw...)
	c.Issues = append([]error(nil), m.Issues...)
	return &c
}

// Info describes one installed package.
type Info struct {
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Dir         string    `json:"dir"`
	Version     string    `json:"version"`
	Files       []string  `json:"files"`
	InstalledAt time.Time `json:"installed_at"`
}

// Result collects everything an install call did, in completion order.
type Result struct {
	Installed []Info
	// Satisfied lists slugs that were skipped because the same call already installed them.
	Satisfied []string
}
