// ABOUTME: Manifest parsing from package.json text using easyjson's streaming lexer
// ABOUTME: Keeps dependency order as declared; malformed list entries truncate, not fail

package pkgmanager

import (
	"fmt"

	"github.com/mailru/easyjson/jlexer"

	"github.com/tjk/clib-package/internal/log"
)

// ParseManifest builds a Manifest from package.json text. It fails with ErrParse
// when data is not JSON or not a top-level object. Problems inside "src",
// "dependencies" or "development" stop population of that field and are
// recorded in Manifest.Issues instead.
func ParseManifest(data []byte, d Defaults) (*Manifest, error) {
	d = d.withFallback()
	m := &Manifest{Raw: append([]byte(nil), data...)}

	in := &jlexer.Lexer{Data: data}
	if !in.IsDelim('{') || !in.Ok() {
		if err := in.Error(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrParse)
	}

	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.String()
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "name":
			m.Name = stringField(in, m, key)
		case "repo":
			m.Repo = stringField(in, m, key)
		case "version":
			m.Version = stringField(in, m, key)
		case "license":
			m.License = stringField(in, m, key)
		case "description":
			m.Description = stringField(in, m, key)
		case "install":
			m.Install = stringField(in, m, key)
		case "src":
			m.Src = parseSrc(in, m)
		case "dependencies":
			m.Dependencies = parseDependencies(in, m, key, d)
		case "development":
			m.Development = parseDependencies(in, m, key, d)
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	in.Consumed()

	if err := in.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if m.Version == "" {
		m.Version = d.Version
	}
	m.deriveRepo(d)

	for _, issue := range m.Issues {
		log.Warn("%s: %v", m.label(), issue)
	}
	return m, nil
}

// label names the manifest in messages, even when it declares no name.
func (m *Manifest) label() string {
	switch {
	case m.Name != "":
		return m.Name
	case m.Repo != "":
		return m.Repo
	default:
		return ManifestFile
	}
}

// deriveRepo fills Author and RepoName from Repo, or from Name when the
// manifest does not declare a repo.
func (m *Manifest) deriveRepo(d Defaults) {
	id := m.Repo
	if id == "" {
		id = m.Name
	}
	if id == "" {
		return
	}
	if author, err := d.ParseAuthor(id); err == nil {
		m.Author = author
	}
	if name, err := ParseName(id); err == nil {
		m.RepoName = name
	}
}

// Reconcile returns a copy of m stamped with the identity the caller asked
// for. A package published as version 1.2.0 and requested as author/name@dev
// installs as dev from author/name. m itself is left untouched.
func (m *Manifest) Reconcile(s Slug) *Manifest {
	c := m.clone()
	c.Version = s.Version
	c.Repo = s.Repo()
	c.Author = s.Author
	c.RepoName = s.Name
	if c.Name == "" {
		c.Name = s.Name
	}
	return c
}

// stringField reads an optional string value; other types are skipped and noted.
func stringField(in *jlexer.Lexer, m *Manifest, key string) string {
	v := in.Interface()
	s, ok := v.(string)
	if !ok {
		m.Issues = append(m.Issues, partial(key, "expected a string, got %T", v))
		return ""
	}
	return s
}

func parseSrc(in *jlexer.Lexer, m *Manifest) []string {
	if !in.IsDelim('[') {
		v := in.Interface()
		m.Issues = append(m.Issues, partial("src", "expected an array, got %T", v))
		return nil
	}

	src := []string{}
	stopped := false
	in.Delim('[')
	for !in.IsDelim(']') {
		v := in.Interface()
		if !stopped {
			if file, ok := v.(string); ok {
				src = append(src, file)
			} else {
				stopped = true
				m.Issues = append(m.Issues, partial("src", "entry %d is %T, ignoring the rest", len(src), v))
			}
		}
		in.WantComma()
	}
	in.Delim(']')
	return src
}

func parseDependencies(in *jlexer.Lexer, m *Manifest, field string, d Defaults) []Dependency {
	if !in.IsDelim('{') {
		v := in.Interface()
		m.Issues = append(m.Issues, partial(field, "expected an object, got %T", v))
		return nil
	}

	deps := []Dependency{}
	stopped := false
	in.Delim('{')
	for !in.IsDelim('}') {
		id := in.String()
		in.WantColon()
		v := in.Interface()
		if !stopped {
			dep, err := dependencyEntry(d, id, v)
			if err != nil {
				stopped = true
				m.Issues = append(m.Issues, partial(field, "%v, ignoring the rest", err))
			} else {
				deps = append(deps, dep)
			}
		}
		in.WantComma()
	}
	in.Delim('}')
	return deps
}

func dependencyEntry(d Defaults, id string, v any) (Dependency, error) {
	version, ok := v.(string)
	if !ok {
		return Dependency{}, fmt.Errorf("%q: version is %T, not a string", id, v)
	}
	return d.NewDependency(id, version)
}
