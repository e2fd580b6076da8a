// ABOUTME: Terminal output helpers: lipgloss styles on a TTY, plain text otherwise
// ABOUTME: Renders manifests as aligned text, ordered JSON (easyjson jwriter) or YAML nodes

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mailru/easyjson/jwriter"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/tjk/clib-package/internal/pkgmanager"
)

var (
	keyStyle  = lipgloss.NewStyle().Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// printer writes human-readable output. Styling and truncation only apply
// when w is a terminal.
type printer struct {
	w      io.Writer
	styled bool
	width  int
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.styled = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			p.width = width
		}
	}
	return p
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) installed(info pkgmanager.Info) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.style(okStyle, "installed"),
		info.Slug,
		p.style(dimStyle, info.Dir))
}

// field prints one "key  value" line, truncating value to the terminal width.
func (p *printer) field(key, value string) {
	const keyWidth = 14
	pad := strings.Repeat(" ", max(keyWidth-len(key), 1))
	if p.width > 0 {
		value = truncate(value, p.width-keyWidth)
	}
	fmt.Fprintf(p.w, "%s%s%s\n", p.style(keyStyle, key), pad, value)
}

// truncate shortens s to at most width terminal cells, ending in "…".
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func (p *printer) manifest(m *pkgmanager.Manifest) {
	p.field("name", m.Name)
	p.field("repo", m.Repo)
	p.field("version", m.Version)
	if m.License != "" {
		p.field("license", m.License)
	}
	if m.Description != "" {
		p.field("description", m.Description)
	}
	if m.Install != "" {
		p.field("install", m.Install)
	}
	for i, src := range m.Src {
		p.field(listKey("src", i), src)
	}
	for i, d := range m.Dependencies {
		p.field(listKey("dependencies", i), d.Slug().String())
	}
	for i, d := range m.Development {
		p.field(listKey("development", i), d.Slug().String())
	}
	for _, issue := range m.Issues {
		fmt.Fprintln(p.w, p.style(warnStyle, "warning: "+issue.Error()))
	}
}

// listKey labels only the first row of a list.
func listKey(key string, i int) string {
	if i == 0 {
		return key
	}
	return ""
}

// manifestJSON renders m as a JSON object with fields and dependencies in
// manifest order.
func manifestJSON(m *pkgmanager.Manifest) ([]byte, error) {
	var w jwriter.Writer
	w.RawByte('{')

	first := true
	key := func(k string) {
		if !first {
			w.RawByte(',')
		}
		first = false
		w.String(k)
		w.RawByte(':')
	}
	str := func(k, v string) {
		key(k)
		w.String(v)
	}

	str("name", m.Name)
	str("repo", m.Repo)
	str("version", m.Version)
	if m.License != "" {
		str("license", m.License)
	}
	if m.Description != "" {
		str("description", m.Description)
	}
	if m.Install != "" {
		str("install", m.Install)
	}

	key("src")
	w.RawByte('[')
	for i, s := range m.Src {
		if i > 0 {
			w.RawByte(',')
		}
		w.String(s)
	}
	w.RawByte(']')

	deps := func(name string, list []pkgmanager.Dependency) {
		key(name)
		w.RawByte('{')
		for i, d := range list {
			if i > 0 {
				w.RawByte(',')
			}
			w.String(d.Author + "/" + d.Name)
			w.RawByte(':')
			w.String(d.Version)
		}
		w.RawByte('}')
	}
	deps("dependencies", m.Dependencies)
	deps("development", m.Development)

	w.RawByte('}')
	return w.BuildBytes()
}

// manifestYAML renders m as YAML, keeping manifest order via yaml.Node.
func manifestYAML(m *pkgmanager.Manifest) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		doc.Content = append(doc.Content, yamlString(key), value)
	}

	add("name", yamlString(m.Name))
	add("repo", yamlString(m.Repo))
	add("version", yamlString(m.Version))
	if m.License != "" {
		add("license", yamlString(m.License))
	}
	if m.Description != "" {
		add("description", yamlString(m.Description))
	}
	if m.Install != "" {
		add("install", yamlString(m.Install))
	}

	src := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range m.Src {
		src.Content = append(src.Content, yamlString(s))
	}
	add("src", src)
	add("dependencies", yamlDeps(m.Dependencies))
	add("development", yamlDeps(m.Development))

	return yaml.Marshal(doc)
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlDeps(list []pkgmanager.Dependency) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range list {
		n.Content = append(n.Content, yamlString(d.Author+"/"+d.Name), yamlString(d.Version))
	}
	return n
}
