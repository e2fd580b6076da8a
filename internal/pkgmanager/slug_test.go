// ABOUTME: Tests for slug parsing
// ABOUTME: Validates default author/version substitution, wildcard handling and failures

package pkgmanager

import (
	"errors"
	"testing"
)

func TestParseSlug_Forms(t *testing.T) {
	t.Parallel()
	d := StdDefaults()
	tests := []struct {
		raw  string
		want Slug
	}{
		{"widget", Slug{DefaultAuthor, "widget", DefaultVersion}},
		{"widget@1.2.0", Slug{DefaultAuthor, "widget", "1.2.0"}},
		{"acme/widget", Slug{"acme", "widget", DefaultVersion}},
		{"acme/widget@1.2.0", Slug{"acme", "widget", "1.2.0"}},
		{"acme/widget@*", Slug{"acme", "widget", DefaultVersion}},
		{"acme/widget@", Slug{"acme", "widget", DefaultVersion}},
		{"widget@feature/x", Slug{DefaultAuthor, "widget", "feature/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := d.ParseSlug(tt.raw)
			if err != nil {
				t.Fatalf("ParseSlug(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("ParseSlug(%q) = %+v; want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSlug_RecomposesNormalized(t *testing.T) {
	t.Parallel()
	d := StdDefaults()
	for _, raw := range []string{"acme/widget@1.2.0", "stephenmathieson/trim.c@0.0.2"} {
		s, err := d.ParseSlug(raw)
		if err != nil {
			t.Fatalf("ParseSlug(%q): %v", raw, err)
		}
		if s.String() != raw {
			t.Errorf("String() = %q; want %q", s.String(), raw)
		}
	}
}

func TestParseSlug_Invalid(t *testing.T) {
	t.Parallel()
	d := StdDefaults()
	for _, raw := range []string{"", "a/@1.0", "@1.0", "/widget", "acme/"} {
		t.Run(raw, func(t *testing.T) {
			if _, err := d.ParseSlug(raw); !errors.Is(err, ErrInvalidSlug) {
				t.Errorf("ParseSlug(%q) error = %v; want ErrInvalidSlug", raw, err)
			}
		})
	}
}

func TestParseAuthor(t *testing.T) {
	t.Parallel()
	d := StdDefaults()

	if got, _ := d.ParseAuthor("pkg"); got != DefaultAuthor {
		t.Errorf("ParseAuthor(pkg) = %q; want %q", got, DefaultAuthor)
	}
	if got, _ := d.ParseAuthor("acme/pkg"); got != "acme" {
		t.Errorf("ParseAuthor(acme/pkg) = %q; want acme", got)
	}
	if got, _ := d.ParseAuthor("acme/pkg@1.0"); got != "acme" {
		t.Errorf("ParseAuthor(acme/pkg@1.0) = %q; want acme", got)
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()
	d := StdDefaults()

	for _, raw := range []string{"pkg@*", "pkg"} {
		if got, _ := d.ParseVersion(raw); got != DefaultVersion {
			t.Errorf("ParseVersion(%q) = %q; want %q", raw, got, DefaultVersion)
		}
	}
	if got, _ := d.ParseVersion("pkg@0.3.1"); got != "0.3.1" {
		t.Errorf("ParseVersion(pkg@0.3.1) = %q", got)
	}
}

func TestParseName(t *testing.T) {
	t.Parallel()

	if _, err := ParseName("a/@1.0"); !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("ParseName(a/@1.0) error = %v; want ErrInvalidSlug", err)
	}
	if got, _ := ParseName("acme/pkg@1.0"); got != "pkg" {
		t.Errorf("ParseName(acme/pkg@1.0) = %q; want pkg", got)
	}
	if got, _ := ParseName("pkg@1.0"); got != "pkg" {
		t.Errorf("ParseName(pkg@1.0) = %q; want pkg", got)
	}
}

func TestDefaults_Injected(t *testing.T) {
	t.Parallel()
	d := Defaults{Author: "acme", Version: "main"}

	s, err := d.ParseSlug("widget@*")
	if err != nil {
		t.Fatal(err)
	}
	if s.Author != "acme" || s.Version != "main" {
		t.Errorf("ParseSlug with custom defaults = %+v", s)
	}

	// Zero value falls back to the built-in defaults.
	s, err = Defaults{}.ParseSlug("widget")
	if err != nil {
		t.Fatal(err)
	}
	if s.Author != DefaultAuthor || s.Version != DefaultVersion {
		t.Errorf("ParseSlug with zero defaults = %+v", s)
	}
}

func TestNewDependency(t *testing.T) {
	t.Parallel()
	d := StdDefaults()
	tests := []struct {
		id, version string
		want        Dependency
	}{
		{"acme/list", "0.2.0", Dependency{"acme", "list", "0.2.0"}},
		{"list", "*", Dependency{DefaultAuthor, "list", DefaultVersion}},
	}
	for _, tt := range tests {
		got, err := d.NewDependency(tt.id, tt.version)
		if err != nil {
			t.Fatalf("NewDependency(%q, %q): %v", tt.id, tt.version, err)
		}
		if got != tt.want {
			t.Errorf("NewDependency(%q, %q) = %+v; want %+v", tt.id, tt.version, got, tt.want)
		}
	}

	if _, err := d.NewDependency("acme/list", ""); err == nil {
		t.Error("expected error for empty version")
	}
	if _, err := d.NewDependency("acme/", "1.0"); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()
	// "e" + combining acute accent composes to a single code point.
	if got := NormalizeSlug("  acme/cafe\u0301  "); got != "acme/caf\u00e9" {
		t.Errorf("NormalizeSlug = %q; want NFC and trimmed", got)
	}
}
