// ABOUTME: Human-readable rendering of effective configuration
// ABOUTME: Used by the "config" CLI subcommand to show merged settings and their source

package config

import (
	"fmt"
	"strings"
)

// Explain renders the effective settings grouped by section. source names the
// config file that was read; empty means built-in defaults and environment only.
func Explain(s *Settings, source string) string {
	if s == nil {
		s = &Settings{}
	}

	var b strings.Builder

	b.WriteString("=== Source ===\n")
	if source == "" {
		source = "(defaults and environment)"
	}
	fmt.Fprintf(&b, "  File:    %s\n", source)
	b.WriteString("\n")

	b.WriteString("=== Install ===\n")
	fmt.Fprintf(&b, "  Out:     %s\n", s.Out)
	fmt.Fprintf(&b, "  Jobs:    %d\n", s.Jobs)
	if s.Dev {
		b.WriteString("  Dev:     true\n")
	}
	b.WriteString("\n")

	b.WriteString("=== Resolution ===\n")
	fmt.Fprintf(&b, "  BaseURL: %s\n", s.BaseURL)
	fmt.Fprintf(&b, "  Author:  %s\n", s.DefaultAuthor)
	fmt.Fprintf(&b, "  Version: %s\n", s.DefaultVersion)
	b.WriteString("\n")

	b.WriteString("=== Network ===\n")
	fmt.Fprintf(&b, "  Timeout: %s\n", s.Timeout)
	b.WriteString("\n")

	return b.String()
}
