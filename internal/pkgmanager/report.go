// ABOUTME: Tabular summary of an install Result for terminal output
// ABOUTME: One row per installed package, then the slugs satisfied by an earlier install

package pkgmanager

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints r as an aligned table.
func WriteReport(w io.Writer, r *Result) error {
	if r == nil || (len(r.Installed) == 0 && len(r.Satisfied) == 0) {
		_, err := fmt.Fprintln(w, "nothing to install")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tVERSION\tFILES\tPATH")
	for _, info := range r.Installed {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", info.Slug, info.Version, len(info.Files), info.Dir)
	}
	for _, slug := range dedupe(r.Satisfied) {
		fmt.Fprintf(tw, "%s\t-\t-\t(already installed)\n", slug)
	}
	return tw.Flush()
}

// Merge appends other into r; CLI runs that install several slugs report once.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Installed = append(r.Installed, other.Installed...)
	r.Satisfied = append(r.Satisfied, other.Satisfied...)
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
