// ABOUTME: Environment variable expansion in config string fields
// ABOUTME: Replaces ${VAR} patterns with os.Getenv values; unset vars become empty

package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in the path and URL fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.Out = expandEnv(s.Out)
	s.BaseURL = expandEnv(s.BaseURL)
	s.DefaultAuthor = expandEnv(s.DefaultAuthor)
	s.DefaultVersion = expandEnv(s.DefaultVersion)
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
