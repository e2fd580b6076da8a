// ABOUTME: Standard filesystem paths for clib configuration
// ABOUTME: Resolves ~/.clib/ for global and .clib.yaml for project-local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName     = ".clib"
	projectConfigName = ".clib"
)

// GlobalDir returns the user-global config directory (~/.clib/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// GlobalConfigFile returns the path to the global config file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigFile returns the path to the project-local config file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(projectRoot, projectConfigName+".yaml")
}

// ProjectManifest returns the package.json of the project in projectRoot.
func ProjectManifest(projectRoot string) string {
	return filepath.Join(projectRoot, "package.json")
}
