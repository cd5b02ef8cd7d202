package config

import (
	"os"
	"path/filepath"
)

// EnvConfigPath names the environment variable consulted by GetConfigPath.
const EnvConfigPath = "REDIRKIT_CONFIG"

// DefaultFileName is looked up in the working and executable directories.
const DefaultFileName = "redirkit.yaml"

// GetConfigPath determines the configuration file path.
// Priority:
// 1. --config flag
// 2. REDIRKIT_CONFIG environment variable
// 3. redirkit.yaml in the current working directory
// 4. redirkit.yaml in the executable's directory
// An explicit flag value is returned even if missing so Load can report it.
// An empty result means no file was found.
func GetConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvConfigPath); env != "" && fileExists(env) {
		return env
	}

	var locations []string
	cwd, errCwd := os.Getwd()
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); errCwd != nil || dir != cwd {
			locations = append(locations, dir)
		}
	}
	for _, loc := range locations {
		if path := filepath.Join(loc, DefaultFileName); fileExists(path) {
			return path
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
