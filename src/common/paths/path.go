// Package paths expands user supplied paths for config files and local storage.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand expands environment variables and a leading ~ to the home directory
func Expand(path string) string {
	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return path
}

// EnsureDir creates dirPath and any missing parents
func EnsureDir(dirPath string) error {
	return os.MkdirAll(dirPath, 0755)
}

// EnsureParent creates the parent directory of a file path
func EnsureParent(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}
