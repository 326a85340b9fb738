// Package settings manages the application's directories and its YAML
// settings file.
package settings

import (
	"os"
	"path/filepath"
	"sync"
)

// Paths holds the application's directory layout.
type Paths struct {
	Root  string // root directory (~/.nvmux)
	Cache string // cache directory (~/.nvmux/cache)
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the application paths. Thread-safe, initialized
// once.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = initPaths()
	})
	return defaultPaths
}

func initPaths() *Paths {
	root := getRootDir()
	return &Paths{
		Root:  root,
		Cache: filepath.Join(root, "cache"),
	}
}

func getRootDir() string {
	// NVMUX_ROOT wins over the home-relative default.
	if root := os.Getenv("NVMUX_ROOT"); root != "" {
		return root
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory when home is unavailable.
		return ".nvmux"
	}

	return filepath.Join(home, ".nvmux")
}

// SettingsFileName is the name of the settings file.
const SettingsFileName = "settings.yaml"

// ScheduleCacheFileName is the name of the cached release schedule.
const ScheduleCacheFileName = "schedule.json"

// FilePath returns the settings file location. NVMUX_CONFIG overrides
// the default inside the root directory.
func FilePath() string {
	if custom := os.Getenv("NVMUX_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(DefaultPaths().Root, SettingsFileName)
}

// ScheduleCachePath returns the cached schedule location.
func ScheduleCachePath() string {
	return filepath.Join(DefaultPaths().Cache, ScheduleCacheFileName)
}

// ResetPathsCache resets the cached paths, forcing reinitialization on
// next access. Primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
