//go:build !windows

package nvm

import (
	"os"
	"path/filepath"
)

// wellKnownPaths lists where the nvm.sh entry script normally lives.
// The install script targets ~/.nvm; XDG-style setups use
// ~/.config/nvm.
func wellKnownPaths() []string {
	var paths []string
	if dir := os.Getenv("NVM_DIR"); dir != "" {
		paths = append(paths, filepath.Join(dir, "nvm.sh"))
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}
	return append(paths,
		filepath.Join(home, ".nvm", "nvm.sh"),
		filepath.Join(home, ".config", "nvm", "nvm.sh"),
	)
}

// lookPath never matches on Unix: nvm is a shell function, not an
// executable on PATH.
func lookPath() (string, bool) {
	return "", false
}

func versionArgs() []string {
	return []string{"--version"}
}
