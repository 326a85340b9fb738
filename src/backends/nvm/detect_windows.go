//go:build windows

package nvm

import (
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/windows/registry"

	"github.com/nvmux/nvmux/src/internal/constants"
)

// wellKnownPaths lists where nvm-windows puts nvm.exe. The installer
// records its home in the NVM_HOME environment variable, persisted
// through the registry.
func wellKnownPaths() []string {
	exe := "nvm" + constants.ExtExe
	var paths []string

	if home := os.Getenv("NVM_HOME"); home != "" {
		paths = append(paths, filepath.Join(home, exe))
	}
	if home := registryHome(); home != "" {
		paths = append(paths, filepath.Join(home, exe))
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		paths = append(paths, filepath.Join(appData, "nvm", exe))
	}
	if userProfile := os.Getenv("USERPROFILE"); userProfile != "" {
		paths = append(paths, filepath.Join(userProfile, "AppData", "Roaming", "nvm", exe))
	}
	return paths
}

// registryHome reads NVM_HOME from the user environment key, falling
// back to the machine-wide one the all-users installer writes.
func registryHome() string {
	type location struct {
		root registry.Key
		path string
	}
	locations := []location{
		{registry.CURRENT_USER, `Environment`},
		{registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`},
	}

	for _, loc := range locations {
		key, err := registry.OpenKey(loc.root, loc.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		home, _, err := key.GetStringValue("NVM_HOME")
		_ = key.Close()
		if err == nil && home != "" {
			return home
		}
	}
	return ""
}

func lookPath() (string, bool) {
	found, err := exec.LookPath("nvm")
	if err != nil {
		return "", false
	}
	return found, true
}

func versionArgs() []string {
	return []string{"version"}
}
