package fnm

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/proc"
)

const probeTimeout = 10 * time.Second

// wellKnownPaths returns the locations fnm installs itself to,
// checked before falling back to PATH. The install script targets
// ~/.local/share/fnm, older releases used ~/.fnm, and package
// managers drop the binary on PATH directly.
func wellKnownPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	exe := "fnm"
	if runtime.GOOS == constants.OSWindows {
		exe += constants.ExtExe
		paths := []string{
			filepath.Join(home, ".fnm", exe),
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			paths = append([]string{filepath.Join(localAppData, "fnm", exe)}, paths...)
		}
		return paths
	}

	paths := []string{
		filepath.Join(home, ".local", "share", "fnm", exe),
		filepath.Join(home, ".fnm", exe),
		filepath.Join(home, ".cargo", "bin", exe),
	}
	if runtime.GOOS == constants.OSDarwin {
		paths = append(paths,
			filepath.Join(home, "Library", "Application Support", "fnm", exe),
			filepath.Join("/opt", "homebrew", "bin", exe),
		)
	}
	return append(paths, filepath.Join("/usr", "local", "bin", exe))
}

// Detect locates an fnm executable. An explicit override is trusted
// as-is except for existence; otherwise well-known install locations
// are probed before PATH.
func (va *variant) Detect(ctx context.Context, opts backend.DetectOptions) (backend.Outcome, error) {
	var probed []string

	if opts.Override != "" {
		if _, err := os.Stat(opts.Override); err != nil {
			return backend.NotFound([]string{opts.Override}), nil
		}
		return confirm(ctx, opts.Override)
	}

	for _, candidate := range wellKnownPaths() {
		probed = append(probed, candidate)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		return confirm(ctx, candidate)
	}

	if found, err := exec.LookPath("fnm"); err == nil {
		return confirm(ctx, found)
	}
	probed = append(probed, "$PATH")

	return backend.NotFound(probed), nil
}

// confirm reads the tool version from a candidate path. The version is
// informational only: a binary that will not run or reports something
// unparseable is still Found, and the real failure surfaces on the
// first command against it.
func confirm(ctx context.Context, path string) (backend.Outcome, error) {
	var version *node.Version
	res, err := proc.Run(ctx, proc.Command{
		Path:    path,
		Args:    []string{"--version"},
		Timeout: probeTimeout,
	})
	if err == nil {
		if v, ok := parseToolVersion(res.Stdout); ok {
			version = &v
		}
	}
	return backend.Found(path, version), nil
}

// parseToolVersion extracts the version from `fnm --version` output,
// which looks like "fnm 1.38.1".
func parseToolVersion(out string) (node.Version, bool) {
	fields := strings.Fields(strings.TrimSpace(out))
	for _, f := range fields {
		v, err := node.Parse(f)
		if err == nil && !v.IsAlias() {
			return v, true
		}
	}
	return node.Version{}, false
}
