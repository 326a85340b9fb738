package fnm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/fetch"
	"github.com/nvmux/nvmux/src/internal/proc"
	"github.com/nvmux/nvmux/src/internal/ui"
)

const (
	installScriptURL = "https://fnm.vercel.app/install"
	windowsAssetName = "fnm-windows.zip"
)

// Bootstrap installs fnm itself. On Unix systems the official install
// script is downloaded and run through bash; on Windows the release
// zip is fetched from GitHub and unpacked into %LOCALAPPDATA%\fnm.
func (va *variant) Bootstrap(ctx context.Context, onProgress func(backend.InstallProgress)) error {
	if onProgress == nil {
		onProgress = func(backend.InstallProgress) {}
	}
	if runtime.GOOS == constants.OSWindows {
		return va.bootstrapWindows(ctx, onProgress)
	}
	return va.bootstrapScript(ctx, onProgress)
}

func (va *variant) bootstrapScript(ctx context.Context, onProgress func(backend.InstallProgress)) error {
	onProgress(backend.Resolving("downloading fnm install script"))

	tmpDir, err := os.MkdirTemp("", "nvmux-fnm-*")
	if err != nil {
		return &backend.ErrIO{Op: "create temp directory", Err: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	script := filepath.Join(tmpDir, "install.sh")
	if err := fetch.File(ctx, installScriptURL, script); err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrNetwork{URL: installScriptURL, Err: err}
	}

	onProgress(backend.Downloading(0))
	parser := newProgressParser()
	_, err = proc.RunStream(ctx, proc.Command{
		Path:    constants.ShellBash,
		Args:    []string{script, "--skip-shell"},
		Timeout: defaultInstallTimeout,
	}, func(line string) {
		if progress, ok := parser.Parse(line); ok {
			onProgress(progress)
		}
	})
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		var cmdErr *backend.ErrCommandFailed
		if errors.As(err, &cmdErr) {
			return &backend.ErrInstallFailed{Version: "fnm", Reason: cmdErr.Stderr}
		}
		return err
	}

	onProgress(backend.Done())
	return nil
}

func (va *variant) bootstrapWindows(ctx context.Context, onProgress func(backend.InstallProgress)) error {
	onProgress(backend.Resolving("locating latest fnm release"))

	rel, err := va.rel.LatestRelease(ctx, toolRepo)
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return err
	}
	if rel == nil {
		err := &backend.ErrNetwork{URL: toolRepo, Err: fmt.Errorf("no published releases")}
		onProgress(backend.Failed(err.Error()))
		return err
	}

	var assetURL string
	for _, asset := range rel.Assets {
		if strings.EqualFold(asset.Name, windowsAssetName) {
			assetURL = asset.DownloadURL
			break
		}
	}
	if assetURL == "" {
		err := &backend.ErrNetwork{URL: toolRepo, Err: fmt.Errorf("release %s has no %s asset", rel.TagName, windowsAssetName)}
		onProgress(backend.Failed(err.Error()))
		return err
	}

	destDir := filepath.Join(os.Getenv("LOCALAPPDATA"), "fnm")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrIO{Op: "create fnm directory", Err: err}
	}

	archive := filepath.Join(destDir, windowsAssetName)
	err = fetch.FileWithProgress(ctx, assetURL, archive, func(current, total int64) {
		if total > 0 {
			onProgress(backend.Downloading(float64(current) / float64(total) * 100))
		}
	})
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrNetwork{URL: assetURL, Err: err}
	}
	defer func() { _ = os.Remove(archive) }()

	if sum, err := fetch.ComputeSHA256(archive); err == nil {
		ui.Debug("fnm archive sha256 %s", sum)
	}

	onProgress(backend.Extracting())
	if err := fetch.Extract(archive, destDir); err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrIO{Op: "extract fnm archive", Err: err}
	}

	onProgress(backend.Done())
	return nil
}
