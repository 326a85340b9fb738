package nvm

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
)

const (
	installScriptTemplate = "https://raw.githubusercontent.com/nvm-sh/nvm/%s/install.sh"
	windowsAssetName      = "nvm-setup.exe"
)

// Bootstrap installs nvm itself. On Unix the pinned install script for
// the latest release runs through bash; on Windows the nvm-windows
// setup executable runs silently.
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
	onProgress(backend.Resolving("locating latest nvm release"))

	rel, err := va.rel.LatestRelease(ctx, toolRepo())
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return err
	}
	if rel == nil || rel.TagName == "" {
		err := &backend.ErrNetwork{URL: toolRepo(), Err: fmt.Errorf("no published releases")}
		onProgress(backend.Failed(err.Error()))
		return err
	}

	tmpDir, err := os.MkdirTemp("", "nvmux-nvm-*")
	if err != nil {
		return &backend.ErrIO{Op: "create temp directory", Err: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	scriptURL := fmt.Sprintf(installScriptTemplate, rel.TagName)
	script := filepath.Join(tmpDir, "install.sh")
	if err := fetch.File(ctx, scriptURL, script); err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrNetwork{URL: scriptURL, Err: err}
	}

	onProgress(backend.Downloading(0))
	parser := newProgressParser()
	_, err = proc.RunStream(ctx, proc.Command{
		Path:    constants.ShellBash,
		Args:    []string{script},
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
			return &backend.ErrInstallFailed{Version: "nvm", Reason: cmdErr.Stderr}
		}
		return err
	}

	onProgress(backend.Done())
	return nil
}

func (va *variant) bootstrapWindows(ctx context.Context, onProgress func(backend.InstallProgress)) error {
	onProgress(backend.Resolving("locating latest nvm-windows release"))

	rel, err := va.rel.LatestRelease(ctx, toolRepo())
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return err
	}
	if rel == nil {
		err := &backend.ErrNetwork{URL: toolRepo(), Err: fmt.Errorf("no published releases")}
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
		err := &backend.ErrNetwork{URL: toolRepo(), Err: fmt.Errorf("release %s has no %s asset", rel.TagName, windowsAssetName)}
		onProgress(backend.Failed(err.Error()))
		return err
	}

	tmpDir, err := os.MkdirTemp("", "nvmux-nvm-*")
	if err != nil {
		return &backend.ErrIO{Op: "create temp directory", Err: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	setup := filepath.Join(tmpDir, windowsAssetName)
	err = fetch.FileWithProgress(ctx, assetURL, setup, func(current, total int64) {
		if total > 0 {
			onProgress(backend.Downloading(float64(current) / float64(total) * 100))
		}
	})
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		return &backend.ErrNetwork{URL: assetURL, Err: err}
	}

	onProgress(backend.Extracting())
	_, err = proc.Run(ctx, proc.Command{
		Path:    setup,
		Args:    []string{"/SILENT"},
		Timeout: defaultInstallTimeout,
	})
	if err != nil {
		onProgress(backend.Failed(err.Error()))
		var cmdErr *backend.ErrCommandFailed
		if errors.As(err, &cmdErr) {
			return &backend.ErrInstallFailed{Version: "nvm", Reason: cmdErr.Stderr}
		}
		return err
	}

	onProgress(backend.Done())
	return nil
}
