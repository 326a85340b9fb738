// Package fetch provides utilities for downloading and extracting
// backend tool release archives.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// File downloads a URL to a destination path, drawing a progress bar.
// Cancellation of ctx aborts the transfer.
func File(ctx context.Context, url, destPath string) error {
	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	resp, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := createDest(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	bar := progressbar.DefaultBytes(
		resp.ContentLength,
		"Downloading",
	)

	_, err = io.Copy(io.MultiWriter(out, bar), resp.Body)
	if err != nil {
		ui.Debug("Download failed: %v", err)
		return err
	}

	fmt.Println() // New line after progress bar
	ui.Debug("Download complete: %s", destPath)
	return nil
}

// FileWithProgress downloads a URL to a destination path, reporting
// byte counts to the callback instead of drawing anything.
func FileWithProgress(ctx context.Context, url, destPath string, progress func(current, total int64)) error {
	resp, err := get(ctx, url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	out, err := createDest(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	reader := &progressReader{
		reader:   resp.Body,
		progress: progress,
		total:    resp.ContentLength,
	}

	_, err = io.Copy(out, reader)
	return err
}

func get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w (URL: %s)", err, url)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		return nil, fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}

	ui.Debug("HTTP response: %s", resp.Status)
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("download failed (HTTP %s): %s", resp.Status, url)
	}
	return resp, nil
}

func createDest(destPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, err
	}
	return os.Create(destPath)
}

// progressReader wraps an io.Reader and reports progress
type progressReader struct {
	reader   io.Reader
	progress func(current, total int64)
	current  int64
	total    int64
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	pr.current += int64(n)

	if pr.progress != nil {
		pr.progress(pr.current, pr.total)
	}

	return n, err
}
