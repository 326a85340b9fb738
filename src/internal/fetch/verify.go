package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// ErrChecksumMismatch is returned when a downloaded file's checksum
// doesn't match.
type ErrChecksumMismatch struct {
	Expected string
	Actual   string
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("checksum mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// FileVerified downloads a URL and verifies its SHA256 checksum. On
// mismatch the file is deleted and ErrChecksumMismatch returned.
func FileVerified(ctx context.Context, url, destPath, expectedSHA256 string) error {
	ui.Debug("Starting verified download: %s", url)
	ui.Debug("Expected SHA256: %s", expectedSHA256)

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

	hasher := sha256.New()

	_, err = io.Copy(io.MultiWriter(out, bar, hasher), resp.Body)
	if err != nil {
		_ = os.Remove(destPath) // Clean up partial download
		return err
	}

	fmt.Println() // New line after progress bar

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !checksumEqual(expectedSHA256, actual) {
		ui.Debug("Checksum mismatch, removing %s", destPath)
		_ = os.Remove(destPath)
		return &ErrChecksumMismatch{
			Expected: expectedSHA256,
			Actual:   actual,
		}
	}

	ui.Debug("Checksum verified")
	return nil
}

// VerifyFile checks if an existing file matches the expected SHA256
// checksum.
func VerifyFile(filePath, expectedSHA256 string) error {
	actual, err := ComputeSHA256(filePath)
	if err != nil {
		return err
	}

	if !checksumEqual(expectedSHA256, actual) {
		return &ErrChecksumMismatch{
			Expected: expectedSHA256,
			Actual:   actual,
		}
	}

	return nil
}

// ComputeSHA256 computes the SHA256 checksum of a file.
func ComputeSHA256(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func checksumEqual(expected, actual string) bool {
	return strings.ToLower(strings.TrimSpace(expected)) == strings.ToLower(actual)
}
