package fetch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFileWithProgress(t *testing.T) {
	payload := []byte("backend release archive bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "nested", "archive.bin")

	var lastCurrent, lastTotal int64
	err := FileWithProgress(context.Background(), server.URL, dest, func(current, total int64) {
		lastCurrent, lastTotal = current, total
	})
	if err != nil {
		t.Fatalf("FileWithProgress error = %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("downloaded %q, want %q", data, payload)
	}
	if lastCurrent != int64(len(payload)) {
		t.Errorf("final progress current = %d, want %d", lastCurrent, len(payload))
	}
	if lastTotal != int64(len(payload)) {
		t.Errorf("final progress total = %d, want %d", lastTotal, len(payload))
	}
}

func TestFileWithProgressHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.bin")
	err := FileWithProgress(context.Background(), server.URL, dest, nil)
	if err == nil {
		t.Error("expected error on HTTP 404")
	}
}

func TestFileWithProgressCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dest := filepath.Join(t.TempDir(), "archive.bin")
	if err := FileWithProgress(ctx, server.URL, dest, nil); err == nil {
		t.Error("expected error on canceled context")
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZip(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "release.zip")
	writeZip(t, zipPath, map[string]string{
		"fnm/fnm":       "binary",
		"fnm/README.md": "docs",
	})

	destDir := filepath.Join(tmpDir, "out")
	if err := ExtractZip(zipPath, destDir); err != nil {
		t.Fatalf("ExtractZip error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "fnm", "fnm"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if string(data) != "binary" {
		t.Errorf("content = %q, want %q", data, "binary")
	}
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "evil.zip")
	writeZip(t, zipPath, map[string]string{
		"../escape.txt": "evil",
	})

	destDir := filepath.Join(tmpDir, "out")
	if err := ExtractZip(zipPath, destDir); err == nil {
		t.Error("expected error for path traversal entry")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "escape.txt")); err == nil {
		t.Error("traversal entry was written outside destination")
	}
}

func TestExtractTarGz(t *testing.T) {
	tmpDir := t.TempDir()
	tarPath := filepath.Join(tmpDir, "release.tar.gz")

	f, err := os.Create(tarPath)
	if err != nil {
		t.Fatal(err)
	}
	gzw := gzip.NewWriter(f)
	tw := tar.NewWriter(gzw)
	content := []byte("#!/bin/sh\n")
	if err := tw.WriteHeader(&tar.Header{
		Name:     "nvm-0.40.1/nvm.sh",
		Mode:     0755,
		Size:     int64(len(content)),
		Typeflag: tar.TypeReg,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gzw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	destDir := filepath.Join(tmpDir, "out")
	if err := ExtractTarGz(tarPath, destDir); err != nil {
		t.Fatalf("ExtractTarGz error = %v", err)
	}

	info, err := os.Stat(filepath.Join(destDir, "nvm-0.40.1", "nvm.sh"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if info.Mode().Perm()&0100 == 0 {
		t.Error("executable bit not preserved")
	}
}

func TestExtractDispatchUnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "release.rar")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Extract(path, filepath.Join(tmpDir, "out")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestStripTopLevelDir(t *testing.T) {
	tmpDir := t.TempDir()
	extractDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(filepath.Join(extractDir, "node-v18.16.0", "bin"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(extractDir, "node-v18.16.0", "bin", "node"), []byte("x"), 0755); err != nil {
		t.Fatal(err)
	}

	if err := StripTopLevelDir(extractDir); err != nil {
		t.Fatalf("StripTopLevelDir error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(extractDir, "bin", "node")); err != nil {
		t.Errorf("stripped layout missing: %v", err)
	}
}

func TestStripTopLevelDirMultipleEntries(t *testing.T) {
	tmpDir := t.TempDir()
	extractDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(extractDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(extractDir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := StripTopLevelDir(extractDir); err != nil {
		t.Fatalf("StripTopLevelDir error = %v", err)
	}

	// Nothing to strip, layout untouched
	if _, err := os.Stat(filepath.Join(extractDir, "a.txt")); err != nil {
		t.Errorf("layout changed unexpectedly: %v", err)
	}
}

func TestComputeSHA256(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	content := []byte("hello world\n")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	// SHA256 of "hello world\n" (with newline)
	expectedHash := "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447"

	hash, err := ComputeSHA256(testFile)
	if err != nil {
		t.Fatalf("ComputeSHA256 failed: %v", err)
	}

	if hash != expectedHash {
		t.Errorf("hash = %q, want %q", hash, expectedHash)
	}
}

func TestVerifyFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	content := []byte("hello world\n")
	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatal(err)
	}

	expectedHash := "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447"

	t.Run("valid checksum", func(t *testing.T) {
		if err := VerifyFile(testFile, expectedHash); err != nil {
			t.Errorf("VerifyFile failed: %v", err)
		}
	})

	t.Run("valid checksum uppercase", func(t *testing.T) {
		if err := VerifyFile(testFile, "A948904F2F0F479B8F8197694B30184B0D2ED1C1CD2A1EC0FB85D299A192A447"); err != nil {
			t.Errorf("VerifyFile should accept uppercase: %v", err)
		}
	})

	t.Run("invalid checksum", func(t *testing.T) {
		err := VerifyFile(testFile, "0000000000000000000000000000000000000000000000000000000000000000")
		var mismatchErr *ErrChecksumMismatch
		if !errors.As(err, &mismatchErr) {
			t.Fatalf("expected ErrChecksumMismatch, got %T: %v", err, err)
		}
		if mismatchErr.Actual != expectedHash {
			t.Errorf("Actual = %q, want %q", mismatchErr.Actual, expectedHash)
		}
	})
}

func TestFileVerifiedMismatchRemovesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "archive.bin")
	err := FileVerified(context.Background(), server.URL, dest,
		"0000000000000000000000000000000000000000000000000000000000000000")

	var mismatchErr *ErrChecksumMismatch
	if !errors.As(err, &mismatchErr) {
		t.Fatalf("expected ErrChecksumMismatch, got %T: %v", err, err)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("mismatched download was not removed")
	}
}
