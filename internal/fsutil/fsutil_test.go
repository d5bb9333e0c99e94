package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.bin")
	content := []byte("twelve bytes")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	size, err := FileSize(path)
	if err != nil {
		t.Fatalf("FileSize failed: %v", err)
	}
	if size != uint64(len(content)) {
		t.Errorf("size mismatch: got %d, want %d", size, len(content))
	}
}

func TestFileSizeMissing(t *testing.T) {
	if _, err := FileSize(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCreateDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := CreateDir(path); err != nil {
		t.Fatalf("CreateDir failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("created path is not a directory")
	}

	// Idempotent on an existing directory.
	if err := CreateDir(path); err != nil {
		t.Errorf("CreateDir on existing directory failed: %v", err)
	}
}

func TestDefaultOutputPath(t *testing.T) {
	path := DefaultOutputPath()

	if !strings.HasSuffix(path, filepath.Join("Downloads", "compressed")) {
		t.Errorf("unexpected default output path: %s", path)
	}
}
