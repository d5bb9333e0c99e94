package ffmpeg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"mediapress/internal/platform"
)

// stubExeName is deliberately obscure so the search-path probe never
// finds a real binary on the machine running the tests.
const stubExeName = "mediapress-stub-ffmpeg"

// liveStubScript is a stand-in executable that passes the liveness probe.
const liveStubScript = "#!/bin/sh\nexit 0\n"

// newArchiveServer serves the given zip entries over HTTP and counts hits.
func newArchiveServer(t *testing.T, entries []zipEntry, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	archiveBytes, err := os.ReadFile(createTestZip(t, entries))
	if err != nil {
		t.Fatalf("failed to read fixture archive: %v", err)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		_, _ = w.Write(archiveBytes)
	}))
}

func newTestManager(t *testing.T, dataDir, archiveURL string) *Manager {
	t.Helper()

	manager, err := NewManager(Config{
		DataDir: dataDir,
		Profile: &platform.Profile{
			ArchiveURL:     archiveURL,
			ExecutableName: stubExeName,
			ArchiveKind:    platform.ArchiveZip,
		},
	})
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return manager
}

func TestNewManagerRequiresDataDir(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Error("expected error for missing DataDir")
	}
}

func TestInstallPathIsDeterministic(t *testing.T) {
	dataDir := t.TempDir()

	a := newTestManager(t, dataDir, "http://unused.invalid")
	b := newTestManager(t, dataDir, "http://unused.invalid")

	want := filepath.Join(dataDir, "ffmpeg", stubExeName)
	if a.InstallPath() != want {
		t.Errorf("install path mismatch: got %s, want %s", a.InstallPath(), want)
	}
	if a.InstallPath() != b.InstallPath() {
		t.Error("install path differs between managers with the same data dir")
	}
}

func TestEnsureReadyProvisions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	var hits atomic.Int64
	server := newArchiveServer(t, []zipEntry{
		{"release/doc.txt", "docs"},
		{"release/bin/" + stubExeName, liveStubScript},
	}, &hits)
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)
	ctx := context.Background()

	if manager.Available(ctx) {
		t.Fatal("binary should not be available before provisioning")
	}

	path, err := manager.EnsureReady(ctx)
	if err != nil {
		t.Fatalf("EnsureReady failed: %v", err)
	}
	if path != manager.InstallPath() {
		t.Errorf("path mismatch: got %s, want %s", path, manager.InstallPath())
	}
	if !manager.Available(ctx) {
		t.Error("binary should be available after provisioning")
	}

	// Staging archive is transient.
	staging := filepath.Join(filepath.Dir(manager.InstallPath()), stagingFileName)
	if _, err := os.Stat(staging); !os.IsNotExist(err) {
		t.Error("staging archive was not cleaned up")
	}

	if hits.Load() != 1 {
		t.Errorf("expected exactly 1 download, got %d", hits.Load())
	}
}

func TestEnsureReadyIdempotentWhenInstalled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	var hits atomic.Int64
	server := newArchiveServer(t, []zipEntry{
		{"release/bin/" + stubExeName, liveStubScript},
	}, &hits)
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)
	ctx := context.Background()

	first, err := manager.EnsureReady(ctx)
	if err != nil {
		t.Fatalf("first EnsureReady failed: %v", err)
	}

	second, err := manager.EnsureReady(ctx)
	if err != nil {
		t.Fatalf("second EnsureReady failed: %v", err)
	}

	if first != second {
		t.Errorf("ready path changed between calls: %s then %s", first, second)
	}
	if hits.Load() != 1 {
		t.Errorf("already-ready state should not re-download: got %d downloads", hits.Load())
	}
}

func TestEnsureReadyNoMatchingEntryFailsOnRecheck(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	// The archive downloads and extracts "successfully", but contains no
	// executable. The readiness re-check is what reports the failure.
	server := newArchiveServer(t, []zipEntry{
		{"README.txt", "no binary in here"},
	}, nil)
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)

	_, err := manager.EnsureReady(context.Background())
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}

	if _, err := os.Stat(manager.InstallPath()); !os.IsNotExist(err) {
		t.Error("no file should exist at the install path")
	}
}

func TestEnsureReadyNetworkFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)

	if _, err := manager.EnsureReady(context.Background()); !errors.Is(err, ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestEnsureReadyCorruptArchive(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a zip archive"))
	}))
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)
	dataDir := filepath.Dir(manager.InstallPath())

	if _, err := manager.EnsureReady(context.Background()); !errors.Is(err, ErrExtraction) {
		t.Errorf("expected ErrExtraction, got %v", err)
	}

	// Cleanup of the staging archive is attempted on the failure path too.
	if _, err := os.Stat(filepath.Join(dataDir, stagingFileName)); !os.IsNotExist(err) {
		t.Error("staging archive was not cleaned up after failed extraction")
	}
}

func TestEnsureReadyUsesPreinstalledBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	dataDir := t.TempDir()
	installDir := filepath.Join(dataDir, "ffmpeg")
	if err := os.MkdirAll(installDir, 0755); err != nil {
		t.Fatalf("failed to create install dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(installDir, stubExeName), []byte(liveStubScript), 0755); err != nil {
		t.Fatalf("failed to seed installed binary: %v", err)
	}

	// A dead URL: provisioning must not be reached.
	manager := newTestManager(t, dataDir, "http://127.0.0.1:0")

	path, err := manager.EnsureReady(context.Background())
	if err != nil {
		t.Fatalf("EnsureReady failed: %v", err)
	}
	if path != manager.InstallPath() {
		t.Errorf("expected the preinstalled path, got %s", path)
	}
}

func TestEnsureReadyConcurrentFirstRunDownloadsOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub binaries require a POSIX shell")
	}

	var hits atomic.Int64
	server := newArchiveServer(t, []zipEntry{
		{"bin/" + stubExeName, liveStubScript},
	}, &hits)
	defer server.Close()

	manager := newTestManager(t, t.TempDir(), server.URL)

	const callers = 4
	var wg sync.WaitGroup
	errs := make([]error, callers)
	paths := make([]string, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			paths[i], errs[i] = manager.EnsureReady(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if paths[i] != manager.InstallPath() {
			t.Errorf("caller %d got path %s, want %s", i, paths[i], manager.InstallPath())
		}
	}

	if hits.Load() != 1 {
		t.Errorf("concurrent first runs should share one download, got %d", hits.Load())
	}
}
