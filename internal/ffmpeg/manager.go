package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shirou/gopsutil/v4/disk"

	"mediapress/internal/platform"
)

const (
	// stagingFileName is the transient archive-in-progress file.
	stagingFileName = "ffmpeg_temp.download"
	// minFreeBytes is the free space required in the data directory
	// before a download is attempted. The archive plus the unpacked
	// binary comfortably fit in this.
	minFreeBytes = 512 << 20
)

// Manager orchestrates FFmpeg provisioning: probe, download, extract,
// re-probe. It is safe for concurrent use; simultaneous first-run calls
// share a single download instead of racing over the destination file.
type Manager struct {
	installDir  string
	installPath string
	profile     platform.Profile
	locator     *Locator
	fetcher     *Fetcher
	extractor   *Extractor
	logger      *slog.Logger

	// provisionMu serializes download+extract so concurrent first-run
	// requests wait for the in-flight provisioning instead of
	// duplicating it.
	provisionMu sync.Mutex
}

// Config holds configuration for the provisioning manager.
type Config struct {
	// DataDir is the per-application local-data root. The executable is
	// installed under <DataDir>/ffmpeg. Required, and injected rather
	// than read from ambient process state so tests can point it at a
	// temporary directory.
	DataDir string
	// Profile is the archive profile for this build target. Defaults to
	// platform.DefaultProfile().
	Profile *platform.Profile
	// Logger receives provisioning progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewManager creates a new provisioning manager.
func NewManager(config Config) (*Manager, error) {
	if config.DataDir == "" {
		return nil, fmt.Errorf("DataDir is required")
	}

	profile := platform.DefaultProfile()
	if config.Profile != nil {
		profile = *config.Profile
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	installDir := filepath.Join(config.DataDir, "ffmpeg")

	return &Manager{
		installDir:  installDir,
		installPath: filepath.Join(installDir, profile.ExecutableName),
		profile:     profile,
		locator:     NewLocator(),
		fetcher:     NewFetcher(),
		extractor:   NewExtractor(),
		logger:      logger,
	}, nil
}

// InstallPath returns the managed install path. The path is
// deterministic for a given platform; the binary may or may not be
// present there.
func (m *Manager) InstallPath() string {
	return m.installPath
}

// Available reports whether a usable FFmpeg binary exists, either at
// the managed install path or on the host's search path. The result is
// derived fresh on every call; nothing is cached.
func (m *Manager) Available(ctx context.Context) bool {
	return m.locator.Probe(ctx, m.installPath) || m.locator.Probe(ctx, m.profile.ExecutableName)
}

// EnsureReady returns the path of a usable FFmpeg binary, provisioning
// one if neither the managed install nor the system binary responds to
// a liveness probe.
func (m *Manager) EnsureReady(ctx context.Context) (string, error) {
	if m.locator.Probe(ctx, m.installPath) {
		return m.installPath, nil
	}

	if m.locator.Probe(ctx, m.profile.ExecutableName) {
		m.logger.Debug("using system ffmpeg", "name", m.profile.ExecutableName)
		return m.profile.ExecutableName, nil
	}

	m.provisionMu.Lock()
	defer m.provisionMu.Unlock()

	// A concurrent call may have finished provisioning while we waited.
	if m.locator.Probe(ctx, m.installPath) {
		return m.installPath, nil
	}

	if err := m.provision(ctx); err != nil {
		return "", err
	}

	if !m.locator.Probe(ctx, m.installPath) {
		return "", ErrIncomplete
	}

	m.logger.Info("ffmpeg installed", "path", m.installPath)
	return m.installPath, nil
}

// provision downloads the platform archive into the staging file and
// extracts the executable to the install path. The staging file is
// removed afterwards regardless of outcome.
func (m *Manager) provision(ctx context.Context) error {
	if err := os.MkdirAll(m.installDir, 0755); err != nil {
		return fmt.Errorf("create ffmpeg directory: %w", err)
	}

	if err := m.checkFreeSpace(ctx); err != nil {
		return err
	}

	m.logger.Info("downloading ffmpeg",
		"url", m.profile.ArchiveURL,
		"kind", m.profile.ArchiveKind.String())

	archive, err := m.fetcher.Fetch(ctx, m.profile.ArchiveURL)
	if err != nil {
		return err
	}

	stagingPath := filepath.Join(m.installDir, stagingFileName)
	if err := os.WriteFile(stagingPath, archive, 0644); err != nil {
		return fmt.Errorf("write staging file: %w", err)
	}
	defer os.Remove(stagingPath)

	return m.extractor.Extract(stagingPath, m.installPath, m.profile, m.installDir)
}

// checkFreeSpace refuses to start a download into a nearly full disk.
// Failures of the usage query itself are ignored; the check is an early
// warning, not a gate the platform must support.
func (m *Manager) checkFreeSpace(ctx context.Context) error {
	usage, err := disk.UsageWithContext(ctx, m.installDir)
	if err != nil {
		return nil
	}

	if usage.Free < minFreeBytes {
		return fmt.Errorf("not enough free space in %s: %d bytes available, %d required",
			m.installDir, usage.Free, uint64(minFreeBytes))
	}

	return nil
}
