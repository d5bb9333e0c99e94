// Package platform selects the archive profile for the running build
// target and detects host details for diagnostics.
//
// Exactly one Profile is active per OS. It describes where the FFmpeg
// archive for this platform lives, what the executable inside it is
// called, and how the archive is packaged.
package platform

import "context"

// ArchiveKind identifies how a platform's FFmpeg archive is packaged.
type ArchiveKind int

const (
	// ArchiveZip is a ZIP archive (Windows and macOS builds).
	ArchiveZip ArchiveKind = iota
	// ArchiveTarXz is an XZ-compressed tar archive (Linux static builds).
	ArchiveTarXz
)

// String returns the string representation of the archive kind.
func (k ArchiveKind) String() string {
	switch k {
	case ArchiveZip:
		return "zip"
	case ArchiveTarXz:
		return "tar.xz"
	default:
		return "unknown"
	}
}

// Profile describes the FFmpeg distribution for one build target.
// It is selected once at startup and immutable afterwards.
type Profile struct {
	// ArchiveURL is the download URL for this platform's FFmpeg build.
	ArchiveURL string
	// ExecutableName is the name of the binary inside the archive
	// ("ffmpeg" or "ffmpeg.exe").
	ExecutableName string
	// ArchiveKind is the packaging format of the archive.
	ArchiveKind ArchiveKind
}

// Info contains host detection information used for diagnostics.
type Info struct {
	OS       string // "linux", "darwin", "windows"
	Arch     string // GOARCH value, e.g. "amd64", "arm64"
	Platform string // distro ID (Linux only, e.g. "ubuntu", "arch")
	Version  string // distro version (Linux only, e.g. "22.04")
}

// Detector detects host platform information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
