package ffmpeg

import "errors"

// Static errors for provisioning operations.
var (
	// ErrNetwork is returned when the archive download fails.
	ErrNetwork = errors.New("ffmpeg download failed")
	// ErrExtraction is returned when the archive cannot be unpacked.
	ErrExtraction = errors.New("ffmpeg archive extraction failed")
	// ErrIncomplete is returned when download and extraction ran but
	// the installed binary still fails its liveness probe.
	ErrIncomplete = errors.New("failed to download and install FFmpeg")
)
