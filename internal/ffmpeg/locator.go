package ffmpeg

import (
	"context"
	"os/exec"
)

// Locator checks whether a candidate FFmpeg binary is usable.
type Locator struct{}

// NewLocator creates a new locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Probe reports whether the binary at path is present and functional.
// It runs "path -version" and returns true iff the process starts and
// exits successfully. Spawn failures (missing file, not executable)
// report false rather than an error: this operation only answers
// "is it available", it never fails.
func (l *Locator) Probe(ctx context.Context, path string) bool {
	cmd := exec.CommandContext(ctx, path, "-version")
	return cmd.Run() == nil
}
