// Package fsutil provides the filesystem convenience operations exposed
// to the shell: size reads, directory creation, and revealing a path in
// the OS file browser.
package fsutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// FileSize returns the byte size of the file at path.
func FileSize(path string) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return uint64(info.Size()), nil
}

// CreateDir creates the directory at path along with any missing parents.
func CreateDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// DefaultOutputPath returns the default destination for compressed
// files: a "compressed" directory under the user's Downloads folder.
func DefaultOutputPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Downloads", "compressed")
}

// Reveal opens path in the OS file browser. The viewer process is
// spawned and not awaited; spawn failure is the only reported error.
func Reveal(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open file browser: %w", err)
	}

	// Detach: the viewer's lifetime is not ours to manage.
	go func() { _ = cmd.Wait() }()

	return nil
}
