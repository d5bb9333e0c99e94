package ffmpeg

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"mediapress/internal/platform"
)

// Extractor pulls the FFmpeg executable out of a downloaded archive.
//
// Both variants scan entries in archive order and stop at the first
// entry whose name ends with the executable name; duplicate matches are
// never an error. If no entry matches, extraction succeeds without
// writing a file — the provisioning re-probe surfaces that as a
// failure, matching the behavior callers already depend on.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract unpacks the executable from archivePath to destPath using the
// extraction variant matching the profile. workDir holds the transient
// intermediate tar for xz archives.
func (e *Extractor) Extract(archivePath, destPath string, profile platform.Profile, workDir string) error {
	var err error
	switch profile.ArchiveKind {
	case platform.ArchiveZip:
		err = e.extractZip(archivePath, destPath, profile.ExecutableName)
	case platform.ArchiveTarXz:
		err = e.extractTarXz(archivePath, destPath, profile.ExecutableName, workDir)
	default:
		return fmt.Errorf("%w: unknown archive kind %s", ErrExtraction, profile.ArchiveKind)
	}
	if err != nil {
		return err
	}

	// Archives do not reliably carry the execute bit across transfer.
	if runtime.GOOS != "windows" {
		if _, statErr := os.Stat(destPath); statErr == nil {
			if err := os.Chmod(destPath, 0755); err != nil {
				return fmt.Errorf("set executable: %w", err)
			}
		}
	}

	return nil
}

// extractZip streams the first matching entry of a zip archive to destPath.
func (e *Extractor) extractZip(archivePath, destPath, exeName string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("%w: open archive: %v", ErrExtraction, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if !strings.HasSuffix(entry.Name, exeName) && !strings.HasSuffix(entry.Name, "ffmpeg") {
			continue
		}

		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("%w: open entry %s: %v", ErrExtraction, entry.Name, err)
		}

		err = writeFile(destPath, src)
		src.Close()
		if err != nil {
			return fmt.Errorf("%w: extract %s: %v", ErrExtraction, entry.Name, err)
		}

		// First match wins.
		break
	}

	return nil
}

// extractTarXz decompresses an xz archive via the external xz tool,
// then scans the resulting tar for the executable. There is no
// in-process xz decoder, so decompression is delegated to "xz -d -c"
// and its output buffered into an intermediate tar file.
func (e *Extractor) extractTarXz(archivePath, destPath, exeName, workDir string) error {
	cmd := exec.Command("xz", "-d", "-c", archivePath)
	tarBytes, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("%w: decompress xz: %v", ErrExtraction, err)
	}

	tarPath := filepath.Join(workDir, "ffmpeg.tar")
	if err := os.WriteFile(tarPath, tarBytes, 0644); err != nil {
		return fmt.Errorf("%w: write tar file: %v", ErrExtraction, err)
	}
	defer os.Remove(tarPath)

	tarFile, err := os.Open(tarPath)
	if err != nil {
		return fmt.Errorf("%w: open tar file: %v", ErrExtraction, err)
	}
	defer tarFile.Close()

	tarReader := tar.NewReader(tarFile)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read tar header: %v", ErrExtraction, err)
		}

		if header.Typeflag != tar.TypeReg || !strings.HasSuffix(header.Name, exeName) {
			continue
		}

		if err := writeFile(destPath, tarReader); err != nil {
			return fmt.Errorf("%w: extract %s: %v", ErrExtraction, header.Name, err)
		}

		// First match wins.
		return nil
	}
}

// writeFile copies src to path, overwriting any previous file.
func writeFile(path string, src io.Reader) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
