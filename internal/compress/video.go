package compress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// VideoCompressor re-encodes video files through an external FFmpeg
// binary. The container extension is preserved; only the internal
// codecs change.
type VideoCompressor struct {
	logger *slog.Logger
}

// NewVideoCompressor creates a new video compressor.
func NewVideoCompressor(logger *slog.Logger) *VideoCompressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoCompressor{logger: logger}
}

// Compress re-encodes input with the fixed quality policy and returns
// the size of the output file. ffmpegPath is the binary resolved by the
// provisioning manager. outputDir defaults to a "compressed" directory
// beside the input; it is created if absent. The output file is
// <stem>_compressed.<original extension> and is overwritten without
// prompting if present.
//
// The subprocess is awaited to completion with no internal timeout;
// callers needing bounded latency should cancel ctx.
func (v *VideoCompressor) Compress(ctx context.Context, ffmpegPath, input, outputDir string) (Result, error) {
	if _, err := os.Stat(input); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrNotFound, input)
	}

	outputFile, err := outputPath(input, outputDir, videoOutputExt(input))
	if err != nil {
		return Result{}, err
	}

	// Argument order is part of the contract with the executable.
	args := []string{
		"-i", input,
		"-c:v", videoCodec,
		"-crf", videoCRF,
		"-preset", videoPreset,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
		"-y",
		outputFile,
	}

	v.logger.Debug("running ffmpeg", "path", ffmpegPath, "input", input, "output", outputFile)

	cmd := exec.CommandContext(ctx, ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Result{}, classifyFFmpegFailure(err, stderr.String())
	}

	info, err := os.Stat(outputFile)
	if err != nil {
		return Result{}, fmt.Errorf("stat output file: %w", err)
	}

	return Result{CompressedSize: uint64(info.Size())}, nil
}

// classifyFFmpegFailure separates "the tool is not installed" from "the
// tool ran and rejected the input". A spawn failure means the binary
// vanished between provisioning and invocation, which to the caller is
// the same as not installed.
func classifyFFmpegFailure(err error, stderr string) error {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return ErrToolMissing
	}

	if strings.Contains(stderr, "ffmpeg: not found") || strings.Contains(stderr, "command not found") {
		return ErrToolMissing
	}

	return fmt.Errorf("%w: %s", ErrToolRejected, stderr)
}

// videoOutputExt preserves the input container extension, defaulting to
// mp4 when the input has none.
func videoOutputExt(input string) string {
	ext := strings.TrimPrefix(filepath.Ext(input), ".")
	if ext == "" {
		return "mp4"
	}
	return ext
}

// outputPath resolves the destination file for input, creating the
// output directory if needed.
func outputPath(input, outputDir, outExt string) (string, error) {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(input), outputSubdir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(outputDir, stem+outputSuffix+"."+outExt), nil
}
