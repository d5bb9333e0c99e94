package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediapress/internal/compress"
	"mediapress/internal/config"
	"mediapress/internal/ffmpeg"
	"mediapress/internal/fsutil"
	"mediapress/internal/platform"
)

// videoExtensions routes inputs to the out-of-process video pipeline.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".mkv":  true,
	".webm": true,
	".m4v":  true,
	".wmv":  true,
	".flv":  true,
}

func runCompress(args []string) error {
	flags := flag.NewFlagSet("compress", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	outputDir := flags.String("output", "", "output directory (default: compressed/ beside each input)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	inputs := flags.Args()
	if len(inputs) == 0 {
		return fmt.Errorf("no input files given")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	dest := *outputDir
	if dest == "" {
		dest = cfg.OutputDir
	}

	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	videos := compress.NewVideoCompressor(logger)
	images := compress.NewImageCompressor(logger)
	ctx := context.Background()

	for _, input := range inputs {
		originalSize, err := fsutil.FileSize(input)
		if err != nil {
			return err
		}

		var result compress.Result
		if videoExtensions[strings.ToLower(filepath.Ext(input))] {
			ffmpegPath, err := manager.EnsureReady(ctx)
			if err != nil {
				return err
			}
			result, err = videos.Compress(ctx, ffmpegPath, input, dest)
			if err != nil {
				return err
			}
		} else {
			result, err = images.Compress(input, dest)
			if err != nil {
				return err
			}
		}

		fmt.Printf("%s: %d -> %d bytes (%.1f%%)\n",
			filepath.Base(input), originalSize, result.CompressedSize,
			100*float64(result.CompressedSize)/float64(originalSize))
	}

	return nil
}

// newManager builds the provisioning manager from loaded configuration.
func newManager(cfg *config.Config, logger *slog.Logger) (*ffmpeg.Manager, error) {
	profile := platform.DefaultProfile()
	if cfg.ArchiveURL != "" {
		profile.ArchiveURL = cfg.ArchiveURL
	}

	return ffmpeg.NewManager(ffmpeg.Config{
		DataDir: cfg.DataDir,
		Profile: &profile,
		Logger:  logger,
	})
}

// newLogger builds a text slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
