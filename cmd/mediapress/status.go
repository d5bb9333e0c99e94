package main

import (
	"context"
	"flag"
	"fmt"

	"mediapress/internal/config"
	"mediapress/internal/fsutil"
	"mediapress/internal/platform"
)

func runStatus(args []string) error {
	flags := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	fmt.Printf("platform:      %s/%s", info.OS, info.Arch)
	if info.Platform != "" {
		fmt.Printf(" (%s %s)", info.Platform, info.Version)
	}
	fmt.Println()

	fmt.Printf("install path:  %s\n", manager.InstallPath())
	if manager.Available(ctx) {
		fmt.Println("ffmpeg:        available")
	} else {
		fmt.Println("ffmpeg:        not available (run: mediapress setup)")
	}

	return nil
}

func runSetup(args []string) error {
	flags := flag.NewFlagSet("setup", flag.ExitOnError)
	configPath := flags.String("config", "", "path to config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	manager, err := newManager(cfg, logger)
	if err != nil {
		return err
	}

	path, err := manager.EnsureReady(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("ffmpeg ready at %s\n", path)
	return nil
}

func runOpen(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mediapress open <path>")
	}
	return fsutil.Reveal(args[0])
}

func runSize(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: mediapress size <path>")
	}

	size, err := fsutil.FileSize(args[0])
	if err != nil {
		return err
	}

	fmt.Println(size)
	return nil
}
