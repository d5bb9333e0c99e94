// Package config loads application settings from an optional YAML file
// and MEDIAPRESS_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the settings for mediapress.
type Config struct {
	// DataDir is the per-application local-data root holding the
	// provisioned FFmpeg binary.
	DataDir string `mapstructure:"data_dir"`
	// OutputDir is the destination for compressed files; empty means
	// "a compressed directory beside each input".
	OutputDir string `mapstructure:"output_dir"`
	// ArchiveURL overrides the platform's FFmpeg archive source.
	ArchiveURL string `mapstructure:"archive_url"`
	LogLevel   string `mapstructure:"log_level"`
}

// Load initializes viper and merges defaults, the config file at path
// (if any), and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("output_dir", "")
	v.SetDefault("archive_url", "")
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		// A missing config file is fine; env vars may carry everything.
		_ = v.ReadInConfig()
	}

	v.SetEnvPrefix("MEDIAPRESS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaultDataDir returns the per-OS local-data root for mediapress.
func defaultDataDir() string {
	var root string
	switch runtime.GOOS {
	case "windows":
		root = os.Getenv("LOCALAPPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, "Library", "Application Support")
		}
	default:
		root = os.Getenv("XDG_DATA_HOME")
		if root == "" {
			if home, err := os.UserHomeDir(); err == nil {
				root = filepath.Join(home, ".local", "share")
			}
		}
	}
	if root == "" {
		root = "."
	}
	return filepath.Join(root, "mediapress")
}
