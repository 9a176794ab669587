package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all resolved settings for a single invocation. Values come
// from the YAML config file, overridden by environment variables, overridden
// by command-line flags (applied by the caller).
type Config struct {
	Library LibraryConfig `mapstructure:"library"`
	History HistoryConfig `mapstructure:"history"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Select  SelectConfig  `mapstructure:"select"`
	Setter  SetterConfig  `mapstructure:"setter"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
}

// LibraryConfig locates the wallpaper photo library
type LibraryConfig struct {
	Dir string `mapstructure:"dir"` // root directory scanned for jpegs
}

// HistoryConfig configures the shown-wallpaper log
type HistoryConfig struct {
	Path string `mapstructure:"path"` // newline-delimited basename log
	Size int    `mapstructure:"size"` // recent-window size for exclusion
}

// CacheConfig configures the EXIF hour cache
type CacheConfig struct {
	Path string `mapstructure:"path"` // sqlite database location
}

// SelectConfig tunes wallpaper selection
type SelectConfig struct {
	Window int `mapstructure:"window"` // hour distance counted as "now" (default 1)
}

// SetterConfig describes the external commands that apply a wallpaper.
// Command is run with the selected path substituted for "{}" (appended when
// no placeholder is present); Post commands run afterwards to resync theming.
type SetterConfig struct {
	Command []string   `mapstructure:"command"`
	Post    [][]string `mapstructure:"post"`
}

// ViewerConfig tunes the interactive viewer
type ViewerConfig struct {
	PanelHeight int `mapstructure:"panel_height"` // info panel rows at the bottom
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	cacheDir := defaultCacheDir()

	viper.SetDefault("library.dir", filepath.Join(os.Getenv("HOME"), "Pictures", "wallpapers"))
	viper.SetDefault("history.path", filepath.Join(cacheDir, "wallpaper_history.log"))
	viper.SetDefault("history.size", 25)
	viper.SetDefault("cache.path", filepath.Join(cacheDir, "wallpaper_exif_cache.db"))
	viper.SetDefault("select.window", 1)
	viper.SetDefault("setter.command", []string{"hyprctl", "hyprpaper", "reload", ",{}"})
	viper.SetDefault("viewer.panel_height", 12)

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment overrides, kept for cron/timer units that predate the
	// config file.
	if dir := os.Getenv("WALLPAPER_DIR"); dir != "" {
		cfg.Library.Dir = dir
	}
	if p := os.Getenv("WALLPAPER_HISTORY_LOG"); p != "" {
		cfg.History.Path = p
	}
	if p := os.Getenv("WALLPAPER_CACHE_DB"); p != "" {
		cfg.Cache.Path = p
	}

	cfg.Library.Dir = expandHome(cfg.Library.Dir)
	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Cache.Path = expandHome(cfg.Cache.Path)

	if cfg.History.Size <= 0 {
		cfg.History.Size = 25
	}
	if cfg.Select.Window < 0 {
		cfg.Select.Window = 1
	}
	if cfg.Viewer.PanelHeight <= 0 {
		cfg.Viewer.PanelHeight = 12
	}

	return &cfg, nil
}

func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "wallshift"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "wallshift"), nil
}

func defaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return xdg
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".cache")
}

// expandHome resolves a leading ~/ against the current user's home directory
func expandHome(s string) string {
	if s == "~" || strings.HasPrefix(s, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return s
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(s, "~"), "/"))
	}
	return s
}
