package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// isolate points every config source at a fresh temp tree so tests never see
// the developer's real config.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("WALLPAPER_DIR", "")
	t.Setenv("WALLPAPER_HISTORY_LOG", "")
	t.Setenv("WALLPAPER_CACHE_DB", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Library.Dir != filepath.Join(home, "Pictures", "wallpapers") {
		t.Errorf("library dir = %q", cfg.Library.Dir)
	}
	if cfg.History.Size != 25 {
		t.Errorf("history size = %d, want 25", cfg.History.Size)
	}
	if cfg.Select.Window != 1 {
		t.Errorf("select window = %d, want 1", cfg.Select.Window)
	}
	if cfg.Viewer.PanelHeight != 12 {
		t.Errorf("panel height = %d, want 12", cfg.Viewer.PanelHeight)
	}
	if len(cfg.Setter.Command) == 0 {
		t.Error("setter command default missing")
	}
	if filepath.Base(cfg.Cache.Path) != "wallpaper_exif_cache.db" {
		t.Errorf("cache path = %q", cfg.Cache.Path)
	}
}

func TestLoadConfigFile(t *testing.T) {
	home := isolate(t)

	confDir := filepath.Join(home, ".config", "wallshift")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	yaml := `
library:
  dir: /photos
history:
  size: 10
select:
  window: 2
setter:
  command: ["swww", "img", "{}"]
`
	if err := os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Library.Dir != "/photos" {
		t.Errorf("library dir = %q, want /photos", cfg.Library.Dir)
	}
	if cfg.History.Size != 10 {
		t.Errorf("history size = %d, want 10", cfg.History.Size)
	}
	if cfg.Select.Window != 2 {
		t.Errorf("select window = %d, want 2", cfg.Select.Window)
	}
	if len(cfg.Setter.Command) != 3 || cfg.Setter.Command[0] != "swww" {
		t.Errorf("setter command = %v", cfg.Setter.Command)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WALLPAPER_DIR", "/mnt/walls")
	t.Setenv("WALLPAPER_HISTORY_LOG", "/tmp/hist.log")
	t.Setenv("WALLPAPER_CACHE_DB", "/tmp/cache.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Library.Dir != "/mnt/walls" {
		t.Errorf("library dir = %q", cfg.Library.Dir)
	}
	if cfg.History.Path != "/tmp/hist.log" {
		t.Errorf("history path = %q", cfg.History.Path)
	}
	if cfg.Cache.Path != "/tmp/cache.db" {
		t.Errorf("cache path = %q", cfg.Cache.Path)
	}
}

func TestExpandHome(t *testing.T) {
	home := isolate(t)
	if got := expandHome("~/pics"); got != filepath.Join(home, "pics") {
		t.Errorf("expandHome(~/pics) = %q", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("expandHome(/abs/path) = %q", got)
	}
}

func TestLoadClampsInvalidValues(t *testing.T) {
	home := isolate(t)

	confDir := filepath.Join(home, ".config", "wallshift")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	yaml := `
history:
  size: -5
viewer:
  panel_height: 0
`
	if err := os.WriteFile(filepath.Join(confDir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.History.Size != 25 {
		t.Errorf("history size = %d, want clamped default 25", cfg.History.Size)
	}
	if cfg.Viewer.PanelHeight != 12 {
		t.Errorf("panel height = %d, want clamped default 12", cfg.Viewer.PanelHeight)
	}
}
