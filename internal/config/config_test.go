package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.General.Terminal != "alacritty" {
		t.Errorf("Terminal = %q", cfg.General.Terminal)
	}
	if cfg.General.MaxResults != 8 {
		t.Errorf("MaxResults = %d", cfg.General.MaxResults)
	}
	if cfg.Search.MinScore != 0 || !cfg.Search.PreferPrefix {
		t.Errorf("Search = %+v", cfg.Search)
	}
}

func TestParseOverridesAndKeepsDefaults(t *testing.T) {
	cfg, err := Parse(`
[general]
terminal = "kitty"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.General.Terminal != "kitty" {
		t.Errorf("Terminal = %q, want kitty", cfg.General.Terminal)
	}
	// Keys absent from the document keep their defaults.
	if cfg.General.MaxResults != 8 {
		t.Errorf("MaxResults = %d, want default 8", cfg.General.MaxResults)
	}
	if !cfg.Search.PreferPrefix {
		t.Error("PreferPrefix should keep its default")
	}
}

func TestParseAppsSection(t *testing.T) {
	cfg, err := Parse(`
[apps]
extra_dirs = ["/opt/apps"]
exclude = ["Htop"]
favorites = ["Firefox", "Alacritty"]

[[apps.custom]]
name = "My Script"
exec = "/home/user/scripts/my-script.sh"
icon = "utilities-terminal"
keywords = ["script", "custom"]
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !reflect.DeepEqual(cfg.Apps.Favorites, []string{"Firefox", "Alacritty"}) {
		t.Errorf("Favorites = %v", cfg.Apps.Favorites)
	}
	if len(cfg.Apps.Custom) != 1 {
		t.Fatalf("Custom = %v", cfg.Apps.Custom)
	}
	custom := cfg.Apps.Custom[0]
	if custom.Name != "My Script" || custom.Exec != "/home/user/scripts/my-script.sh" {
		t.Errorf("custom = %+v", custom)
	}
	if custom.Icon != "utilities-terminal" {
		t.Errorf("icon = %q", custom.Icon)
	}
	if !reflect.DeepEqual(custom.Keywords, []string{"script", "custom"}) {
		t.Errorf("keywords = %v", custom.Keywords)
	}
}

func TestParseRejectsBadDocument(t *testing.T) {
	if _, err := Parse("[general\nterminal = 3"); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Parse("[general]\nmax_results = \"eight\""); err == nil {
		t.Error("expected type error")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if cfg.General.Terminal != "alacritty" {
		t.Errorf("Terminal = %q, want default", cfg.General.Terminal)
	}
}

func TestLoadMalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if cfg.General.MaxResults != 8 {
		t.Errorf("MaxResults = %d, want default", cfg.General.MaxResults)
	}
}

func TestLoadUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	doc := "[general]\nterminal = \"wezterm\"\nmax_results = 12\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Load(path)
	if cfg.General.Terminal != "wezterm" || cfg.General.MaxResults != 12 {
		t.Errorf("General = %+v", cfg.General)
	}
}

func TestCatalogOptions(t *testing.T) {
	cfg, err := Parse(`
[apps]
exclude = ["Htop"]
favorites = ["Zed"]

[[apps.custom]]
name = "Backup"
exec = "restic backup ~"
`)
	if err != nil {
		t.Fatal(err)
	}

	opts := cfg.CatalogOptions()
	if !reflect.DeepEqual(opts.Exclude, []string{"Htop"}) {
		t.Errorf("Exclude = %v", opts.Exclude)
	}
	if !reflect.DeepEqual(opts.Favorites, []string{"Zed"}) {
		t.Errorf("Favorites = %v", opts.Favorites)
	}
	if len(opts.Custom) != 1 || opts.Custom[0].Exec != "restic backup ~" {
		t.Errorf("Custom = %v", opts.Custom)
	}
}
