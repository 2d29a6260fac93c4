// Package config loads the launcher configuration from
// $XDG_CONFIG_HOME/fling/config.toml. User values overlay the built-in
// defaults; a broken config file logs a warning and falls back to the
// defaults rather than refusing to start.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/flingdev/fling/internal/catalog"
	"github.com/flingdev/fling/internal/tuilog"
)

// Config is the root of the TOML configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Search  SearchConfig  `toml:"search"`
	Apps    AppsConfig    `toml:"apps"`
}

// GeneralConfig holds launcher-wide settings.
type GeneralConfig struct {
	// Terminal is the wrapper command for Terminal=true apps,
	// e.g. "alacritty" or "foot --app-id=launcher".
	Terminal string `toml:"terminal"`
	// MaxResults caps how many matches the picker shows.
	MaxResults int `toml:"max_results"`
}

// SearchConfig tunes the ranking engine.
type SearchConfig struct {
	MinScore     int  `toml:"min_score"`
	PreferPrefix bool `toml:"prefer_prefix"`
}

// AppsConfig controls catalog discovery and filtering.
type AppsConfig struct {
	ExtraDirs []string    `toml:"extra_dirs"`
	Exclude   []string    `toml:"exclude"`
	Favorites []string    `toml:"favorites"`
	Custom    []CustomApp `toml:"custom"`
}

// CustomApp is a user-defined launcher entry. Its exec string is run
// through a shell verbatim (the user wrote it, so it is trusted).
type CustomApp struct {
	Name     string   `toml:"name"`
	Exec     string   `toml:"exec"`
	Icon     string   `toml:"icon"`
	Keywords []string `toml:"keywords"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		General: GeneralConfig{
			Terminal:   "alacritty",
			MaxResults: 8,
		},
		// MinScore is on the fuzzy matcher's own scale; 0 keeps every
		// subsequence match and still rejects non-matches.
		Search: SearchConfig{
			MinScore:     0,
			PreferPrefix: true,
		},
	}
}

// Dir returns the launcher's config directory.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "fling"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fling"), nil
}

// Path returns the path of the main config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path, or the default location when path is
// empty. Missing file: defaults. Malformed file: defaults plus a logged
// warning. Load never fails in a way that stops the launcher.
func Load(path string) Config {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg
		}
		path = p
	}

	// Decoding over the defaults means absent keys keep their default
	// values; present keys, including whole lists, replace them.
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			tuilog.Log.Warn("ignoring malformed config", "path", path, "error", err)
			return Default()
		}
	}
	return cfg
}

// Parse decodes a config document over the defaults. Exposed for tests.
func Parse(document string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(document, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CatalogOptions translates the config into catalog build options.
func (c Config) CatalogOptions() catalog.Options {
	custom := make([]catalog.Custom, len(c.Apps.Custom))
	for i, app := range c.Apps.Custom {
		custom[i] = catalog.Custom{
			Name:     app.Name,
			Exec:     app.Exec,
			Icon:     app.Icon,
			Keywords: app.Keywords,
		}
	}
	return catalog.Options{
		ExtraDirs: c.Apps.ExtraDirs,
		Exclude:   c.Apps.Exclude,
		Favorites: c.Apps.Favorites,
		Custom:    custom,
	}
}
