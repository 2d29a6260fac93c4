package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/flingdev/fling/internal/desktop"
	"github.com/flingdev/fling/internal/tuilog"
)

// Options configures a catalog build.
type Options struct {
	// SearchDirs overrides the default XDG application directories.
	// Leave nil for the standard set.
	SearchDirs []string
	// ExtraDirs are scanned after the search directories, in order.
	ExtraDirs []string
	// Exclude drops discovered entries by exact display name. Two
	// descriptors sharing a display name are indistinguishable here;
	// that is a documented limitation, not a bug.
	Exclude []string
	// Favorites are sorted before all other entries, by display name.
	Favorites []string
	// Custom apps are appended after discovery, unconditionally; they
	// are not subject to Exclude.
	Custom []Custom
}

// DefaultSearchDirs returns the standard application descriptor
// directories: the per-user XDG dir, the system dirs, and the flatpak
// export dirs.
func DefaultSearchDirs() []string {
	var dirs []string
	if data := userDataDir(); data != "" {
		dirs = append(dirs, filepath.Join(data, "applications"))
	}
	dirs = append(dirs,
		"/usr/share/applications",
		"/usr/local/share/applications",
	)
	if data := userDataDir(); data != "" {
		dirs = append(dirs, filepath.Join(data, "flatpak", "exports", "share", "applications"))
	}
	dirs = append(dirs, "/var/lib/flatpak/exports/share/applications")
	return dirs
}

// userDataDir resolves $XDG_DATA_HOME with the ~/.local/share fallback.
func userDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share")
}

// Build discovers, normalizes, filters and sorts the application catalog.
// Missing or unreadable directories are skipped; descriptors the
// normalizer rejects are dropped. Build never fails.
func Build(opts Options) []App {
	searchDirs := opts.SearchDirs
	if searchDirs == nil {
		searchDirs = DefaultSearchDirs()
	}
	dirs := append(append([]string{}, searchDirs...), opts.ExtraDirs...)

	// Scan directories concurrently, but keep results bucketed per
	// directory so the pre-sort order stays deterministic.
	perDir := make([][]App, len(dirs))
	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			perDir[i] = scanDir(dir)
			return nil
		})
	}
	g.Wait() // workers never return errors

	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = true
	}

	var apps []App
	for _, batch := range perDir {
		for _, app := range batch {
			if exclude[app.Name] {
				continue
			}
			apps = append(apps, app)
		}
	}

	for _, custom := range opts.Custom {
		apps = append(apps, fromCustom(custom))
	}

	sortApps(apps, opts.Favorites)
	return apps
}

// scanDir walks one directory tree and normalizes every .desktop file in
// it. Unreadable files and rejected descriptors are skipped.
func scanDir(dir string) []App {
	var apps []App
	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtrees, including a missing dir
		}
		if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
			return nil
		}

		entry, err := desktop.ParseFile(path)
		if err != nil {
			tuilog.Log.Debug("skipping descriptor", "path", path, "error", err)
			return nil
		}
		app, err := fromEntry(entry)
		if err != nil {
			tuilog.Log.Debug("rejecting descriptor", "path", path, "reason", err)
			return nil
		}
		apps = append(apps, app)
		return nil
	})
	return apps
}

// sortApps orders favorites first, then everything else, each group by
// case-insensitive display name. The sort is stable so equal-folding
// names keep their discovery order.
func sortApps(apps []App, favorites []string) {
	fav := make(map[string]bool, len(favorites))
	for _, name := range favorites {
		fav[name] = true
	}

	fold := cases.Fold()
	sort.SliceStable(apps, func(i, j int) bool {
		if fav[apps[i].Name] != fav[apps[j].Name] {
			return fav[apps[i].Name]
		}
		return fold.String(apps[i].Name) < fold.String(apps[j].Name)
	})
}
