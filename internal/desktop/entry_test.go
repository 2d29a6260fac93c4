package desktop

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseBasicEntry(t *testing.T) {
	content := `[Desktop Entry]
Type=Application
Name=Firefox
Comment=Browse the web
Icon=firefox
Exec=firefox %u
Keywords=web;browser;internet;
Terminal=false
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.Name != "Firefox" {
		t.Errorf("Name = %q, want Firefox", entry.Name)
	}
	if entry.Comment != "Browse the web" {
		t.Errorf("Comment = %q", entry.Comment)
	}
	if entry.Icon != "firefox" {
		t.Errorf("Icon = %q", entry.Icon)
	}
	if entry.Exec != "firefox %u" {
		t.Errorf("Exec = %q", entry.Exec)
	}
	want := []string{"web", "browser", "internet"}
	if !reflect.DeepEqual(entry.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", entry.Keywords, want)
	}
	if entry.Terminal {
		t.Error("Terminal should be false")
	}
}

func TestParseLocalizedNameWins(t *testing.T) {
	content := `[Desktop Entry]
Name=Navigateur
Name[en]=Browser
Name[de]=Webbrowser
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Browser" {
		t.Errorf("Name = %q, want the en-localized value", entry.Name)
	}
}

func TestParseLocaleWithCountrySuffix(t *testing.T) {
	content := `[Desktop Entry]
Name[en_US]=Browser
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Browser" {
		t.Errorf("Name = %q, want en_US treated as en", entry.Name)
	}
}

func TestParseIgnoresOtherSections(t *testing.T) {
	content := `[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window

[Desktop Entry]
Name=Firefox
Exec=firefox
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "Firefox" {
		t.Errorf("Name = %q, picked up a value outside [Desktop Entry]", entry.Name)
	}
	if entry.Exec != "firefox" {
		t.Errorf("Exec = %q", entry.Exec)
	}
}

func TestParseFlags(t *testing.T) {
	content := `[Desktop Entry]
Name=Secret
Exec=secret
NoDisplay=true
Hidden=TRUE
Terminal=true
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !entry.NoDisplay || !entry.Hidden || !entry.Terminal {
		t.Errorf("flags = %+v, want all true", entry)
	}
}

func TestParseCommentsAndBlanks(t *testing.T) {
	content := `# top comment

[Desktop Entry]
# a comment
Name=App

Exec=app
`
	entry, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "App" || entry.Exec != "app" {
		t.Errorf("entry = %+v", entry)
	}
}

func TestParseMissingMainSection(t *testing.T) {
	if _, err := Parse("[Something Else]\nName=x\n"); err == nil {
		t.Error("expected error for descriptor without [Desktop Entry]")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.desktop")
	content := "[Desktop Entry]\nName=App\nExec=app\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entry, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.Name != "App" {
		t.Errorf("Name = %q", entry.Name)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.desktop")); err == nil {
		t.Error("expected error for missing file")
	}
}
