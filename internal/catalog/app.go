// Package catalog builds the launchable application catalog: it discovers
// .desktop descriptors across the search directories, normalizes them into
// App records, and merges in user-configured custom apps.
package catalog

import "strings"

// Strategy describes how an App is executed. The choice is made once at
// normalization time and carried immutably with the App, which keeps the
// trust boundary (which entries ever see a shell) out of the dispatcher.
type Strategy interface {
	launchStrategy()
}

// Direct executes argv[0] with the remaining arguments, no shell involved.
// Argv is never empty for an App produced by this package.
type Direct struct {
	Argv []string
}

// ShellLine hands an opaque command string to `sh -c`. Only custom
// (user-authored) apps use this; discovered descriptors never do, so
// untrusted descriptor fields cannot reach shell interpretation.
type ShellLine struct {
	Command string
}

func (Direct) launchStrategy()    {}
func (ShellLine) launchStrategy() {}

// App is one launchable entry in the catalog. Immutable after Build.
type App struct {
	Name        string // display name; also the dedup/favorite/exclude key
	Exec        string // human-readable command, field codes stripped
	Icon        string // icon name or path, may be empty
	Description string // descriptor Comment, may be empty
	Keywords    []string
	Terminal    bool // wrap in a terminal emulator at launch
	Strategy    Strategy
}

// Custom is a user-configured application from the config file. Custom
// apps always launch through a shell: they are user-authored, so shell
// metacharacters in Exec are trusted by construction.
type Custom struct {
	Name     string
	Exec     string
	Icon     string
	Keywords []string
}

// SearchText returns the blob the ranking engine matches against: the
// display name, description and keywords, space-joined.
func (a *App) SearchText() string {
	var b strings.Builder
	b.WriteString(a.Name)
	if a.Description != "" {
		b.WriteByte(' ')
		b.WriteString(a.Description)
	}
	for _, kw := range a.Keywords {
		b.WriteByte(' ')
		b.WriteString(kw)
	}
	return b.String()
}
