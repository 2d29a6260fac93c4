package catalog

import (
	"errors"

	"github.com/flingdev/fling/internal/desktop"
)

// Normalization rejection reasons. Rejected descriptors are dropped from
// the catalog, never surfaced as build errors; the reasons exist for
// debug logging.
var (
	errNotShown  = errors.New("descriptor is NoDisplay or Hidden")
	errNoName    = errors.New("descriptor has no display name")
	errNoCommand = errors.New("descriptor has no launchable command")
)

// fromEntry normalizes one parsed descriptor into an App, or reports why
// it cannot be launched.
func fromEntry(entry *desktop.Entry) (App, error) {
	if entry.NoDisplay || entry.Hidden {
		return App{}, errNotShown
	}
	if entry.Name == "" {
		return App{}, errNoName
	}
	if entry.Exec == "" {
		return App{}, errNoCommand
	}

	// The argv comes from the quoting-aware tokenizer, not from the
	// display cleanup: the two answer different questions.
	argv := desktop.SplitExec(entry.Exec)
	if len(argv) == 0 {
		return App{}, errNoCommand
	}

	return App{
		Name:        entry.Name,
		Exec:        desktop.CleanExec(entry.Exec),
		Icon:        entry.Icon,
		Description: entry.Comment,
		Keywords:    entry.Keywords,
		Terminal:    entry.Terminal,
		Strategy:    Direct{Argv: argv},
	}, nil
}

// fromCustom normalizes a user-configured app. Custom apps run through a
// shell verbatim and never in a terminal wrapper.
func fromCustom(custom Custom) App {
	return App{
		Name:     custom.Name,
		Exec:     custom.Exec,
		Icon:     custom.Icon,
		Keywords: custom.Keywords,
		Strategy: ShellLine{Command: custom.Exec},
	}
}
