// Package launch spawns catalog entries as detached child processes and
// reports successful launches to the history ledger.
package launch

import (
	"fmt"
	"io/fs"
	"os/exec"
	"strings"

	"github.com/flingdev/fling/internal/catalog"
	"github.com/flingdev/fling/internal/tuilog"
)

// ErrEmptyArgv is returned when a Direct strategy carries no tokens. It
// matches errors.Is(err, fs.ErrInvalid) and is checked before any process
// creation is attempted.
var ErrEmptyArgv = fmt.Errorf("launch: empty argv: %w", fs.ErrInvalid)

// Recorder receives the display name of a successfully spawned app.
// *history.Ledger satisfies it.
type Recorder interface {
	Record(appName string) error
}

// Dispatcher launches apps. Terminal is the wrapper command used for apps
// flagged to run in a terminal; History, when non-nil, is notified after
// each successful spawn.
type Dispatcher struct {
	Terminal string
	History  Recorder
}

// Launch spawns app and forgets it: std streams go to the null device,
// the child is never waited on, and its exit status is nobody's business.
// A spawn failure is returned to the caller but is never fatal.
func (d *Dispatcher) Launch(app *catalog.App) error {
	name, args, err := buildCommand(app, d.Terminal)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	// Leaving Stdin/Stdout/Stderr nil connects the child to the null
	// device; the launcher never inherits or blocks on child I/O.
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", app.Name, err)
	}
	cmd.Process.Release()

	tuilog.Log.Info("launched", "app", app.Name)
	if d.History != nil {
		if err := d.History.Record(app.Name); err != nil {
			// History is a convenience, not a launch precondition.
			tuilog.Log.Warn("history record failed", "app", app.Name, "error", err)
		}
	}
	return nil
}

// buildCommand resolves the strategy and optional terminal wrapping into
// the executable and argument vector handed to the OS.
func buildCommand(app *catalog.App, terminal string) (string, []string, error) {
	switch s := app.Strategy.(type) {
	case catalog.Direct:
		if len(s.Argv) == 0 {
			return "", nil, ErrEmptyArgv
		}
		argv := s.Argv
		if app.Terminal {
			wrap := strings.Fields(terminal)
			if len(wrap) == 0 {
				return "", nil, fmt.Errorf("launch %s: no terminal command configured: %w", app.Name, fs.ErrInvalid)
			}
			argv = append(append(wrap, "-e"), argv...)
		}
		return argv[0], argv[1:], nil

	case catalog.ShellLine:
		command := s.Command
		if app.Terminal {
			command = terminal + " -e " + command
		}
		return "sh", []string{"-c", command}, nil

	default:
		return "", nil, fmt.Errorf("launch %s: unknown strategy %T: %w", app.Name, app.Strategy, fs.ErrInvalid)
	}
}
