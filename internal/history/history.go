// Package history persists launch events to an append-only ledger file
// and aggregates them into a most-recent-launch-per-app mapping.
//
// The file is shared by concurrent launcher invocations. There is no
// cross-process lock: appends are independually well-formed single writes,
// and compaction only ever publishes its result through one atomic rename
// of an exclusively-created temp file. A concurrent reader sees the old
// file or the new file, never a mix.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/flingdev/fling/internal/tuilog"
)

// DefaultMaxLines bounds the ledger after compaction.
const DefaultMaxLines = 200

// compactSizeFactor: compaction triggers when the file exceeds
// maxLines*compactSizeFactor bytes. A size heuristic stands in for a line
// count so the hot append path never parses the whole file.
const compactSizeFactor = 100

// ErrSymlink is returned when the ledger path is a symbolic link. It
// matches errors.Is(err, fs.ErrPermission): a symlinked ledger is treated
// as an attack, not a configuration.
var ErrSymlink = fmt.Errorf("history path is a symlink: %w", fs.ErrPermission)

// Ledger is a handle on the history file. It holds no state between
// calls; every operation re-reads or re-opens the backing file.
type Ledger struct {
	path     string
	maxLines int
	now      func() time.Time
}

// New returns a Ledger over path with the default compaction bound.
func New(path string) *Ledger {
	return &Ledger{path: path, maxLines: DefaultMaxLines, now: time.Now}
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// DefaultPath places the ledger under the per-user data directory:
// $XDG_DATA_HOME/fling/history.txt, falling back to ~/.local/share.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "fling", "history.txt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "fling", "history.txt"), nil
}

// Record appends one (now, appName) event. On success it may also run a
// best-effort compaction; compaction failures are logged and swallowed.
//
// Names containing a tab or newline corrupt their own line; the write
// path does no escaping and Load simply never reproduces such an event.
func (l *Ledger) Record(appName string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := ensureNotSymlink(l.path); err != nil {
		return err
	}

	// O_NOFOLLOW at the open closes the race between the symlink check
	// above and the open itself.
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|unix.O_NOFOLLOW, 0o600)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	line := fmt.Sprintf("%d\t%s\n", l.now().Unix(), appName)
	_, werr := f.WriteString(line)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("append history: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close history: %w", cerr)
	}

	if info, err := os.Stat(l.path); err == nil {
		if info.Size() > int64(l.maxLines)*compactSizeFactor {
			if err := l.Compact(l.maxLines); err != nil {
				tuilog.Log.Warn("history compaction failed", "error", err)
			}
		}
	}
	return nil
}

// Load reads the ledger into a name → latest-timestamp mapping. A missing
// file yields an empty map. Unparsable lines are skipped, never fatal.
func (l *Ledger) Load() (map[string]uint64, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]uint64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	latest := make(map[string]uint64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		ts, name, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if ts > latest[name] {
			latest[name] = ts
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return latest, nil
}

// Compact rewrites the ledger to its maxLines most recent events, sorted
// oldest-first for readability. Each valid line counts as a distinct
// event here (no dedup by name). Any failure leaves the ledger exactly as
// it was: the atomic rename is the only externally visible mutation.
func (l *Ledger) Compact(maxLines int) error {
	if err := ensureNotSymlink(l.path); err != nil {
		return err
	}

	content, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	type event struct {
		ts   uint64
		name string
	}
	var events []event
	for _, line := range strings.Split(string(content), "\n") {
		if ts, name, ok := parseLine(line); ok {
			events = append(events, event{ts, name})
		}
	}

	if len(events) <= maxLines {
		return nil
	}

	// Keep the most recent; stable sorts preserve file order between
	// events whose second-granularity timestamps collide.
	sort.SliceStable(events, func(i, j int) bool { return events[i].ts > events[j].ts })
	events = events[:maxLines]
	sort.SliceStable(events, func(i, j int) bool { return events[i].ts < events[j].ts })

	tmp, f, err := createTempLedger(l.path)
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\n", e.ts, e.name)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close temp history: %w", err)
	}

	if err := os.Rename(tmp, l.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

// Clear removes the ledger file. Absence is not an error.
func (l *Ledger) Clear() error {
	if err := ensureNotSymlink(l.path); err != nil {
		return err
	}
	err := os.Remove(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// parseLine parses one ledger line. A line is valid when it has a tab and
// its first field is an unsigned decimal. Everything after the first tab
// is the name, matching the write format.
func parseLine(line string) (uint64, string, bool) {
	tsStr, name, found := strings.Cut(line, "\t")
	if !found {
		return 0, "", false
	}
	ts, err := strconv.ParseUint(tsStr, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return ts, name, true
}

// ensureNotSymlink inspects the path's own metadata (not the target's).
// A missing path or a plain file are the only acceptable pre-states.
func ensureNotSymlink(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat history: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return ErrSymlink
	}
	return nil
}

// createTempLedger exclusively creates a uniquely named temp file next to
// the ledger. O_EXCL guarantees two concurrent compactors never share a
// temp file; the loser of the final rename race is simply overwritten,
// which is fine since both results are valid trimmed histories.
func createTempLedger(path string) (string, *os.File, error) {
	tmp := filepath.Join(filepath.Dir(path),
		fmt.Sprintf(".history.%d.%d.tmp", os.Getpid(), time.Now().UnixNano()))
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL|unix.O_NOFOLLOW, 0o600)
	if err != nil {
		return "", nil, err
	}
	return tmp, f, nil
}
