package catalog

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/flingdev/fling/internal/tuilog"
)

// watchDebounce coalesces bursts of filesystem events (package installs
// touch many descriptor files at once) into a single rebuild signal.
const watchDebounce = 500 * time.Millisecond

// Watcher signals on C whenever the watched application directories
// change. Consumers react by rebuilding the catalog from scratch; there
// is no incremental update.
type Watcher struct {
	C    <-chan struct{}
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching the given directories. Directories that do not
// exist are skipped; if none can be watched the Watcher is still valid
// and simply never fires.
func Watch(dirs []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			tuilog.Log.Debug("not watching", "dir", dir, "error", err)
		}
	}

	c := make(chan struct{}, 1)
	w := &Watcher{C: c, fsw: fsw, done: make(chan struct{})}

	go func() {
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case _, ok := <-fsw.Events:
				if !ok {
					return
				}
				if timer == nil {
					timer = time.NewTimer(watchDebounce)
				} else {
					timer.Reset(watchDebounce)
				}
				fire = timer.C
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				tuilog.Log.Debug("watch error", "error", err)
			case <-fire:
				fire = nil
				select {
				case c <- struct{}{}:
				default: // a rebuild is already pending
				}
			case <-w.done:
				return
			}
		}
	}()

	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
