// Package tuilog provides file-based logging. The launcher's stdout and
// stderr belong to the terminal UI while it runs, so diagnostics go to a
// file instead, enabled with the --log flag.
package tuilog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Logger writes timestamped, leveled key/value lines to a file.
// The zero value is a disabled logger; every method is safe to call on it.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	enabled bool
}

// Log is the process-wide logger instance.
var (
	Log      = &Logger{}
	initOnce sync.Once
)

// Init points the global logger at path. An empty path leaves logging
// disabled. Init is a no-op after the first successful call.
func Init(path string) error {
	if path == "" {
		return nil
	}
	var initErr error
	initOnce.Do(func() {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			initErr = err
			return
		}
		Log.file = f
		Log.enabled = true
	})
	return initErr
}

// Close closes the underlying log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Enabled reports whether log lines are being written anywhere.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Writer exposes the log destination for libraries that want an io.Writer.
func (l *Logger) Writer() io.Writer {
	if !l.enabled || l.file == nil {
		return io.Discard
	}
	return l.file
}

func (l *Logger) write(level, msg string, keyvals ...any) {
	if !l.enabled || l.file == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s %s", time.Now().Format("15:04:05.000"), level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	l.file.WriteString(b.String())
}

// Debug logs fine-grained diagnostics (skipped descriptors, watch noise).
func (l *Logger) Debug(msg string, keyvals ...any) { l.write("DEBUG", msg, keyvals...) }

// Info logs normal operation milestones.
func (l *Logger) Info(msg string, keyvals ...any) { l.write("INFO", msg, keyvals...) }

// Warn logs recoverable problems.
func (l *Logger) Warn(msg string, keyvals ...any) { l.write("WARN", msg, keyvals...) }

// Error logs failures worth user attention.
func (l *Logger) Error(msg string, keyvals ...any) { l.write("ERROR", msg, keyvals...) }
