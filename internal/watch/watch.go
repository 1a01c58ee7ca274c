// Package watch reruns generation when Go sources change.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"

	"field-updater/internal/debug"
)

// DefaultDebounce is how long the watcher waits for events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches package directories for source changes.
type Watcher struct {
	dirs     []string
	ignore   string
	callback func() error
	watcher  *fsnotify.Watcher
	sources  uint64 // fingerprint of the sources at the last callback

	// Debounce is the quiet period before the callback runs.
	Debounce time.Duration
	// OnError receives callback and watcher errors. Errors are logged when nil.
	OnError func(error)
}

// NewWatcher creates a watcher over dirs. Files ending in ignoreSuffix,
// the generator's own output, never trigger the callback.
func NewWatcher(dirs []string, ignoreSuffix string, callback func() error) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	abs := make([]string, 0, len(dirs))

	for _, dir := range dirs {
		p, err := filepath.Abs(dir)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to get absolute path: %w", err)
		}

		if err := watcher.Add(p); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch directory %s: %w", p, err)
		}

		abs = append(abs, p)
	}

	return &Watcher{
		dirs:     abs,
		ignore:   ignoreSuffix,
		callback: callback,
		watcher:  watcher,
		Debounce: DefaultDebounce,
	}, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run calls the callback once, then again after every settled burst of
// relevant events, until ctx is done. The watcher is closed on return.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.sources, _ = w.fingerprint()

	if err := w.callback(); err != nil {
		return fmt.Errorf("initial callback failed: %w", err)
	}

	debounceTimer := time.NewTimer(w.Debounce)
	debounceTimer.Stop()

	var debounceCh <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if w.relevant(event) {
				debug.Debug("source changed", "path", event.Name, "op", event.Op.String())
				// Debounce: reset timer on each event
				debounceTimer.Reset(w.Debounce)
				debounceCh = debounceTimer.C
			}

		case <-debounceCh:
			debounceCh = nil

			sum, err := w.fingerprint()
			if err == nil && sum == w.sources {
				debug.Debug("sources unchanged, skipping")
				continue
			}

			w.sources = sum

			if err := w.callback(); err != nil {
				w.report(err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.report(fmt.Errorf("watch error: %w", err))

		case <-ctx.Done():
			debounceTimer.Stop()
			return nil
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return w.isSource(filepath.Base(event.Name))
}

// isSource reports whether a file name is a Go source the generator reads.
func (w *Watcher) isSource(name string) bool {
	switch {
	case !strings.HasSuffix(name, ".go"),
		strings.HasSuffix(name, "_test.go"),
		strings.HasSuffix(name, ".unformatted.go"):
		return false
	case w.ignore != "" && strings.HasSuffix(name, w.ignore):
		return false
	}

	return true
}

// fingerprint hashes the names and contents of every source file in the
// watched directories, so saves that change nothing are ignored.
func (w *Watcher) fingerprint() (uint64, error) {
	h := xxh3.New()

	for _, dir := range w.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, err
		}

		for _, e := range entries {
			if e.IsDir() || !w.isSource(e.Name()) {
				continue
			}

			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			if err != nil {
				return 0, err
			}

			h.WriteString(filepath.Join(dir, e.Name()))
			h.Write([]byte{0})
			h.Write(data)
		}
	}

	return h.Sum64(), nil
}

func (w *Watcher) report(err error) {
	if w.OnError != nil {
		w.OnError(err)
		return
	}

	debug.Warn("watch callback failed", "error", err)
}
