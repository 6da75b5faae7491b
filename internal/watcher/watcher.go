// Package watcher monitors a directory for EPUB files and reports
// them once writes have settled, so that freshly copied books can be
// converted automatically.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-tools/bionify/internal/core/domain"
	"github.com/inkwell-tools/bionify/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is
// reported. Copies into the watched directory arrive as a burst of
// write events, and converting a half-written archive would fail.
const DefaultDebounce = 500 * time.Millisecond

// Event is emitted when a watched EPUB file has been created or
// modified and its writes have settled.
type Event struct {
	Path string
}

// Watcher observes a single directory for EPUB files.
type Watcher struct {
	dir        string
	debounce   time.Duration
	skipSuffix string

	mu     sync.Mutex
	closed bool
	fw     *fsnotify.Watcher
}

// New creates a watcher for the given directory. Files whose name
// already carries the converted-output suffix are ignored so that a
// conversion writing into the watched directory does not trigger
// another conversion.
func New(dir string) *Watcher {
	return &Watcher{
		dir:        dir,
		debounce:   DefaultDebounce,
		skipSuffix: domain.DefaultOutputSuffix,
	}
}

// SetDebounce overrides the settle interval. Mainly useful in tests.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Watch starts observing the directory and returns a channel of
// settled file events. The channel is closed when the context is
// cancelled.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, fmt.Errorf("watcher is closed")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch path error: %w", err)
	}

	w.fw = fw

	out := make(chan Event)
	go w.run(ctx, fw, out)

	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, out chan<- Event) {
	defer close(out)
	defer fw.Close()

	// One timer per path so a burst of writes to the same file
	// collapses into a single event after the debounce window.
	timers := make(map[string]*time.Timer)
	settled := make(chan string)

	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.wants(ev) {
				continue
			}
			path := ev.Name
			logger.Debug("Watch event: %s %s", ev.Op, path)
			if t, exists := timers[path]; exists {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case settled <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)

		case path := <-settled:
			delete(timers, path)
			select {
			case out <- Event{Path: path}:
			case <-ctx.Done():
				return
			}
		}
	}
}

// wants reports whether an event concerns an EPUB file that should be
// converted. Removals, renames and converted outputs are ignored.
func (w *Watcher) wants(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	if ext != ".epub" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(ev.Name), filepath.Ext(ev.Name))
	return !strings.HasSuffix(stem, w.skipSuffix)
}

// Close stops the watcher. It is safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.fw != nil {
		return w.fw.Close()
	}
	return nil
}
