// Package watch regenerates outputs when doc files change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/Rifhice/paxada/logging"
	"github.com/Rifhice/paxada/source"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 200 * time.Millisecond

// Handler receives the doc files changed during one quiet period, sorted.
type Handler func(ctx context.Context, files []string)

// Watcher follows every directory below a root for doc file changes.
type Watcher struct {
	root     string
	debounce time.Duration
	handler  Handler
	watcher  *fsnotify.Watcher
	logger   *logrus.Entry

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	// running serializes handler calls; each timer fires on its own goroutine.
	running sync.Mutex
}

// New watches root and every directory below it. A non-positive debounce
// uses DefaultDebounce.
func New(root string, debounce time.Duration, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		root:     root,
		debounce: debounce,
		handler:  handler,
		watcher:  fw,
		logger:   logging.NewLogger("watch"),
		pending:  make(map[string]struct{}),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree registers dir and its subdirectories, skipping the same
// directories source.Find skips.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return err
		}
		w.logger.Debugf("watching %s", path)
		return nil
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// Run delivers batches until ctx is done. It closes the underlying watcher
// before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Error("watcher error")
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return ctx.Err()
		}
	}
}

func (w *Watcher) handle(ctx context.Context, ev fsnotify.Event) {
	w.logger.Debugf("event %s op=%v", ev.Name, ev.Op)
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(info.Name()) {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.WithError(err).Warnf("cannot watch %s", ev.Name)
			}
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	if !source.IsDocFile(ev.Name) {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[ev.Name] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.flush(ctx) })
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	files := make([]string, 0, len(w.pending))
	for f := range w.pending {
		files = append(files, f)
	}
	clear(w.pending)
	w.timer = nil
	w.mu.Unlock()

	if len(files) == 0 || ctx.Err() != nil {
		return
	}
	slices.Sort(files)

	w.running.Lock()
	defer w.running.Unlock()
	if ctx.Err() != nil {
		return
	}
	w.logger.Infof("%d doc file(s) changed", len(files))
	w.handler(ctx, files)
}
