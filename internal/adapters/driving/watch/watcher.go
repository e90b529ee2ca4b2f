// Package watch uploads files as they appear in a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// DefaultDebounce is how long a file must stay unchanged before it is handled.
const DefaultDebounce = 500 * time.Millisecond

// Handler processes one settled file. Calls never overlap.
type Handler func(ctx context.Context, path string)

// Watcher hands new files in a directory to a Handler, one at a time.
// Files already present when Run starts are not handled.
type Watcher struct {
	dir      string
	debounce time.Duration
	handle   Handler
}

// New creates a watcher for dir.
func New(dir string, handle Handler) *Watcher {
	return &Watcher{dir: dir, debounce: DefaultDebounce, handle: handle}
}

// WithDebounce overrides the settle delay.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Run watches until ctx is cancelled. A handler call in progress is allowed
// to finish; queued files are dropped.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new files", w.dir)

	settled := make(chan settledPath, 16)
	pending := newDebouncer(w.debounce, settled, ctx.Done())
	done := make(chan struct{})
	var queue []string
	running := false

	startNext := func() {
		if running || len(queue) == 0 {
			return
		}
		path := queue[0]
		queue = queue[1:]
		running = true
		go func() {
			w.handle(ctx, path)
			done <- struct{}{}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			pending.stop()
			if running {
				<-done
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || hidden(event.Name) {
				continue
			}

			pending.touch(event.Name)

		case s := <-settled:
			if !pending.settle(s) {
				continue
			}
			name := s.name
			if !regularFile(name) || slices.Contains(queue, name) {
				continue
			}
			logger.Debug("File settled: %s", name)
			queue = append(queue, name)
			startNext()

		case <-done:
			running = false
			startNext()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error: %v", err)
		}
	}
}

// settledPath is a debounce timer firing for one generation of a path.
type settledPath struct {
	name string
	gen  uint64
}

type pendingTimer struct {
	timer *time.Timer
	gen   uint64
}

// debouncer tracks one timer per path. Only the loop goroutine calls its
// methods; timers only send on out.
type debouncer struct {
	delay   time.Duration
	out     chan<- settledPath
	quit    <-chan struct{}
	gen     uint64
	pending map[string]pendingTimer
}

func newDebouncer(delay time.Duration, out chan<- settledPath, quit <-chan struct{}) *debouncer {
	return &debouncer{delay: delay, out: out, quit: quit, pending: make(map[string]pendingTimer)}
}

// touch restarts the settle delay for name. A timer that already fired
// keeps its old generation and is discarded by settle.
func (d *debouncer) touch(name string) {
	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
	}
	d.gen++
	s := settledPath{name: name, gen: d.gen}
	t := time.AfterFunc(d.delay, func() {
		select {
		case d.out <- s:
		case <-d.quit:
		}
	})
	d.pending[name] = pendingTimer{timer: t, gen: s.gen}
}

// settle reports whether s is the latest timer for its path and forgets it.
func (d *debouncer) settle(s settledPath) bool {
	p, ok := d.pending[s.name]
	if !ok || p.gen != s.gen {
		return false
	}
	delete(d.pending, s.name)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func regularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
