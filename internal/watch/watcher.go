// Package watch reports changes to configuration files so a check can be
// rerun while the files are edited.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind is the type of change an Event reports.
type Kind int

const (
	KindChanged Kind = iota
	KindRemoved
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindChanged:
		return "changed"
	case KindRemoved:
		return "removed"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Event is one settled change, or a watch error.
type Event struct {
	Kind Kind
	Path string
	Err  error
}

// Options configure a Watcher.
type Options struct {
	Dirs []string
	// Match selects file base names worth reporting; nil reports all.
	Match func(name string) bool
	// Quiet is how long a burst of changes must be idle before it is
	// reported as one event.
	Quiet time.Duration
	// Interval is the minimum time between two reported changes.
	Interval time.Duration
}

// Watcher turns file system notifications for a set of directories into
// debounced events.
type Watcher struct {
	fs       *fsnotify.Watcher
	match    func(string) bool
	quiet    time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// New starts watching opts.Dirs.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	for _, dir := range opts.Dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fs:       fsw,
		match:    opts.Match,
		quiet:    opts.Quiet,
		throttle: newThrottle(opts.Interval),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}
	w.wg.Add(1)
	go w.run()
	go func() {
		w.wg.Wait()
		close(w.events)
	}()
	return w, nil
}

// Events returns the channel of settled changes. It is closed after Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop ends the watch.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch goroutine has exited and the events channel
// is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer w.fs.Close()

	var (
		pending Event
		settle  <-chan time.Time
	)
	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			pending = Event{Kind: KindChanged, Path: ev.Name}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				pending.Kind = KindRemoved
			}
			settle = time.After(w.quiet)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Kind: KindError, Err: err}) {
				return
			}
		case <-settle:
			settle = nil
			if !w.throttle.wait(w.ctx) || !w.emit(pending) {
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.match == nil || w.match(filepath.Base(ev.Name))
}

func (w *Watcher) emit(ev Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- ev:
		return true
	}
}
