// Package watch reports changes to the collection files. The repository
// already reloads on every request, so the watcher only tells operators that a
// file was touched, which makes hand edits and concurrent writers visible in
// the log.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"quoteboard/internal/logging"
)

// Event is a change to one watched file.
type Event struct {
	Path string
	Op   string
}

// Handler receives events for watched files.
type Handler func(Event)

// Watcher observes a data directory and forwards events for a fixed set of
// file names. Temporary files written during atomic saves are ignored.
type Watcher struct {
	fsw     *fsnotify.Watcher
	dir     string
	names   map[string]struct{}
	handler Handler
	log     logging.Logger
}

// New starts watching dir for changes to the named files.
func New(dir string, names []string, handler Handler, log logging.Logger) (*Watcher, error) {
	if log == nil {
		log = logging.Nop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return &Watcher{
		fsw:     fsw,
		dir:     dir,
		names:   set,
		handler: handler,
		log:     log.WithComponent("watch"),
	}, nil
}

// Run delivers events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	w.log.Debug(ctx, "watching data directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if _, watched := w.names[filepath.Base(ev.Name)]; !watched {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.handler != nil {
				w.handler(Event{Path: ev.Name, Op: opName(ev.Op)})
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(ctx, err, "watch error")
		}
	}
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "created"
	case op.Has(fsnotify.Write):
		return "modified"
	case op.Has(fsnotify.Remove):
		return "deleted"
	case op.Has(fsnotify.Rename):
		return "renamed"
	default:
		return "unknown"
	}
}

// LogChanges returns a Handler that logs every event at info level.
func LogChanges(log logging.Logger) Handler {
	return func(ev Event) {
		log.Info(context.Background(), "collection file changed on disk", "path", ev.Path, "op", ev.Op)
	}
}
