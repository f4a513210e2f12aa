package source

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bmoura/tempotrack/internal/util"
)

// Watcher signals when a local source CSV changes on disk, so the
// caller can recompute against the fresh snapshot.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
}

// NewWatcher watches the directory containing path and emits on writes
// to the file itself.
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the parent directory: editors and sync tools often replace
	// the file instead of writing in place.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fsw,
		path:    path,
		changes: make(chan struct{}, 1),
	}
	go w.processEvents()
	return w, nil
}

// Changes delivers one signal per observed change, coalescing bursts.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.changes <- struct{}{}:
			default:
				// A signal is already pending.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Source watch error: " + err.Error())
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
