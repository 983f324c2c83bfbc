// Package watcher reports changes to the dashboard spreadsheet.
package watcher

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"

	"github.com/penwyp/go-project-panel/internal/util"
)

// FileEvent describes one change to the watched spreadsheet
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher watches the directory holding the spreadsheet. Editors and sync
// clients usually replace the file instead of writing it in place, so the
// directory is watched and events are filtered by name.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan FileEvent
	done    chan struct{}
	once    sync.Once
}

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve spreadsheet path", goerr.V("path", path))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, goerr.Wrap(err, "failed to watch directory", goerr.V("dir", dir))
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan FileEvent, 16),
		done:    make(chan struct{}),
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path || event.Op&relevantOps == 0 {
				continue
			}

			select {
			case fw.events <- FileEvent{Path: event.Name, Operation: event.Op.String()}:
			case <-fw.done:
				return
			default:
				// Consumer is behind; one pending event is enough to trigger a reload
				util.LogDebug("Dropping spreadsheet event", util.F("op", event.Op.String()))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())

		case <-fw.done:
			return
		}
	}
}

// Events is closed once the watcher stops
func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		err = fw.watcher.Close()
	})
	return err
}

// Run calls onChange for every event until ctx is cancelled or the watcher is closed.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(FileEvent)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.events:
			if !ok {
				return
			}
			util.LogInfo("Spreadsheet changed", util.F("path", event.Path), util.F("op", event.Operation))
			onChange(event)
		}
	}
}
