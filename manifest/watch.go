package manifest

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ThimoteB/Potich-Adventures/tileset"
	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long the watcher waits after the last edit before
// reporting a batch.
const DefaultQuiet = 100 * time.Millisecond

// Watcher reports edits to tileset declarations and manifests. Edits are
// gathered until the directories have been quiet for Quiet and then sent as
// one sorted batch, so an editor saving several files triggers one reload.
// Consumers rebuild a fresh registry per batch and swap it in between frames;
// a live registry is never mutated.
type Watcher struct {
	Changes chan []string
	Errors  chan error

	fsw     *fsnotify.Watcher
	quiet   time.Duration
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher(DefaultQuiet, dirs)
}

func newWatcher(quiet time.Duration, dirs []string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Changes: make(chan []string, 4),
		Errors:  make(chan error, 1),
		fsw:     fsw,
		quiet:   quiet,
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Changes and Errors are closed once it has stopped.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Changes)
	defer close(w.Errors)

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.quiet)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !watched(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(w.quiet)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			slices.Sort(batch)
			clear(pending)
			select {
			case w.Changes <- batch:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func watched(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return isSpecFile(event.Name) || isTilesetFile(event.Name)
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isTilesetFile(path string) bool {
	_, ok := tileset.FormatFromPath(path)
	return ok
}
