package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/pgn/pkg/log"
)

// ErrWatchStdin is returned when asked to watch standard input.
var ErrWatchStdin = errors.New("cannot watch stdin")

// Event is sent to subscribers of a [Watcher].
type Event any

type (
	// EventReload carries the items read after the file changed.
	EventReload struct {
		Items []string
	}

	// EventError carries an error from loading or watching.
	EventError struct {
		Err error
	}
)

// Watcher reloads a file-backed [Loader] whenever the file is written.
type Watcher struct {
	loader    *Loader
	watcher   *fsnotify.Watcher
	file      string
	listeners []chan<- Event
	mu        sync.Mutex
}

// NewWatcher starts watching the loader's file. The parent directory is
// watched so that editors which replace the file are handled.
func NewWatcher(l *Loader) (*Watcher, error) {
	if l.IsStdin() {
		return nil, ErrWatchStdin
	}

	absPath, err := filepath.Abs(l.Path())
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = fw.Add(filepath.Dir(absPath))
	if err != nil {
		closeErr := fw.Close()
		return nil, errors.Join(fmt.Errorf("add path to watcher: %w", err), closeErr)
	}

	return &Watcher{
		loader:  l,
		watcher: fw,
		file:    absPath,
	}, nil
}

// Subscribe registers ch to receive events.
func (w *Watcher) Subscribe(ch chan<- Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.listeners = append(w.listeners, ch)
}

func (w *Watcher) broadcast(ctx context.Context, evt Event) {
	w.mu.Lock()
	listeners := w.listeners
	w.mu.Unlock()

	log.WithContext(ctx).DebugContext(ctx, "broadcasting event",
		slog.String("event", fmt.Sprintf("%T", evt)),
	)

	for _, ch := range listeners {
		select {
		case ch <- evt:
		case <-ctx.Done():
			return
		}
	}
}

// Run handles file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	logger := log.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if evt.Name != w.file {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) || evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
				continue
			}

			logger.DebugContext(ctx, "file changed", slog.String("event", evt.String()))

			items, err := w.loader.Load()
			if err != nil {
				w.broadcast(ctx, EventError{Err: err})
				continue
			}

			w.broadcast(ctx, EventReload{Items: items})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			w.broadcast(ctx, EventError{Err: err})
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}
