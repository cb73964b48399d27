package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/pagemap/pkg/core"
)

// DefaultEventBuffer is the capacity of the channel returned by Watch.
const DefaultEventBuffer = 100

// Watch implements core.Watchable. It reports page modules being created,
// modified or removed under the source root until ctx is cancelled.
func (d *Discoverer) Watch(ctx context.Context) (<-chan core.Event, error) {
	info, err := os.Stat(d.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("source root %s: %w", d.Root, core.ErrNotFound)
	}
	if err := d.validatePatterns(); err != nil {
		return nil, err
	}

	events := make(chan core.Event, DefaultEventBuffer)
	w := newWatchWorker(d, events)
	if err := w.Start(ctx); err != nil {
		close(events)
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	*worker.BaseWorker
	discoverer *Discoverer
	events     chan core.Event
	watcher    *fsnotify.Watcher
	debouncer  *debouncer
	cancel     context.CancelFunc
}

func newWatchWorker(d *Discoverer, events chan core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("page-watcher"),
		discoverer: d,
		events:     events,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := w.addDirs(watcher); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)
	w.discoverer.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// addDirs registers the root, and every non-excluded subdirectory when the
// discoverer is recursive. Symlinked directories are not watched.
func (w *watchWorker) addDirs(watcher *fsnotify.Watcher) error {
	d := w.discoverer
	if !d.config.Recursive {
		return watcher.Add(d.Root)
	}

	return filepath.WalkDir(d.Root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != d.Root {
			rel, err := d.relPath(path)
			if err != nil {
				return err
			}
			if d.excluded(rel) {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 > d.config.MaxDepth {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// mapEventType translates an fsnotify operation into a page event type.
func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	case event.Has(fsnotify.Write):
		return core.EventModify
	}
	return ""
}

// processFilesystemEvent filters, maps and debounces one fsnotify event.
// Returns true if an event was enqueued.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) (processed bool) {
	d := w.discoverer
	d.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	rel, err := d.relPath(event.Name)
	if err != nil || rel == "." {
		return false
	}
	if d.excluded(rel) {
		return false
	}

	if event.Has(fsnotify.Create) && d.config.Recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watcher.Add(event.Name); err != nil {
				w.handleWatcherError(fmt.Errorf("failed to watch new directory %s: %w", event.Name, err))
			}
			return false
		}
	}

	if !d.config.Recursive && strings.Contains(rel, "/") {
		return false
	}
	if !d.matches(rel) {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.sendEvent(ctx, core.Event{
		Type:      eType,
		ID:        core.DerivePageID(rel),
		Path:      event.Name,
		Timestamp: time.Now().Unix(),
	})
	return true
}

// sendEvent enqueues an event via the debouncer, protecting against channel closure during shutdown.
func (w *watchWorker) sendEvent(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// handleWatcherError reports a non-fatal watcher error.
func (w *watchWorker) handleWatcherError(err error) {
	cfg := w.discoverer.config
	cfg.Logger.Error("fsnotify error", "error", err)
	if cfg.ErrorHandler != nil {
		cfg.ErrorHandler(err)
	}
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	logger := w.discoverer.config.Logger
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if logger.Enabled(ctx, slog.LevelDebug) {
				logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.discoverer.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// Drain pending deliveries before the deferred close of the events channel.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.handleWatcherError(wErr)
		}
	}
}
