package wallconfig

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures how file changes are turned into wake tokens.
type WatchOptions struct {
	// Debounce is how long to wait after a modify event before signaling,
	// so that a burst of writes produces a single token. Zero disables
	// debouncing and signals on every event.
	Debounce time.Duration
}

// DefaultWatchOptions returns the standard watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Debounce: DefaultDebounce}
}

// ListenChanges registers an OS-level watch on the store's source file and
// starts the watcher goroutine. From then on, every modify-class event sets
// the pending flag and sends a wake token on Changes. The goroutine runs
// until ctx is cancelled.
func (s *Store) ListenChanges(ctx context.Context) error {
	return s.ListenChangesWithOptions(ctx, DefaultWatchOptions())
}

// ListenChangesWithOptions is ListenChanges with custom options.
func (s *Store) ListenChangesWithOptions(ctx context.Context, opts WatchOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(s.path); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config file '%s': %w", s.path, err)
	}

	go s.watchLoop(ctx, watcher, opts)
	return nil
}

// modifyOps are the event kinds treated as a modification of the config
// file. Chmod and everything else is ignored.
const modifyOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// watchLoop consumes file-system events until ctx is done. It must never
// block on the consumer and never stop on its account: all it does per
// event is set the shared flag and attempt a non-blocking send.
func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, opts WatchOptions) {
	defer watcher.Close()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&modifyOps == 0 {
				continue
			}

			// Editors and atomic writers save via rename, which leaves the
			// watch on the dead inode. Re-register on the path before
			// signaling so later saves are still seen.
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				s.rewatch(watcher)
			}

			if opts.Debounce <= 0 {
				s.signalReload()
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(opts.Debounce, s.signalReload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("config watcher error", slog.Any("error", err))
		}
	}
}

// rewatch re-registers the watch on the source path after the watched inode
// went away, retrying once in case the replacement file has not landed yet.
func (s *Store) rewatch(watcher *fsnotify.Watcher) {
	if err := watcher.Add(s.path); err == nil {
		return
	}
	time.Sleep(rewatchDelay)
	if err := watcher.Add(s.path); err != nil {
		s.logger.Warn("failed to re-watch config file",
			slog.String("path", s.path),
			slog.Any("error", err))
	}
}

// signalReload sets the shared pending flag and wakes the consumer loop.
// The send must never block or panic the watcher goroutine: with the
// channel full a token is already queued and the flag carries the state.
func (s *Store) signalReload() {
	s.reload.Store(true)
	select {
	case s.notify <- struct{}{}:
	default:
		s.logger.Debug("reload notification coalesced", slog.String("path", s.path))
	}
}
