package wallconfig

import (
	"log/slog"
	"sync/atomic"
)

// Store holds the current configuration snapshot for the daemon. The
// snapshot pointer is swapped atomically by TryUpdate on the consumer loop;
// readers on any goroutine get a consistent immutable view and never
// observe a half-applied reload.
//
// The source path and the reload signal (pending flag + wake channel) are
// created once here and live for the store's lifetime; reloads replace the
// snapshot, never the signal.
type Store struct {
	path   string
	logger *slog.Logger

	snapshot atomic.Pointer[Snapshot]

	// reload is shared with the watcher goroutine; notify carries the
	// zero-payload wake tokens into the consumer loop.
	reload atomic.Bool
	notify chan struct{}
}

// New loads the configuration file at path and creates the store around the
// resulting snapshot. Any load failure is returned as-is: the caller
// decides process exit policy, but the daemon should not start on a
// missing or invalid file. A nil logger falls back to slog.Default().
func New(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	snapshot, err := Load(path)
	if err != nil {
		return nil, err
	}

	s := &Store{
		path:   path,
		logger: logger,
		notify: make(chan struct{}, notifyBuffer),
	}
	s.snapshot.Store(snapshot)
	return s, nil
}

// Path returns the file this store was loaded from.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current immutable snapshot. The returned value stays
// consistent for as long as the caller holds it, even across a swap.
func (s *Store) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Resolve returns the settings for the named output, or the default entry
// for outputs not listed in the file.
func (s *Store) Resolve(name string) *OutputSettings {
	return s.Snapshot().Resolve(name)
}

// Paths returns the sorted, deduplicated paths referenced by the current
// snapshot.
func (s *Store) Paths() []string {
	return s.Snapshot().Paths()
}

// Outputs returns the sorted names of the explicitly configured outputs in
// the current snapshot.
func (s *Store) Outputs() []string {
	return s.Snapshot().Outputs()
}

// IsReloadPending reports whether the watcher has flagged a file change
// that has not been processed yet. It reads the shared flag without
// consuming it.
func (s *Store) IsReloadPending() bool {
	return s.reload.Load()
}

// Changes returns the wake channel the consumer loop must select on. A
// received token means "check for a change", not "exactly one change
// occurred": rapid file modifications coalesce.
func (s *Store) Changes() <-chan struct{} {
	return s.notify
}
