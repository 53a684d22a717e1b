package wallconfig

import "log/slog"

// TryUpdate re-reads the backing file and swaps in the new snapshot when it
// differs from the current one. It returns true only when a swap happened.
//
// Call it from the consumer loop after draining a token from Changes; it is
// the sole writer of the snapshot. A load failure (a save in progress can
// leave the file momentarily unparsable) is logged and leaves the
// last-known-good snapshot untouched.
func (s *Store) TryUpdate() bool {
	// Clear the pending flag before reading the file: a write landing
	// mid-reload re-arms it and its token triggers another check.
	s.reload.Store(false)

	next, err := Load(s.path)
	if err != nil {
		s.logger.Error("config reload failed, keeping current configuration",
			slog.String("path", s.path),
			slog.Any("error", err))
		return false
	}

	current := s.snapshot.Load()
	if next.Equal(current) {
		return false
	}

	s.snapshot.Store(next)
	s.logger.Info("configuration reloaded",
		slog.String("path", s.path),
		slog.Int("sections", next.Len()))
	return true
}
