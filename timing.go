package wallconfig

import "time"

const (
	// DefaultDebounce coalesces the burst of write events most editors
	// produce for a single save into one wake token.
	DefaultDebounce = 100 * time.Millisecond

	// rewatchDelay gives a rename-based save time to land the new file
	// before the watch is re-registered on the path.
	rewatchDelay = 50 * time.Millisecond

	// notifyBuffer is the wake channel capacity. One slot is enough: the
	// pending flag carries the state, a token is only a nudge.
	notifyBuffer = 1
)
