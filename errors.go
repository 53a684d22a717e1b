package wallconfig

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound indicates the configuration file does not exist.
// At initial load this is fatal; the daemon must not start without it.
var ErrConfigNotFound = errors.New("configuration file not found")

// ParseError indicates the configuration file exists but its content could
// not be deserialized into per-output sections.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file '%s': %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates a parsed section violates the settings
// invariants: its path is absent from disk, or duration is set for
// something that is not a directory of images.
type ValidationError struct {
	Output string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings for output %q: %s", e.Output, e.Reason)
}
