package wallconfig

import (
	"fmt"
	"os"
	"reflect"
	"time"
)

// OutputSettings holds the wallpaper settings for one named output.
// Path and Duration are the only keys this package interprets; everything
// else a section carries is kept verbatim in Extra for the rendering layer.
//
// Instances produced by Load are shared and must be treated as immutable.
type OutputSettings struct {
	// Path is an image file, or a directory of images when Duration is set.
	Path string `toml:"path"`

	// Duration is the rotation interval for a directory of images.
	Duration time.Duration `toml:"duration"`

	// Extra collects the rendering keys (mode, transition, ...) that this
	// package does not inspect.
	Extra map[string]any `toml:",remain"`
}

// Equal reports whether two settings are structurally identical,
// including the opaque rendering keys.
func (s *OutputSettings) Equal(other *OutputSettings) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.Path == other.Path &&
		s.Duration == other.Duration &&
		reflect.DeepEqual(s.Extra, other.Extra)
}

// validate enforces the settings invariants for the named output:
// a set path must exist on disk, and a rotation duration is only valid
// against a directory.
func (s *OutputSettings) validate(name string) error {
	if s.Path == "" {
		if s.Duration > 0 {
			return &ValidationError{Output: name, Reason: "`duration` is set but `path` is missing"}
		}
		return nil
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return &ValidationError{
			Output: name,
			Reason: fmt.Sprintf("file or directory %q does not exist", s.Path),
		}
	}
	if s.Duration > 0 && !info.IsDir() {
		return &ValidationError{
			Output: name,
			Reason: fmt.Sprintf("`path` %q is an image but `duration` is also set; remove `duration` or point `path` at a directory", s.Path),
		}
	}
	return nil
}
