package wallconfig

import (
	"maps"
	"slices"
)

// Snapshot is one immutable, fully validated view of the configuration
// file: a mapping from output name to settings plus the resolved default
// entry. Snapshots are produced by Load and swapped wholesale; they are
// never mutated after construction.
type Snapshot struct {
	entries map[string]*OutputSettings
	def     *OutputSettings
}

// Resolve returns the settings for the named output, falling back to the
// default entry for outputs that are not listed. It never fails and does
// not copy; callers share the snapshot's settings value.
func (s *Snapshot) Resolve(name string) *OutputSettings {
	if settings, ok := s.entries[name]; ok {
		return settings
	}
	return s.def
}

// Default returns the resolved fallback entry: the "default" section if the
// file has one, a zero-value settings otherwise.
func (s *Snapshot) Default() *OutputSettings {
	return s.def
}

// Outputs returns the explicitly configured output names in sorted order,
// excluding the reserved default section.
func (s *Snapshot) Outputs() []string {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		if name != DefaultSection {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Paths returns every path referenced by any entry, sorted and
// deduplicated. The surrounding daemon watches these files and directories
// for image-level changes.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for _, settings := range s.entries {
		if settings.Path != "" {
			paths = append(paths, settings.Path)
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths)
}

// Equal reports whether two snapshots describe the same configuration.
// Only the entries participate: the default is derived from them, and
// source path or reload bookkeeping never affects equality.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return maps.EqualFunc(s.entries, other.entries, (*OutputSettings).Equal)
}

// Len returns the number of configured sections, the default section
// included when present.
func (s *Snapshot) Len() int {
	return len(s.entries)
}
