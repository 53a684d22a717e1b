package wallconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultSection is the reserved section name that supplies fallback
// settings for any output not listed explicitly.
const DefaultSection = "default"

// Load reads, parses, and validates the configuration file at path.
//
// It returns ErrConfigNotFound when the file is missing, a *ParseError when
// the content cannot be deserialized into per-output sections, and a
// *ValidationError when any section violates the settings invariants.
// Validation is all-or-nothing: no snapshot is ever produced from a file
// with even one invalid section.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	raw, err := parseFile(path, data)
	if err != nil {
		return nil, err
	}

	entries := make(map[string]*OutputSettings, len(raw))
	for name, value := range raw {
		section, ok := value.(map[string]any)
		if !ok {
			return nil, &ParseError{
				Path: path,
				Err:  fmt.Errorf("top-level key %q is not a table", name),
			}
		}
		settings, err := decodeSettings(section)
		if err != nil {
			return nil, &ParseError{
				Path: path,
				Err:  fmt.Errorf("output %q: %w", name, err),
			}
		}
		entries[name] = settings
	}

	// Validate in name order so a broken file reports the same error on
	// every load.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := entries[name].validate(name); err != nil {
			return nil, err
		}
	}

	def, ok := entries[DefaultSection]
	if !ok {
		slog.Debug("config has no default section, unlisted outputs get empty settings",
			slog.String("path", path))
		def = &OutputSettings{}
	}

	return &Snapshot{entries: entries, def: def}, nil
}

// parseFile deserializes the file content into a map of raw sections,
// picking the format from the extension and falling back to content
// sniffing for unknown extensions.
func parseFile(path string, data []byte) (map[string]any, error) {
	raw := make(map[string]any)

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}

	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	default:
		return nil, &ParseError{Path: path, Err: errors.New("unable to determine config format")}
	}

	return raw, nil
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect the format by parsing.
// JSON is strict, so it is tried first; YAML is a superset of JSON and
// comes second; TOML last.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
