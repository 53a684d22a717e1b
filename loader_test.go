package wallconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with the given content, failing the test on error.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// testFixtures creates an image file inside a wallpaper directory and
// returns both paths.
func testFixtures(t *testing.T) (image, dir string) {
	t.Helper()
	root := t.TempDir()
	dir = filepath.Join(root, "wallpapers")
	require.NoError(t, os.Mkdir(dir, 0755))
	image = filepath.Join(dir, "one.png")
	writeFile(t, image, "png")
	return image, dir
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"MalformedTOML", "config.toml", "[HDMI-1\npath ="},
		{"MalformedYAML", "config.yaml", "HDMI-1:\n path: [unclosed"},
		{"MalformedJSON", "config.json", `{"HDMI-1": {`},
		{"ScalarTopLevelKey", "config.toml", `path = "/img/one.png"`},
		{"UndeterminedFormat", "config.conf", "\x00\x01\x02garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, path, parseErr.Path)
		})
	}
}

func TestLoadValidation(t *testing.T) {
	image, dir := testFixtures(t)

	tests := []struct {
		name       string
		content    string
		wantOutput string
		wantReason string
	}{
		{
			name:       "NonexistentPath",
			content:    "[HDMI-1]\npath = \"/does/not/exist.png\"\n",
			wantOutput: "HDMI-1",
			wantReason: "does not exist",
		},
		{
			name:       "DurationWithImagePath",
			content:    fmt.Sprintf("[office]\npath = %q\nduration = \"30s\"\n", image),
			wantOutput: "office",
			wantReason: "is an image",
		},
		{
			name:       "DurationWithoutPath",
			content:    "[DP-2]\nduration = \"30s\"\n",
			wantOutput: "DP-2",
			wantReason: "`path` is missing",
		},
		{
			name:       "DefaultSectionIsValidatedToo",
			content:    "[default]\npath = \"/gone/default.png\"\n",
			wantOutput: "default",
			wantReason: "does not exist",
		},
		{
			name: "FirstInvalidEntryWins",
			content: fmt.Sprintf("[b-broken]\npath = \"/gone.png\"\n\n[a-broken]\npath = \"/also/gone.png\"\n\n[ok]\npath = %q\n",
				image),
			wantOutput: "a-broken",
			wantReason: "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, tt.content)

			snapshot, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, snapshot, "no snapshot may be produced from an invalid file")

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantOutput, validationErr.Output)
			assert.Contains(t, validationErr.Reason, tt.wantReason)
		})
	}

	t.Run("ValidConfigurations", func(t *testing.T) {
		valid := []struct {
			name    string
			content string
		}{
			{"ImagePath", fmt.Sprintf("[HDMI-1]\npath = %q\n", image)},
			{"DirectoryWithDuration", fmt.Sprintf("[office]\npath = %q\nduration = 300\n", dir)},
			{"DirectoryWithoutDuration", fmt.Sprintf("[office]\npath = %q\n", dir)},
			{"EmptySection", "[LVDS-1]\n"},
			{"EmptyFile", ""},
		}
		for _, tt := range valid {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "config.toml")
				writeFile(t, path, tt.content)

				_, err := Load(path)
				assert.NoError(t, err)
			})
		}
	})
}

func TestLoadDurationForms(t *testing.T) {
	_, dir := testFixtures(t)

	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"DurationString", `"5m"`, 5 * time.Minute},
		{"WholeSeconds", "300", 300 * time.Second},
		{"FractionalSeconds", "1.5", 1500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			writeFile(t, path, fmt.Sprintf("[office]\npath = %q\nduration = %s\n", dir, tt.raw))

			snapshot, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, snapshot.Resolve("office").Duration)
		})
	}
}

func TestLoadPreservesOpaqueKeys(t *testing.T) {
	image, _ := testFixtures(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, fmt.Sprintf(`[HDMI-1]
path = %q
mode = "fill"
transition-time = 10
sorting = "random"
`, image))

	snapshot, err := Load(path)
	require.NoError(t, err)

	settings := snapshot.Resolve("HDMI-1")
	assert.Equal(t, image, settings.Path)
	assert.Equal(t, "fill", settings.Extra["mode"])
	assert.Equal(t, int64(10), settings.Extra["transition-time"])
	assert.Equal(t, "random", settings.Extra["sorting"])
	assert.NotContains(t, settings.Extra, "path", "interpreted keys must not leak into the opaque payload")
}

func TestLoadDefaultResolution(t *testing.T) {
	image, _ := testFixtures(t)

	t.Run("DefaultSectionPresent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, fmt.Sprintf("[default]\npath = %q\n", image))

		snapshot, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, image, snapshot.Default().Path)
		assert.Same(t, snapshot.Default(), snapshot.Resolve("anything"))
	})

	t.Run("DefaultSectionAbsent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, fmt.Sprintf("[HDMI-1]\npath = %q\n", image))

		snapshot, err := Load(path)
		require.NoError(t, err)
		assert.True(t, snapshot.Default().Equal(&OutputSettings{}),
			"missing default section resolves to zero-value settings")
	})
}

func TestLoadFormats(t *testing.T) {
	image, dir := testFixtures(t)

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "YAML",
			file: "config.yaml",
			content: fmt.Sprintf("HDMI-1:\n  path: %q\n  duration: 300\n  mode: fill\ndefault:\n  path: %q\n",
				dir, image),
		},
		{
			name: "JSON",
			file: "config.json",
			content: fmt.Sprintf(`{"HDMI-1": {"path": %q, "duration": 300, "mode": "fill"}, "default": {"path": %q}}`,
				dir, image),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			snapshot, err := Load(path)
			require.NoError(t, err)

			settings := snapshot.Resolve("HDMI-1")
			assert.Equal(t, dir, settings.Path)
			assert.Equal(t, 300*time.Second, settings.Duration)
			assert.Equal(t, "fill", settings.Extra["mode"])
			assert.Equal(t, image, snapshot.Default().Path)
		})
	}

	t.Run("ContentSniffingWithoutExtension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wallpaperd.conf")
		writeFile(t, path, fmt.Sprintf(`{"HDMI-1": {"path": %q}}`, image))

		snapshot, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, image, snapshot.Resolve("HDMI-1").Path)
	})
}

func TestLoadReportsReadFailures(t *testing.T) {
	// A directory where a file is expected is neither missing nor parsable.
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigNotFound))
}
