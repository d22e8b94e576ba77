package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTOML = `
script = "gestures.lua"

[gesture]
swipe_threshold = 60.0
long_press_delay_ms = 800

[logging]
level = "debug"

[terminal]
cell_width = 9.0

[bindings]
tap = "session.pause"
`

const sampleYAML = `
gesture:
  tap_threshold: 6
  double_tap_delay_ms: 250
logging:
  format: json
bindings:
  swipe-up: session.menu
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.toml":     FormatTOML,
		"a.TOML":     FormatTOML,
		"dir/a.yaml": FormatYAML,
		"a.yml":      FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatOf("a.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeTOML(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleTOML), FormatTOML)
	require.NoError(t, err)

	require.NotNil(t, f.Gesture.SwipeThreshold)
	assert.Equal(t, 60.0, *f.Gesture.SwipeThreshold)
	require.NotNil(t, f.Gesture.LongPressDelayMS)
	assert.Equal(t, int64(800), *f.Gesture.LongPressDelayMS)
	assert.Nil(t, f.Gesture.TapThreshold)
	assert.Equal(t, "debug", f.Logging.Level)
	assert.Equal(t, 9.0, f.Terminal.CellWidth)
	assert.Equal(t, "session.pause", f.Bindings["tap"])
	assert.Equal(t, "gestures.lua", f.Script)
}

func TestDecodeYAML(t *testing.T) {
	f, err := Decode(strings.NewReader(sampleYAML), FormatYAML)
	require.NoError(t, err)

	require.NotNil(t, f.Gesture.TapThreshold)
	assert.Equal(t, 6.0, *f.Gesture.TapThreshold)
	require.NotNil(t, f.Gesture.DoubleTapDelayMS)
	assert.Equal(t, int64(250), *f.Gesture.DoubleTapDelayMS)
	assert.Equal(t, "json", f.Logging.Format)
	assert.Equal(t, "session.menu", f.Bindings["swipe-up"])
}

func TestDecodeEmptyYAML(t *testing.T) {
	f, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, f.Bindings)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"toml syntax", "[gesture\nswipe_threshold = 1", FormatTOML},
		{"toml unknown key", "[gesture]\nswipe = 1", FormatTOML},
		{"yaml type", "gesture:\n  tap_threshold: [1, 2]", FormatYAML},
		{"yaml unknown key", "gestures:\n  tap_threshold: 1", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "<reader>", pe.Path)
			assert.Equal(t, tt.format, pe.Format)
			assert.NotNil(t, pe.Unwrap())
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, File{}, f)
}

func TestLoadFileParseErrorNamesPath(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "[[[")
	_, err := LoadFile(path)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, err.Error(), path)
}

func TestLoadLayersFiles(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "breathe.toml", sampleTOML)
	second := writeFile(t, dir, "local.yaml", sampleYAML)

	f, err := Load(first, second, filepath.Join(dir, "missing.yml"))
	require.NoError(t, err)

	// From the first file.
	assert.Equal(t, 60.0, *f.Gesture.SwipeThreshold)
	assert.Equal(t, "debug", f.Logging.Level)
	assert.Equal(t, "session.pause", f.Bindings["tap"])
	// From the second file.
	assert.Equal(t, 6.0, *f.Gesture.TapThreshold)
	assert.Equal(t, "json", f.Logging.Format)
	assert.Equal(t, "session.menu", f.Bindings["swipe-up"])
	// Defaults.
	assert.Equal(t, 16.0, f.Terminal.CellHeight)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "breathe.toml", "[bindings]\nshake = \"x\"\n")
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrUnknownGesture)
}

func TestLoadEnvOverridesFiles(t *testing.T) {
	path := writeFile(t, t.TempDir(), "breathe.toml", sampleTOML)
	t.Setenv("BREATHE_GESTURE_SWIPE_THRESHOLD", "75")
	t.Setenv("BREATHE_LOG_LEVEL", "warn")

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75.0, *f.Gesture.SwipeThreshold)
	assert.Equal(t, "warn", f.Logging.Level)
	assert.Equal(t, int64(800), *f.Gesture.LongPressDelayMS)
}
