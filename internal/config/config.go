package config

import (
	"fmt"
	"time"

	"github.com/dshills/breathe/internal/gesture"
)

// File is the full breathe configuration.
type File struct {
	Gesture  Gesture           `toml:"gesture" yaml:"gesture"`
	Logging  Logging           `toml:"logging" yaml:"logging"`
	Terminal Terminal          `toml:"terminal" yaml:"terminal"`
	Bindings map[string]string `toml:"bindings" yaml:"bindings"`
	Script   string            `toml:"script" yaml:"script"`
}

// Gesture holds recognizer thresholds. Nil fields keep the recognizer's
// current value.
type Gesture struct {
	SwipeThreshold   *float64 `toml:"swipe_threshold" yaml:"swipe_threshold"`
	TapThreshold     *float64 `toml:"tap_threshold" yaml:"tap_threshold"`
	PinchThreshold   *float64 `toml:"pinch_threshold" yaml:"pinch_threshold"`
	RotateThreshold  *float64 `toml:"rotate_threshold" yaml:"rotate_threshold"`
	DoubleTapDelayMS *int64   `toml:"double_tap_delay_ms" yaml:"double_tap_delay_ms"`
	LongPressDelayMS *int64   `toml:"long_press_delay_ms" yaml:"long_press_delay_ms"`
	TapMaxDurationMS *int64   `toml:"tap_max_duration_ms" yaml:"tap_max_duration_ms"`
}

// Logging configures the logger.
type Logging struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
	// Format is console or json.
	Format string `toml:"format" yaml:"format"`
	// File, when set, receives JSON logs with rotation.
	File       string `toml:"file" yaml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
	Compress   *bool  `toml:"compress" yaml:"compress"`
}

// Terminal configures the terminal lab surface.
type Terminal struct {
	// CellWidth and CellHeight convert terminal cells to pixels.
	CellWidth  float64 `toml:"cell_width" yaml:"cell_width"`
	CellHeight float64 `toml:"cell_height" yaml:"cell_height"`
	// PivotOffset is the distance in cells between the mouse and the
	// emulated second finger.
	PivotOffset float64 `toml:"pivot_offset" yaml:"pivot_offset"`
}

// Default returns the built-in configuration.
func Default() File {
	compress := false
	return File{
		Logging: Logging{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   &compress,
		},
		Terminal: Terminal{
			CellWidth:   8,
			CellHeight:  16,
			PivotOffset: 12,
		},
	}
}

// Merge returns f with every set field of other applied. Strings and numbers
// are set when non-zero; bindings merge per gesture.
func (f File) Merge(other File) File {
	f.Gesture = f.Gesture.Merge(other.Gesture)
	f.Logging = f.Logging.merge(other.Logging)
	f.Terminal = f.Terminal.merge(other.Terminal)

	if len(other.Bindings) > 0 {
		merged := make(map[string]string, len(f.Bindings)+len(other.Bindings))
		for k, v := range f.Bindings {
			merged[k] = v
		}
		for k, v := range other.Bindings {
			merged[k] = v
		}
		f.Bindings = merged
	}
	if other.Script != "" {
		f.Script = other.Script
	}
	return f
}

// Merge returns g with other's non-nil fields applied.
func (g Gesture) Merge(other Gesture) Gesture {
	if other.SwipeThreshold != nil {
		g.SwipeThreshold = other.SwipeThreshold
	}
	if other.TapThreshold != nil {
		g.TapThreshold = other.TapThreshold
	}
	if other.PinchThreshold != nil {
		g.PinchThreshold = other.PinchThreshold
	}
	if other.RotateThreshold != nil {
		g.RotateThreshold = other.RotateThreshold
	}
	if other.DoubleTapDelayMS != nil {
		g.DoubleTapDelayMS = other.DoubleTapDelayMS
	}
	if other.LongPressDelayMS != nil {
		g.LongPressDelayMS = other.LongPressDelayMS
	}
	if other.TapMaxDurationMS != nil {
		g.TapMaxDurationMS = other.TapMaxDurationMS
	}
	return g
}

// Patch converts the section into a recognizer patch.
func (g Gesture) Patch() gesture.ConfigPatch {
	ms := func(v *int64) *time.Duration {
		if v == nil {
			return nil
		}
		return gesture.Duration(time.Duration(*v) * time.Millisecond)
	}
	return gesture.ConfigPatch{
		SwipeThreshold:  g.SwipeThreshold,
		TapThreshold:    g.TapThreshold,
		PinchThreshold:  g.PinchThreshold,
		RotateThreshold: g.RotateThreshold,
		DoubleTapDelay:  ms(g.DoubleTapDelayMS),
		LongPressDelay:  ms(g.LongPressDelayMS),
		TapMaxDuration:  ms(g.TapMaxDurationMS),
	}
}

func (l Logging) merge(other Logging) Logging {
	if other.Level != "" {
		l.Level = other.Level
	}
	if other.Format != "" {
		l.Format = other.Format
	}
	if other.File != "" {
		l.File = other.File
	}
	if other.MaxSizeMB != 0 {
		l.MaxSizeMB = other.MaxSizeMB
	}
	if other.MaxBackups != 0 {
		l.MaxBackups = other.MaxBackups
	}
	if other.MaxAgeDays != 0 {
		l.MaxAgeDays = other.MaxAgeDays
	}
	if other.Compress != nil {
		l.Compress = other.Compress
	}
	return l
}

func (t Terminal) merge(other Terminal) Terminal {
	if other.CellWidth != 0 {
		t.CellWidth = other.CellWidth
	}
	if other.CellHeight != 0 {
		t.CellHeight = other.CellHeight
	}
	if other.PivotOffset != 0 {
		t.PivotOffset = other.PivotOffset
	}
	return t
}

// BindingKinds parses the bindings section into gesture kinds.
func (f File) BindingKinds() (map[gesture.Kind]string, error) {
	out := make(map[gesture.Kind]string, len(f.Bindings))
	for name, command := range f.Bindings {
		kind, ok := gesture.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGesture, name)
		}
		out[kind] = command
	}
	return out, nil
}

// Validate checks values that would make the application misbehave. Gesture
// thresholds are deliberately not validated; the recognizer accepts any
// value.
func (f File) Validate() error {
	switch f.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", f.Logging.Level)
	}
	switch f.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be console or json)", f.Logging.Format)
	}
	if _, err := f.BindingKinds(); err != nil {
		return err
	}
	return nil
}
