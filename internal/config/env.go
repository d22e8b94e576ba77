package config

import (
	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BREATHE_"

// envOverrides mirrors File for environment variables. Zero values mean
// "not set", so a threshold cannot be forced to zero from the environment.
type envOverrides struct {
	Gesture struct {
		SwipeThreshold   float64 `env:"SWIPE_THRESHOLD"`
		TapThreshold     float64 `env:"TAP_THRESHOLD"`
		PinchThreshold   float64 `env:"PINCH_THRESHOLD"`
		RotateThreshold  float64 `env:"ROTATE_THRESHOLD"`
		DoubleTapDelayMS int64   `env:"DOUBLE_TAP_DELAY_MS"`
		LongPressDelayMS int64   `env:"LONG_PRESS_DELAY_MS"`
		TapMaxDurationMS int64   `env:"TAP_MAX_DURATION_MS"`
	} `envPrefix:"GESTURE_"`

	Logging struct {
		Level  string `env:"LEVEL"`
		Format string `env:"FORMAT"`
		File   string `env:"FILE"`
	} `envPrefix:"LOG_"`

	Terminal struct {
		CellWidth   float64 `env:"CELL_WIDTH"`
		CellHeight  float64 `env:"CELL_HEIGHT"`
		PivotOffset float64 `env:"PIVOT_OFFSET"`
	} `envPrefix:"TERMINAL_"`

	Script string `env:"SCRIPT"`
}

// LoadEnv reads BREATHE_* variables from the process environment.
func LoadEnv() (File, error) {
	return loadEnv(env.Options{Prefix: EnvPrefix})
}

// LoadEnvFrom reads BREATHE_* variables from vars instead of the process
// environment.
func LoadEnvFrom(vars map[string]string) (File, error) {
	return loadEnv(env.Options{Prefix: EnvPrefix, Environment: vars})
}

func loadEnv(opts env.Options) (File, error) {
	var o envOverrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return File{}, &ParseError{Path: "<env>", Format: "env", Err: err}
	}

	var f File
	g := o.Gesture
	f.Gesture = Gesture{
		SwipeThreshold:   nonZero(g.SwipeThreshold),
		TapThreshold:     nonZero(g.TapThreshold),
		PinchThreshold:   nonZero(g.PinchThreshold),
		RotateThreshold:  nonZero(g.RotateThreshold),
		DoubleTapDelayMS: nonZero(g.DoubleTapDelayMS),
		LongPressDelayMS: nonZero(g.LongPressDelayMS),
		TapMaxDurationMS: nonZero(g.TapMaxDurationMS),
	}
	f.Logging = Logging{
		Level:  o.Logging.Level,
		Format: o.Logging.Format,
		File:   o.Logging.File,
	}
	f.Terminal = Terminal{
		CellWidth:   o.Terminal.CellWidth,
		CellHeight:  o.Terminal.CellHeight,
		PivotOffset: o.Terminal.PivotOffset,
	}
	f.Script = o.Script
	return f, nil
}

func nonZero[T float64 | int64](v T) *T {
	if v == 0 {
		return nil
	}
	return &v
}
