package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/breathe/internal/gesture"
)

func ptr[T any](v T) *T { return &v }

func TestDefault(t *testing.T) {
	f := Default()
	assert.Equal(t, "info", f.Logging.Level)
	assert.Equal(t, "console", f.Logging.Format)
	assert.Equal(t, 8.0, f.Terminal.CellWidth)
	assert.Equal(t, 16.0, f.Terminal.CellHeight)
	assert.True(t, f.Gesture.Patch().IsEmpty())
	require.NoError(t, f.Validate())
}

func TestMergeLaterWins(t *testing.T) {
	base := Default()
	base.Bindings = map[string]string{"tap": "a", "swipe-left": "b"}

	layer := File{
		Gesture:  Gesture{SwipeThreshold: ptr(80.0)},
		Logging:  Logging{Level: "debug"},
		Terminal: Terminal{CellWidth: 10},
		Bindings: map[string]string{"tap": "c"},
		Script:   "gestures.lua",
	}

	got := base.Merge(layer)
	assert.Equal(t, 80.0, *got.Gesture.SwipeThreshold)
	assert.Nil(t, got.Gesture.TapThreshold)
	assert.Equal(t, "debug", got.Logging.Level)
	assert.Equal(t, "console", got.Logging.Format)
	assert.Equal(t, 10.0, got.Terminal.CellWidth)
	assert.Equal(t, 16.0, got.Terminal.CellHeight)
	assert.Equal(t, map[string]string{"tap": "c", "swipe-left": "b"}, got.Bindings)
	assert.Equal(t, "gestures.lua", got.Script)

	// The receiver's bindings are not modified.
	assert.Equal(t, "a", base.Bindings["tap"])
}

func TestGesturePatch(t *testing.T) {
	g := Gesture{
		TapThreshold:     ptr(4.0),
		LongPressDelayMS: ptr(int64(800)),
	}
	cfg := gesture.DefaultConfig().Apply(g.Patch())

	assert.Equal(t, 4.0, cfg.TapThreshold)
	assert.Equal(t, 800*time.Millisecond, cfg.LongPressDelay)
	assert.Equal(t, gesture.DefaultConfig().SwipeThreshold, cfg.SwipeThreshold)
	assert.Equal(t, gesture.DefaultConfig().DoubleTapDelay, cfg.DoubleTapDelay)
}

func TestBindingKinds(t *testing.T) {
	f := File{Bindings: map[string]string{"double-tap": "x", "pinch": "y"}}
	kinds, err := f.BindingKinds()
	require.NoError(t, err)
	assert.Equal(t, map[gesture.Kind]string{
		gesture.KindDoubleTap: "x",
		gesture.KindPinch:     "y",
	}, kinds)

	f.Bindings["wiggle"] = "z"
	_, err = f.BindingKinds()
	assert.ErrorIs(t, err, ErrUnknownGesture)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr bool
	}{
		{"defaults", func(*File) {}, false},
		{"bad level", func(f *File) { f.Logging.Level = "loud" }, true},
		{"bad format", func(f *File) { f.Logging.Format = "xml" }, true},
		{"bad binding", func(f *File) { f.Bindings = map[string]string{"shake": "x"} }, true},
		{"negative threshold allowed", func(f *File) { f.Gesture.SwipeThreshold = ptr(-1.0) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Default()
			tt.mutate(&f)
			err := f.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
