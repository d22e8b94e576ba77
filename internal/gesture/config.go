package gesture

import "time"

// Config holds the recognizer's thresholds. Values are used as given; zero or
// negative thresholds weaken gesture separation but never cause a failure.
type Config struct {
	// SwipeThreshold is the minimum travel, in pixels, for a swipe.
	SwipeThreshold float64

	// TapThreshold is the maximum travel, in pixels, for a tap. Consecutive
	// taps must land within twice this distance to form a double tap.
	TapThreshold float64

	// PinchThreshold is the change in finger distance, in pixels, before
	// pinch callbacks fire.
	PinchThreshold float64

	// RotateThreshold is the change in finger angle, in radians, before
	// rotate callbacks fire.
	RotateThreshold float64

	// DoubleTapDelay is how long a tap stays eligible to pair with the next.
	DoubleTapDelay time.Duration

	// LongPressDelay is how long a finger must stay still for a long press.
	LongPressDelay time.Duration

	// TapMaxDuration is the longest touch still classified as a tap.
	TapMaxDuration time.Duration
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		SwipeThreshold:  50,
		TapThreshold:    10,
		PinchThreshold:  10,
		RotateThreshold: 0.1,
		DoubleTapDelay:  300 * time.Millisecond,
		LongPressDelay:  500 * time.Millisecond,
		TapMaxDuration:  300 * time.Millisecond,
	}
}

// ConfigPatch is a partial Config. Nil fields leave the current value alone.
type ConfigPatch struct {
	SwipeThreshold  *float64
	TapThreshold    *float64
	PinchThreshold  *float64
	RotateThreshold *float64
	DoubleTapDelay  *time.Duration
	LongPressDelay  *time.Duration
	TapMaxDuration  *time.Duration
}

// IsEmpty returns true if the patch sets nothing.
func (p ConfigPatch) IsEmpty() bool {
	return p.SwipeThreshold == nil && p.TapThreshold == nil &&
		p.PinchThreshold == nil && p.RotateThreshold == nil &&
		p.DoubleTapDelay == nil && p.LongPressDelay == nil &&
		p.TapMaxDuration == nil
}

// Apply returns c with the patch's non-nil fields applied.
func (c Config) Apply(p ConfigPatch) Config {
	if p.SwipeThreshold != nil {
		c.SwipeThreshold = *p.SwipeThreshold
	}
	if p.TapThreshold != nil {
		c.TapThreshold = *p.TapThreshold
	}
	if p.PinchThreshold != nil {
		c.PinchThreshold = *p.PinchThreshold
	}
	if p.RotateThreshold != nil {
		c.RotateThreshold = *p.RotateThreshold
	}
	if p.DoubleTapDelay != nil {
		c.DoubleTapDelay = *p.DoubleTapDelay
	}
	if p.LongPressDelay != nil {
		c.LongPressDelay = *p.LongPressDelay
	}
	if p.TapMaxDuration != nil {
		c.TapMaxDuration = *p.TapMaxDuration
	}
	return c
}

// Patch returns a patch that sets every field to c's value.
func (c Config) Patch() ConfigPatch {
	return ConfigPatch{
		SwipeThreshold:  Float(c.SwipeThreshold),
		TapThreshold:    Float(c.TapThreshold),
		PinchThreshold:  Float(c.PinchThreshold),
		RotateThreshold: Float(c.RotateThreshold),
		DoubleTapDelay:  Duration(c.DoubleTapDelay),
		LongPressDelay:  Duration(c.LongPressDelay),
		TapMaxDuration:  Duration(c.TapMaxDuration),
	}
}

// Merge overlays other onto p. Fields set in other win.
func (p ConfigPatch) Merge(other ConfigPatch) ConfigPatch {
	if other.SwipeThreshold != nil {
		p.SwipeThreshold = other.SwipeThreshold
	}
	if other.TapThreshold != nil {
		p.TapThreshold = other.TapThreshold
	}
	if other.PinchThreshold != nil {
		p.PinchThreshold = other.PinchThreshold
	}
	if other.RotateThreshold != nil {
		p.RotateThreshold = other.RotateThreshold
	}
	if other.DoubleTapDelay != nil {
		p.DoubleTapDelay = other.DoubleTapDelay
	}
	if other.LongPressDelay != nil {
		p.LongPressDelay = other.LongPressDelay
	}
	if other.TapMaxDuration != nil {
		p.TapMaxDuration = other.TapMaxDuration
	}
	return p
}

// Float returns a pointer to v, for building patches.
func Float(v float64) *float64 {
	return &v
}

// Duration returns a pointer to d, for building patches.
func Duration(d time.Duration) *time.Duration {
	return &d
}
