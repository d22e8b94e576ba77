package gesture

// session is the recognizer's gesture session state. Exactly one variant is
// active, so single-touch tracking and a multi-touch baseline can never be
// live at the same time.
type session interface {
	mode() Mode
}

// idle means no gesture is being tracked. Contacts may still be down, for
// example the finger left over after a two-finger gesture.
type idle struct{}

// tracking is a single-touch interaction that will be classified on release.
type tracking struct {
	id    int
	start Point
}

// multiTouch is a two-finger interaction measured against its baseline.
type multiTouch struct {
	base baseline
}

func (idle) mode() Mode       { return ModeIdle }
func (tracking) mode() Mode   { return ModeTracking }
func (multiTouch) mode() Mode { return ModeMultiTouch }

// Mode reports which kind of gesture session is active.
type Mode uint8

const (
	// ModeIdle means nothing is being tracked.
	ModeIdle Mode = iota
	// ModeTracking means a single-touch interaction is in progress.
	ModeTracking
	// ModeMultiTouch means a two-finger interaction is in progress.
	ModeMultiTouch
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTracking:
		return "tracking"
	case ModeMultiTouch:
		return "multi-touch"
	default:
		return "idle"
	}
}
