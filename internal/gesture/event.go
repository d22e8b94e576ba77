package gesture

import (
	"fmt"
	"time"
)

// Phase identifies the kind of touch event.
type Phase uint8

const (
	// PhaseStart means contacts touched the surface.
	PhaseStart Phase = iota
	// PhaseMove means contacts moved.
	PhaseMove
	// PhaseEnd means contacts were lifted.
	PhaseEnd
	// PhaseCancel means the platform aborted the interaction.
	PhaseCancel
)

// Phases lists every phase in dispatch order.
var Phases = [...]Phase{PhaseStart, PhaseMove, PhaseEnd, PhaseCancel}

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// ParsePhase converts a phase name back to a Phase.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range Phases {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	if int(p) >= len(Phases) {
		return nil, fmt.Errorf("invalid phase %d", p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	phase, ok := ParsePhase(string(text))
	if !ok {
		return fmt.Errorf("unknown phase %q", text)
	}
	*p = phase
	return nil
}

// TouchEvent is a raw touch event delivered by a Surface.
type TouchEvent struct {
	// Phase is the event type.
	Phase Phase

	// Changed holds the contacts that started, moved, ended or were
	// cancelled by this event.
	Changed []Contact

	// Time is when the event occurred. A zero Time is replaced with the
	// recognizer's clock.
	Time time.Time

	// DefaultPrevented is set by non-passive listeners that want the
	// platform's default handling (scroll, zoom, callout) suppressed.
	DefaultPrevented bool
}

// PreventDefault marks the event's default handling as suppressed.
func (e *TouchEvent) PreventDefault() {
	e.DefaultPrevented = true
}
