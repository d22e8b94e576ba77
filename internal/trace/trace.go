// Package trace records touch input and replays it through a recognizer.
//
// A Trace is a timestamped list of raw touch events. Replay feeds it to a
// fresh Recognizer running on a virtual clock, so long-press and double-tap
// timers resolve exactly as they did live, however fast the replay runs.
package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	json "github.com/json-iterator/go"

	"github.com/dshills/breathe/internal/gesture"
)

// ErrEmptyTrace indicates a trace with no events.
var ErrEmptyTrace = errors.New("trace has no events")

// Contact is one touch point in a recorded event.
type Contact struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Event is a recorded touch event.
type Event struct {
	// Offset is the time since the recording started.
	Offset   time.Duration `json:"offset"`
	Phase    gesture.Phase `json:"phase"`
	Contacts []Contact     `json:"contacts"`
}

// Trace is a recorded touch session.
type Trace struct {
	ID      uuid.UUID `json:"id"`
	Created time.Time `json:"created"`
	Source  string    `json:"source,omitempty"`
	Events  []Event   `json:"events"`
}

// Duration returns the offset of the last event.
func (t Trace) Duration() time.Duration {
	if len(t.Events) == 0 {
		return 0
	}
	return t.Events[len(t.Events)-1].Offset
}

// Validate checks that t has events in non-decreasing time order.
func (t Trace) Validate() error {
	if len(t.Events) == 0 {
		return ErrEmptyTrace
	}
	var last time.Duration
	for i, ev := range t.Events {
		if ev.Offset < last {
			return fmt.Errorf("event %d at %v precedes event %d at %v", i, ev.Offset, i-1, last)
		}
		last = ev.Offset
	}
	return nil
}

// touchEvent converts ev to a touch event at start+Offset.
func (ev Event) touchEvent(start time.Time) gesture.TouchEvent {
	changed := make([]gesture.Contact, len(ev.Contacts))
	for i, c := range ev.Contacts {
		changed[i] = gesture.Contact{ID: c.ID, X: c.X, Y: c.Y}
	}
	return gesture.TouchEvent{
		Phase:   ev.Phase,
		Changed: changed,
		Time:    start.Add(ev.Offset),
	}
}

// Save writes t as indented JSON.
func Save(w io.Writer, t Trace) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// Load reads and validates a trace.
func Load(r io.Reader) (Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return Trace{}, fmt.Errorf("decoding trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Trace{}, err
	}
	return t, nil
}

// SaveFile writes t to path.
func SaveFile(path string, t Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := Save(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads the trace at path.
func LoadFile(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return Trace{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
