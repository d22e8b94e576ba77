package trace

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/gesture/clock"
)

// Recorder captures the touch events delivered by a surface.
type Recorder struct {
	mu       sync.Mutex
	sched    clock.Scheduler
	trace    Trace
	last     time.Duration
	removers []func()
	stopped  bool
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock sets the clock used to stamp events that arrive without a time.
func WithClock(s clock.Scheduler) RecorderOption {
	return func(r *Recorder) {
		if s != nil {
			r.sched = s
		}
	}
}

// NewRecorder starts recording events from s. Its listeners are passive, so
// recording never changes how the surface or a recognizer behaves.
func NewRecorder(s gesture.Surface, source string, opts ...RecorderOption) *Recorder {
	r := &Recorder{sched: clock.Real()}
	for _, opt := range opts {
		opt(r)
	}
	r.trace = Trace{
		ID:      uuid.New(),
		Created: r.sched.Now(),
		Source:  source,
	}
	for _, phase := range gesture.Phases {
		r.removers = append(r.removers,
			s.AddListener(phase, r.record, gesture.ListenerOptions{Passive: true}))
	}
	return r
}

func (r *Recorder) record(ev *gesture.TouchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}

	at := ev.Time
	if at.IsZero() {
		at = r.sched.Now()
	}
	// Clock steps backwards are flattened so replay stays ordered.
	offset := max(at.Sub(r.trace.Created), r.last)
	r.last = offset

	contacts := make([]Contact, len(ev.Changed))
	for i, c := range ev.Changed {
		contacts[i] = Contact{ID: c.ID, X: c.X, Y: c.Y}
	}
	r.trace.Events = append(r.trace.Events, Event{
		Offset:   offset,
		Phase:    ev.Phase,
		Contacts: contacts,
	})
}

// Len returns the number of events recorded so far.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trace.Events)
}

// Trace returns a copy of what has been recorded so far.
func (r *Recorder) Trace() Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.trace
	t.Events = append([]Event(nil), r.trace.Events...)
	return t
}

// Stop detaches the recorder from its surface and returns the trace.
func (r *Recorder) Stop() Trace {
	r.mu.Lock()
	r.stopped = true
	removers := r.removers
	r.removers = nil
	r.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	return r.Trace()
}
