package gesture

import (
	"sync/atomic"
	"time"
)

// Metrics counts recognizer activity. All methods are safe on a nil *Metrics.
type Metrics struct {
	events   [len(Phases)]atomic.Uint64
	gestures [kindCount]atomic.Uint64

	// Interactions that ended without any gesture.
	ambiguous atomic.Uint64
	// Interactions aborted by touch cancel.
	cancelled atomic.Uint64
	// Long-press timers stopped before firing.
	longPressAborted atomic.Uint64

	peakLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates an enabled metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables collection.
func (m *Metrics) SetEnabled(enabled bool) {
	if m == nil {
		return
	}
	m.enabled.Store(enabled)
}

func (m *Metrics) active() bool {
	return m != nil && m.enabled.Load()
}

// RecordEvent counts a touch event.
func (m *Metrics) RecordEvent(p Phase) {
	if !m.active() || int(p) >= len(m.events) {
		return
	}
	m.events[p].Add(1)
}

// RecordGesture counts a recognized gesture.
func (m *Metrics) RecordGesture(k Kind) {
	if !m.active() || k >= kindCount {
		return
	}
	m.gestures[k].Add(1)
}

// RecordAmbiguous counts an interaction that produced no gesture.
func (m *Metrics) RecordAmbiguous() {
	if m.active() {
		m.ambiguous.Add(1)
	}
}

// RecordCancelled counts an interaction aborted by touch cancel.
func (m *Metrics) RecordCancelled() {
	if m.active() {
		m.cancelled.Add(1)
	}
}

// RecordLongPressAborted counts a long-press timer stopped before firing.
func (m *Metrics) RecordLongPressAborted() {
	if m.active() {
		m.longPressAborted.Add(1)
	}
}

// RecordLatency records how long one event took to process.
func (m *Metrics) RecordLatency(d time.Duration) {
	if !m.active() {
		return
	}
	ns := d.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if ns <= current {
			return
		}
		if m.peakLatency.CompareAndSwap(current, ns) {
			return
		}
	}
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Events           map[Phase]uint64
	Gestures         map[Kind]uint64
	Ambiguous        uint64
	Cancelled        uint64
	LongPressAborted uint64
	PeakLatency      time.Duration
	Uptime           time.Duration
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Events:   make(map[Phase]uint64),
		Gestures: make(map[Kind]uint64),
	}
	if m == nil {
		return s
	}
	for _, p := range Phases {
		if n := m.events[p].Load(); n > 0 {
			s.Events[p] = n
		}
	}
	for _, k := range Kinds {
		if n := m.gestures[k].Load(); n > 0 {
			s.Gestures[k] = n
		}
	}
	s.Ambiguous = m.ambiguous.Load()
	s.Cancelled = m.cancelled.Load()
	s.LongPressAborted = m.longPressAborted.Load()
	s.PeakLatency = time.Duration(m.peakLatency.Load())
	s.Uptime = time.Since(m.startTime)
	return s
}

// TotalGestures returns the number of gestures recognized.
func (s MetricsSnapshot) TotalGestures() uint64 {
	var total uint64
	for _, n := range s.Gestures {
		total += n
	}
	return total
}

// Reset zeroes all counters.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	for i := range m.events {
		m.events[i].Store(0)
	}
	for i := range m.gestures {
		m.gestures[i].Store(0)
	}
	m.ambiguous.Store(0)
	m.cancelled.Store(0)
	m.longPressAborted.Store(0)
	m.peakLatency.Store(0)
}
