package gesture

import (
	"testing"
	"time"
)

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.RecordEvent(PhaseStart)
	m.RecordGesture(KindTap)
	m.RecordAmbiguous()
	m.RecordCancelled()
	m.RecordLongPressAborted()
	m.RecordLatency(time.Millisecond)
	m.SetEnabled(true)
	m.Reset()

	if s := m.Snapshot(); s.TotalGestures() != 0 {
		t.Errorf("nil Snapshot TotalGestures() = %d", s.TotalGestures())
	}
}

func TestMetricsDisabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)
	m.RecordGesture(KindTap)
	if n := m.Snapshot().Gestures[KindTap]; n != 0 {
		t.Errorf("disabled metrics counted %d taps", n)
	}
}

func TestMetricsPeakLatencyAndReset(t *testing.T) {
	m := NewMetrics()
	m.RecordLatency(2 * time.Millisecond)
	m.RecordLatency(time.Millisecond)
	m.RecordGesture(KindSwipeUp)

	s := m.Snapshot()
	if s.PeakLatency != 2*time.Millisecond {
		t.Errorf("PeakLatency = %v, want 2ms", s.PeakLatency)
	}
	if s.Gestures[KindSwipeUp] != 1 {
		t.Errorf("swipe-up count = %d, want 1", s.Gestures[KindSwipeUp])
	}

	m.Reset()
	s = m.Snapshot()
	if s.PeakLatency != 0 || s.TotalGestures() != 0 {
		t.Errorf("after Reset: %+v", s)
	}
}
