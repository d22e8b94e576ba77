package gesture_test

import (
	"sync"
	"testing"
	"time"

	"github.com/dshills/breathe/internal/gesture"
	"github.com/dshills/breathe/internal/gesture/clock"
	"github.com/dshills/breathe/internal/gesture/surface"
)

// harness drives a recognizer through a memory surface on a virtual clock.
// Times are milliseconds from the harness start.
type harness struct {
	t     *testing.T
	start time.Time
	clk   *clock.Virtual
	surf  *surface.Memory
	rec   *gesture.Recognizer

	mu  sync.Mutex
	got []gesture.Gesture
	// firedAt records the clock offset of each callback.
	firedAt []time.Duration
}

func newHarness(t *testing.T, patch gesture.ConfigPatch) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		start: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		surf:  surface.NewMemory(),
	}
	h.clk = clock.NewVirtual(h.start)
	h.rec = gesture.New(h.surf, gesture.CallbacksFunc(h.record),
		gesture.WithConfig(patch),
		gesture.WithScheduler(h.clk),
	)
	t.Cleanup(h.rec.Destroy)
	return h
}

func (h *harness) record(g gesture.Gesture) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.got = append(h.got, g)
	h.firedAt = append(h.firedAt, h.clk.Now().Sub(h.start))
}

func (h *harness) at(ms int) time.Time {
	return h.start.Add(time.Duration(ms) * time.Millisecond)
}

// advance moves the clock to ms, firing due timers.
func (h *harness) advance(ms int) {
	h.clk.AdvanceTo(h.at(ms))
}

func (h *harness) down(ms int, contacts ...gesture.Contact) bool {
	h.advance(ms)
	return h.surf.Start(h.at(ms), contacts...)
}

func (h *harness) move(ms int, contacts ...gesture.Contact) bool {
	h.advance(ms)
	return h.surf.Move(h.at(ms), contacts...)
}

func (h *harness) up(ms int, contacts ...gesture.Contact) bool {
	h.advance(ms)
	return h.surf.End(h.at(ms), contacts...)
}

func (h *harness) cancel(ms int, contacts ...gesture.Contact) bool {
	h.advance(ms)
	return h.surf.Cancel(h.at(ms), contacts...)
}

// tap performs a single-finger press at (x, y) and release at (x+dx, y+dy).
func (h *harness) tap(ms, holdMS int, x, y, dx, dy float64) {
	h.down(ms, surface.At(0, x, y))
	h.up(ms+holdMS, surface.At(0, x+dx, y+dy))
}

func (h *harness) kinds() []gesture.Kind {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]gesture.Kind, len(h.got))
	for i, g := range h.got {
		out[i] = g.Kind
	}
	return out
}

func (h *harness) gestures() []gesture.Gesture {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]gesture.Gesture(nil), h.got...)
}

func (h *harness) expectKinds(want ...gesture.Kind) {
	h.t.Helper()
	got := h.kinds()
	if len(got) != len(want) {
		h.t.Fatalf("gestures = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			h.t.Fatalf("gestures = %v, want %v", got, want)
		}
	}
}
