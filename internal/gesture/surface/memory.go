// Package surface provides an in-process gesture.Surface.
//
// Memory behaves like a browser element for touch purposes: listeners run in
// registration order, passive listeners cannot suppress default handling, and
// default behaviors stay suppressed while any suppression is outstanding.
// It backs the recognizer tests and trace replay, and any host that receives
// touch input from somewhere other than a real surface.
package surface

import (
	"sync"
	"time"

	"github.com/dshills/breathe/internal/gesture"
)

type registration struct {
	id      uint64
	fn      gesture.Listener
	passive bool
}

// Memory is an in-memory touch surface. It is safe for concurrent use.
type Memory struct {
	mu         sync.Mutex
	listeners  map[gesture.Phase][]registration
	suppressed map[gesture.Behavior]int
	nextID     uint64
}

// NewMemory creates an empty surface.
func NewMemory() *Memory {
	return &Memory{
		listeners:  make(map[gesture.Phase][]registration),
		suppressed: make(map[gesture.Behavior]int),
	}
}

// AddListener implements gesture.Surface.
func (m *Memory) AddListener(phase gesture.Phase, fn gesture.Listener, opts gesture.ListenerOptions) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := m.nextID
	m.listeners[phase] = append(m.listeners[phase], registration{
		id:      id,
		fn:      fn,
		passive: opts.Passive,
	})

	var once sync.Once
	return func() {
		once.Do(func() { m.remove(phase, id) })
	}
}

func (m *Memory) remove(phase gesture.Phase, id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	regs := m.listeners[phase]
	for i, reg := range regs {
		if reg.id == id {
			m.listeners[phase] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// SuppressDefaults implements gesture.Surface.
func (m *Memory) SuppressDefaults(b gesture.Behavior) func() {
	bits := []gesture.Behavior{gesture.BehaviorContextMenu, gesture.BehaviorSelection}

	m.mu.Lock()
	for _, bit := range bits {
		if b.Has(bit) {
			m.suppressed[bit]++
		}
	}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for _, bit := range bits {
				if b.Has(bit) && m.suppressed[bit] > 0 {
					m.suppressed[bit]--
				}
			}
		})
	}
}

// Suppressed returns the default behaviors currently suppressed.
func (m *Memory) Suppressed() gesture.Behavior {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b gesture.Behavior
	for bit, n := range m.suppressed {
		if n > 0 {
			b |= bit
		}
	}
	return b
}

// ListenerCount returns the number of listeners registered for phase.
func (m *Memory) ListenerCount(phase gesture.Phase) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.listeners[phase])
}

// Dispatch delivers ev to the listeners for its phase and reports whether a
// non-passive listener prevented the default.
func (m *Memory) Dispatch(ev gesture.TouchEvent) bool {
	m.mu.Lock()
	regs := append([]registration(nil), m.listeners[ev.Phase]...)
	m.mu.Unlock()

	for _, reg := range regs {
		if reg.passive {
			view := ev
			view.Changed = append([]gesture.Contact(nil), ev.Changed...)
			reg.fn(&view)
			continue
		}
		reg.fn(&ev)
	}
	return ev.DefaultPrevented
}

// Start dispatches a touch start for contacts at t.
func (m *Memory) Start(t time.Time, contacts ...gesture.Contact) bool {
	return m.Dispatch(gesture.TouchEvent{Phase: gesture.PhaseStart, Changed: contacts, Time: t})
}

// Move dispatches a touch move for contacts at t.
func (m *Memory) Move(t time.Time, contacts ...gesture.Contact) bool {
	return m.Dispatch(gesture.TouchEvent{Phase: gesture.PhaseMove, Changed: contacts, Time: t})
}

// End dispatches a touch end for contacts at t.
func (m *Memory) End(t time.Time, contacts ...gesture.Contact) bool {
	return m.Dispatch(gesture.TouchEvent{Phase: gesture.PhaseEnd, Changed: contacts, Time: t})
}

// Cancel dispatches a touch cancel for contacts at t.
func (m *Memory) Cancel(t time.Time, contacts ...gesture.Contact) bool {
	return m.Dispatch(gesture.TouchEvent{Phase: gesture.PhaseCancel, Changed: contacts, Time: t})
}

// At builds a contact.
func At(id int, x, y float64) gesture.Contact {
	return gesture.Contact{ID: id, X: x, Y: y}
}
