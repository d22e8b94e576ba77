package clock

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a Scheduler whose time only moves when Advance or AdvanceTo is
// called. Due callbacks run synchronously on the advancing goroutine, in
// deadline order, with the clock set to each deadline as it fires.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	nextID uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	v        *Virtual
	id       uint64
	deadline time.Time
	fn       func()
	stopped  bool
}

// NewVirtual creates a virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now implements Scheduler.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// AfterFunc implements Scheduler.
func (v *Virtual) AfterFunc(d time.Duration, f func()) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	t := &virtualTimer{
		v:        v,
		id:       v.nextID,
		deadline: v.now.Add(d),
		fn:       f,
	}
	v.timers = append(v.timers, t)
	return t
}

// Advance moves the clock forward by d, firing due timers.
func (v *Virtual) Advance(d time.Duration) {
	v.AdvanceTo(v.Now().Add(d))
}

// AdvanceTo moves the clock to target, firing every timer whose deadline is
// not after target. Moving backwards is a no-op.
func (v *Virtual) AdvanceTo(target time.Time) {
	for {
		v.mu.Lock()
		t := v.popDue(target)
		if t == nil {
			if target.After(v.now) {
				v.now = target
			}
			v.mu.Unlock()
			return
		}
		if t.deadline.After(v.now) {
			v.now = t.deadline
		}
		v.mu.Unlock()

		// Callbacks may schedule or stop timers, so run them unlocked.
		t.fn()
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// popDue removes and returns the earliest timer due at or before target.
// Must be called with mu held.
func (v *Virtual) popDue(target time.Time) *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].deadline.Equal(v.timers[j].deadline) {
			return v.timers[i].id < v.timers[j].id
		}
		return v.timers[i].deadline.Before(v.timers[j].deadline)
	})
	t := v.timers[0]
	if t.deadline.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	return t
}

// Stop implements Timer.
func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()

	if t.stopped {
		return false
	}
	for i, other := range t.v.timers {
		if other == t {
			t.v.timers = append(t.v.timers[:i], t.v.timers[i+1:]...)
			t.stopped = true
			return true
		}
	}
	return false
}
