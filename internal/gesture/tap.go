package gesture

import "github.com/dshills/breathe/internal/gesture/clock"

// tapWindow remembers the most recent unpaired tap so the next one can be
// recognized as a double tap.
type tapWindow struct {
	// last is the previous tap, or nil.
	last *Point

	// expiry clears last after DoubleTapDelay.
	expiry clock.Timer

	// seq identifies the current expiry timer.
	seq uint64
}

// pairs returns true if a tap at p completes a double tap with the last one.
// A negative age (clock skew) never pairs.
func (w *tapWindow) pairs(p Point, cfg Config) bool {
	if w.last == nil {
		return false
	}
	age := p.Time.Sub(w.last.Time)
	if age < 0 || age >= cfg.DoubleTapDelay {
		return false
	}
	return w.last.Distance(p) < 2*cfg.TapThreshold
}

// clear forgets the last tap and stops its expiry timer.
func (w *tapWindow) clear() {
	if w.expiry != nil {
		w.expiry.Stop()
		w.expiry = nil
	}
	w.last = nil
	w.seq++
}

// pending returns true if a tap is waiting for a partner.
func (w *tapWindow) pending() bool {
	return w.last != nil
}
