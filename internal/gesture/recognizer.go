package gesture

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/breathe/internal/gesture/clock"
)

// Recognizer classifies touch events into gestures.
type Recognizer struct {
	mu        sync.Mutex
	config    Config
	callbacks Callbacks

	sched   clock.Scheduler
	logger  *zap.Logger
	metrics *Metrics

	// Active touch set, keyed by contact ID.
	touches map[int]Point

	// Current gesture session.
	state session

	// Pending long press, nil when none. longPressSeq identifies the armed
	// timer so a superseded callback can tell it is stale.
	longPress    clock.Timer
	longPressSeq uint64

	taps tapWindow

	// Surface registrations, released by Destroy.
	removers []func()
	restore  func()

	destroyed bool
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithConfig applies a partial configuration over the defaults.
func WithConfig(p ConfigPatch) Option {
	return func(r *Recognizer) {
		r.config = r.config.Apply(p)
	}
}

// WithScheduler sets the clock used for timestamps and timers.
func WithScheduler(s clock.Scheduler) Option {
	return func(r *Recognizer) {
		if s != nil {
			r.sched = s
		}
	}
}

// WithLogger sets the logger. Recognition outcomes are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(r *Recognizer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics tracker. A nil tracker disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Recognizer) {
		r.metrics = m
	}
}

// New creates a recognizer bound to s. If s is non-nil the recognizer
// registers its own listeners and suppresses the surface's context menu and
// text selection until Destroy. A nil surface is allowed; events are then
// delivered with Handle.
func New(s Surface, cb Callbacks, opts ...Option) *Recognizer {
	r := &Recognizer{
		config:    DefaultConfig(),
		callbacks: cb,
		sched:     clock.Real(),
		logger:    zap.NewNop(),
		metrics:   NewMetrics(),
		touches:   make(map[int]Point),
		state:     idle{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if s != nil {
		r.attach(s)
	}
	return r
}

// attach registers listeners on s. Start, move and end listeners are
// non-passive so they can suppress scrolling and zooming; cancel never needs
// to, so it is passive.
func (r *Recognizer) attach(s Surface) {
	for _, phase := range Phases {
		opts := ListenerOptions{Passive: phase == PhaseCancel}
		r.removers = append(r.removers, s.AddListener(phase, r.Handle, opts))
	}
	r.restore = s.SuppressDefaults(BehaviorContextMenu | BehaviorSelection)
}

// Handle processes one touch event. Events after Destroy are ignored.
func (r *Recognizer) Handle(ev *TouchEvent) {
	if ev == nil {
		return
	}
	began := time.Now()

	r.mu.Lock()
	if r.destroyed || r.sched == nil {
		r.mu.Unlock()
		return
	}
	if ev.Time.IsZero() {
		ev.Time = r.sched.Now()
	}
	r.metrics.RecordEvent(ev.Phase)

	var out []emission
	switch ev.Phase {
	case PhaseStart:
		r.handleStart(ev)
	case PhaseMove:
		out = r.handleMove(ev)
	case PhaseEnd:
		out = r.handleEnd(ev)
	case PhaseCancel:
		r.handleCancel()
	}
	r.mu.Unlock()

	fire(out)
	r.metrics.RecordLatency(time.Since(began))
}

// handleStart records new contacts. The first contact starts single-touch
// tracking and arms the long-press timer; the second switches to multi-touch
// and captures the baseline.
func (r *Recognizer) handleStart(ev *TouchEvent) {
	ev.PreventDefault()

	for _, c := range ev.Changed {
		_, existed := r.touches[c.ID]
		r.touches[c.ID] = c.point(ev.Time)
		if existed {
			continue
		}

		switch len(r.touches) {
		case 1:
			p := r.touches[c.ID]
			r.state = tracking{id: c.ID, start: p}
			r.armLongPress(p)
		case 2:
			r.stopLongPress()
			if b, ok := captureBaseline(r.touches); ok {
				r.state = multiTouch{base: b}
			}
		}
	}
}

// handleMove updates tracked contacts. Any motion disqualifies a long press.
func (r *Recognizer) handleMove(ev *TouchEvent) []emission {
	ev.PreventDefault()

	for _, c := range ev.Changed {
		if _, ok := r.touches[c.ID]; ok {
			r.touches[c.ID] = c.point(ev.Time)
		}
	}
	r.stopLongPress()

	if len(r.touches) != 2 {
		return nil
	}
	mt, ok := r.state.(multiTouch)
	if !ok {
		return nil
	}

	var out []emission
	for _, g := range mt.base.evaluate(r.touches, r.config) {
		out = r.emit(g, out)
	}
	return out
}

// handleEnd removes lifted contacts. When the last contact of a single-touch
// interaction lifts, the interaction is classified. A multi-touch baseline
// follows whichever two contacts remain.
func (r *Recognizer) handleEnd(ev *TouchEvent) []emission {
	ev.PreventDefault()
	r.stopLongPress()

	ended := make(map[int]Contact, len(ev.Changed))
	for _, c := range ev.Changed {
		if _, ok := r.touches[c.ID]; ok {
			ended[c.ID] = c
		}
	}

	var out []emission
	if len(ended) > 0 && len(ended) == len(r.touches) {
		if tr, ok := r.state.(tracking); ok {
			last, ok := ended[tr.id]
			if !ok {
				last = ev.Changed[0]
			}
			out = r.release(tr.start, last.point(ev.Time))
		}
	}

	for id := range ended {
		delete(r.touches, id)
	}
	if mt, ok := r.state.(multiTouch); ok {
		switch {
		case len(r.touches) < 2:
			r.state = idle{}
		case len(r.touches) == 2:
			// A baseline contact may have lifted while a third stayed down.
			if b, ok := mt.base.rebind(r.touches); ok {
				r.state = multiTouch{base: b}
			}
		}
	}
	if len(r.touches) == 0 {
		r.state = idle{}
	}
	return out
}

// handleCancel aborts the interaction without reporting a gesture.
func (r *Recognizer) handleCancel() {
	if len(r.touches) > 0 || r.state.mode() != ModeIdle {
		r.metrics.RecordCancelled()
	}
	r.stopLongPress()
	clear(r.touches)
	r.state = idle{}
}

// release classifies a completed single-touch interaction.
func (r *Recognizer) release(start, end Point) []emission {
	kind := classify(start, end, r.config)
	distance := start.Distance(end)
	duration := end.Time.Sub(start.Time)

	switch {
	case kind == KindTap:
		kind = r.recordTap(end)
	case kind.IsSwipe():
	default:
		r.metrics.RecordAmbiguous()
		r.logger.Debug("interaction produced no gesture",
			zap.Float64("distance", distance),
			zap.Duration("duration", duration))
		return nil
	}

	r.logger.Debug("gesture recognized",
		zap.Stringer("kind", kind),
		zap.Float64("distance", distance),
		zap.Duration("duration", duration))
	return r.emit(Gesture{Kind: kind, Point: end}, nil)
}

// recordTap resolves a tap at p against the previous one. A pair becomes a
// double tap and consumes the previous tap; otherwise p is remembered until
// DoubleTapDelay passes.
func (r *Recognizer) recordTap(p Point) Kind {
	if r.taps.pairs(p, r.config) {
		r.taps.clear()
		return KindDoubleTap
	}

	r.taps.clear()
	last := p
	r.taps.last = &last
	seq := r.taps.seq
	r.taps.expiry = r.sched.AfterFunc(r.config.DoubleTapDelay, func() {
		r.expireTap(seq)
	})
	return KindTap
}

// expireTap forgets the remembered tap if seq still identifies it.
func (r *Recognizer) expireTap(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taps.seq != seq || !r.taps.pending() {
		return
	}
	r.taps.expiry = nil
	r.taps.clear()
}

// armLongPress schedules a long press at p.
func (r *Recognizer) armLongPress(p Point) {
	r.stopLongPress()
	r.longPressSeq++
	seq := r.longPressSeq
	r.longPress = r.sched.AfterFunc(r.config.LongPressDelay, func() {
		r.fireLongPress(seq, p)
	})
}

// fireLongPress reports the long press armed with seq, unless it has since
// been stopped or the recognizer destroyed.
func (r *Recognizer) fireLongPress(seq uint64, p Point) {
	r.mu.Lock()
	if r.destroyed || r.longPress == nil || seq != r.longPressSeq {
		r.mu.Unlock()
		return
	}
	r.longPress = nil

	r.logger.Debug("gesture recognized", zap.Stringer("kind", KindLongPress))
	out := r.emit(Gesture{Kind: KindLongPress, Point: p}, nil)
	r.mu.Unlock()

	fire(out)
}

// stopLongPress cancels a pending long press.
func (r *Recognizer) stopLongPress() {
	if r.longPress == nil {
		return
	}
	r.longPress.Stop()
	r.longPress = nil
	r.longPressSeq++
	r.metrics.RecordLongPressAborted()
}

// emit counts g and appends its bound callback to out, if one is set.
// Must be called with mu held.
func (r *Recognizer) emit(g Gesture, out []emission) []emission {
	r.metrics.RecordGesture(g.Kind)
	if e, ok := r.callbacks.emit(g); ok {
		out = append(out, e)
	}
	return out
}

// fire invokes collected callbacks. Must be called without mu held.
func fire(out []emission) {
	for _, e := range out {
		e.fire()
	}
}

// UpdateCallbacks merges cb into the current handlers. Nil handlers in cb
// leave the current ones in place. In-flight gesture state is kept.
func (r *Recognizer) UpdateCallbacks(cb Callbacks) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks = r.callbacks.Merge(cb)
}

// UpdateConfig merges p into the current configuration. In-flight gesture
// state is kept; an armed long-press timer keeps its original delay.
func (r *Recognizer) UpdateConfig(p ConfigPatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = r.config.Apply(p)
}

// Config returns the current configuration.
func (r *Recognizer) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.config
}

// Metrics returns the recognizer's metrics tracker, which may be nil.
func (r *Recognizer) Metrics() *Metrics {
	return r.metrics
}

// Mode returns the current gesture session mode.
func (r *Recognizer) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return ModeIdle
	}
	return r.state.mode()
}

// ActiveContacts returns the number of contacts currently down.
func (r *Recognizer) ActiveContacts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.touches)
}

// Destroyed returns true once Destroy has been called.
func (r *Recognizer) Destroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// Destroy removes the surface listeners, restores the surface defaults,
// stops pending timers and clears all state. It is idempotent and safe on a
// zero Recognizer. Timers that were already firing when Destroy ran see the
// destroyed flag and report nothing.
func (r *Recognizer) Destroy() {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	r.destroyed = true
	r.stopLongPress()
	r.taps.clear()
	clear(r.touches)
	r.state = idle{}

	removers := r.removers
	restore := r.restore
	r.removers = nil
	r.restore = nil
	r.mu.Unlock()

	for _, remove := range removers {
		remove()
	}
	if restore != nil {
		restore()
	}
}
