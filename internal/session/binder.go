package session

import (
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/breathe/internal/gesture"
)

// Binder resolves gestures to commands and dispatches them.
type Binder struct {
	mu         sync.RWMutex
	dispatcher Dispatcher
	bindings   Bindings
	script     *Script
	logger     *zap.Logger
}

// BinderOption configures a Binder.
type BinderOption func(*Binder)

// WithScript consults s before the bindings.
func WithScript(s *Script) BinderOption {
	return func(b *Binder) {
		b.script = s
	}
}

// WithLogger sets the binder's logger.
func WithLogger(l *zap.Logger) BinderOption {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBinder creates a binder that sends commands to d. A nil bindings map
// binds nothing.
func NewBinder(d Dispatcher, bindings Bindings, opts ...BinderOption) *Binder {
	b := &Binder{
		dispatcher: d,
		bindings:   maps.Clone(bindings),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Callbacks returns recognizer callbacks that feed every gesture to Handle.
func (b *Binder) Callbacks() gesture.Callbacks {
	return gesture.CallbacksFunc(b.Handle)
}

// Handle resolves g and dispatches the resulting command, if any. Script
// failures are logged and fall back to the bindings.
func (b *Binder) Handle(g gesture.Gesture) {
	name, ok := b.Resolve(g)
	if !ok {
		b.logger.Debug("gesture unbound", zap.Stringer("kind", g.Kind))
		return
	}
	if b.dispatcher == nil {
		return
	}
	b.dispatcher.Dispatch(Command{
		Name:  name,
		Kind:  g.Kind,
		Point: g.Point,
		Value: g.Value,
	})
}

// Resolve returns the command name for g.
func (b *Binder) Resolve(g gesture.Gesture) (string, bool) {
	b.mu.RLock()
	script := b.script
	name, bound := b.bindings[g.Kind]
	b.mu.RUnlock()

	if script != nil {
		scripted, ok, err := script.Resolve(g)
		switch {
		case err != nil:
			b.logger.Warn("script failed",
				zap.String("script", script.Name()),
				zap.Stringer("kind", g.Kind),
				zap.Error(err))
		case ok:
			return scripted, scripted != ""
		}
	}
	return name, bound && name != ""
}

// SetBindings replaces the bindings.
func (b *Binder) SetBindings(bindings Bindings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings = maps.Clone(bindings)
}

// Bindings returns a copy of the current bindings.
func (b *Binder) Bindings() Bindings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.bindings)
}

// SetScript replaces the script and returns the previous one, which the
// caller should close. A nil script disables scripting.
func (b *Binder) SetScript(s *Script) *Script {
	b.mu.Lock()
	defer b.mu.Unlock()
	prev := b.script
	b.script = s
	return prev
}
