package session

import (
	"maps"

	"github.com/dshills/breathe/internal/gesture"
)

// Command names understood by the session controller.
const (
	CmdTogglePlay       = "session.togglePlay"
	CmdToggleFullscreen = "session.toggleFullscreen"
	CmdStop             = "session.stop"
	CmdNextPattern      = "session.nextPattern"
	CmdPreviousPattern  = "session.previousPattern"
	CmdToggleCamera     = "session.toggleCamera"
	CmdDismiss          = "session.dismiss"
	CmdZoom             = "view.zoom"
	CmdRotate           = "view.rotate"
)

// Command is a session action produced by a gesture.
type Command struct {
	Name  string
	Kind  gesture.Kind
	Point gesture.Point
	Value float64
}

// Dispatcher receives commands.
type Dispatcher interface {
	Dispatch(cmd Command)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(cmd Command)

// Dispatch calls f(cmd).
func (f DispatcherFunc) Dispatch(cmd Command) { f(cmd) }

// Bindings maps gesture kinds to command names. A missing or empty entry
// means the gesture does nothing.
type Bindings map[gesture.Kind]string

// DefaultBindings returns the stock gesture mapping.
func DefaultBindings() Bindings {
	return Bindings{
		gesture.KindTap:        CmdTogglePlay,
		gesture.KindDoubleTap:  CmdToggleFullscreen,
		gesture.KindLongPress:  CmdStop,
		gesture.KindSwipeLeft:  CmdNextPattern,
		gesture.KindSwipeRight: CmdPreviousPattern,
		gesture.KindSwipeUp:    CmdToggleCamera,
		gesture.KindSwipeDown:  CmdDismiss,
		gesture.KindPinch:      CmdZoom,
		gesture.KindRotate:     CmdRotate,
	}
}

// With returns a copy of b with overrides applied. An empty command in
// overrides unbinds that gesture.
func (b Bindings) With(overrides map[gesture.Kind]string) Bindings {
	out := maps.Clone(b)
	if out == nil {
		out = make(Bindings, len(overrides))
	}
	for kind, name := range overrides {
		if name == "" {
			delete(out, kind)
			continue
		}
		out[kind] = name
	}
	return out
}
