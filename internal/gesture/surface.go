package gesture

// Listener receives touch events from a Surface.
type Listener func(ev *TouchEvent)

// ListenerOptions configures a listener registration.
type ListenerOptions struct {
	// Passive listeners promise not to suppress default handling. Calls to
	// PreventDefault from a passive listener are ignored by the surface.
	Passive bool
}

// Behavior is a set of platform default behaviors a surface can suppress.
type Behavior uint8

const (
	// BehaviorContextMenu is the long-press or right-click context menu.
	BehaviorContextMenu Behavior = 1 << iota
	// BehaviorSelection is text selection and its callout.
	BehaviorSelection
)

// Has returns true if b includes other.
func (b Behavior) Has(other Behavior) bool {
	return b&other == other
}

// Surface is an interactive area that delivers touch events.
type Surface interface {
	// AddListener registers fn for events of the given phase and returns a
	// function that removes the registration. The remove function is safe to
	// call more than once.
	AddListener(phase Phase, fn Listener, opts ListenerOptions) (remove func())

	// SuppressDefaults disables the given default behaviors until the
	// returned restore function is called.
	SuppressDefaults(b Behavior) (restore func())
}
