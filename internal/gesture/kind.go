package gesture

// Kind identifies a recognized gesture.
type Kind uint8

const (
	// KindNone is the zero Kind.
	KindNone Kind = iota
	// KindTap is a single tap.
	KindTap
	// KindDoubleTap is a second tap completing a double tap.
	KindDoubleTap
	// KindLongPress is a stationary hold.
	KindLongPress
	// KindSwipeLeft is a swipe towards negative X.
	KindSwipeLeft
	// KindSwipeRight is a swipe towards positive X.
	KindSwipeRight
	// KindSwipeUp is a swipe towards negative Y.
	KindSwipeUp
	// KindSwipeDown is a swipe towards positive Y.
	KindSwipeDown
	// KindPinch is a two-finger scale change.
	KindPinch
	// KindRotate is a two-finger angle change.
	KindRotate

	kindCount
)

// Kinds lists every gesture kind except KindNone.
var Kinds = [...]Kind{
	KindTap, KindDoubleTap, KindLongPress,
	KindSwipeLeft, KindSwipeRight, KindSwipeUp, KindSwipeDown,
	KindPinch, KindRotate,
}

// String returns the kind's stable name.
func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindDoubleTap:
		return "double-tap"
	case KindLongPress:
		return "long-press"
	case KindSwipeLeft:
		return "swipe-left"
	case KindSwipeRight:
		return "swipe-right"
	case KindSwipeUp:
		return "swipe-up"
	case KindSwipeDown:
		return "swipe-down"
	case KindPinch:
		return "pinch"
	case KindRotate:
		return "rotate"
	default:
		return "none"
	}
}

// ParseKind converts a kind name back to a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// IsSwipe returns true for the four directional swipes.
func (k Kind) IsSwipe() bool {
	return k >= KindSwipeLeft && k <= KindSwipeDown
}

// IsContinuous returns true for gestures that fire on every qualifying move.
func (k Kind) IsContinuous() bool {
	return k == KindPinch || k == KindRotate
}
