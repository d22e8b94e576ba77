// Package gesture recognizes touch gestures for breathing-session controls.
//
// The gesture package turns a stream of raw multi-touch events (start, move,
// end, cancel) into discrete gestures: tap, double tap, long press, four
// directional swipes, plus streaming pinch-zoom and rotation for two-finger
// interactions.
//
// # Recognizer
//
// A Recognizer is bound to one Surface and one set of Callbacks:
//
//	r := gesture.New(surface, gesture.Callbacks{
//	    OnTap:       func(p gesture.Point) { togglePlay() },
//	    OnSwipeLeft: func() { nextPattern() },
//	    OnPinchZoom: func(scale float64) { zoom(scale) },
//	})
//	defer r.Destroy()
//
// The surface delivers events to the recognizer through listeners the
// recognizer registers itself. Hosts without a Surface can pass nil and push
// events with Handle.
//
// # Classification
//
// A completed single-touch interaction is a tap when it moved less than
// TapThreshold and lasted less than TapMaxDuration, and a swipe when it moved
// more than SwipeThreshold. Anything in between produces no gesture. A tap
// that lands within DoubleTapDelay and 2×TapThreshold of the previous tap is
// reported as a double tap instead, and consumes the previous tap.
//
// A long press fires while the finger is still down, LongPressDelay after the
// first contact, unless any move, release, cancel or second contact happens
// first.
//
// Two-finger interactions are measured against the distance and angle the
// fingers had when the second one landed. Pinch and rotate callbacks fire on
// every qualifying move, not once per gesture.
//
// # Thread Safety
//
// Recognizer is safe for concurrent use. State is guarded by a mutex and
// callbacks run after it is released, so a callback may call back into the
// recognizer.
package gesture
