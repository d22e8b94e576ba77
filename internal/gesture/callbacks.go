package gesture

// Callbacks holds the gesture handlers. Any handler may be nil.
type Callbacks struct {
	OnTap       func(p Point)
	OnDoubleTap func(p Point)
	OnLongPress func(p Point)

	OnSwipeLeft  func()
	OnSwipeRight func()
	OnSwipeUp    func()
	OnSwipeDown  func()

	// OnPinchZoom receives the current finger distance divided by the
	// distance when the second finger landed. It fires on every qualifying
	// move, so handlers should treat it as an absolute value.
	OnPinchZoom func(scale float64)

	// OnRotate receives the signed angle change in radians since the second
	// finger landed. It fires on every qualifying move.
	OnRotate func(delta float64)
}

// Merge returns c with every non-nil handler of other replacing c's.
func (c Callbacks) Merge(other Callbacks) Callbacks {
	if other.OnTap != nil {
		c.OnTap = other.OnTap
	}
	if other.OnDoubleTap != nil {
		c.OnDoubleTap = other.OnDoubleTap
	}
	if other.OnLongPress != nil {
		c.OnLongPress = other.OnLongPress
	}
	if other.OnSwipeLeft != nil {
		c.OnSwipeLeft = other.OnSwipeLeft
	}
	if other.OnSwipeRight != nil {
		c.OnSwipeRight = other.OnSwipeRight
	}
	if other.OnSwipeUp != nil {
		c.OnSwipeUp = other.OnSwipeUp
	}
	if other.OnSwipeDown != nil {
		c.OnSwipeDown = other.OnSwipeDown
	}
	if other.OnPinchZoom != nil {
		c.OnPinchZoom = other.OnPinchZoom
	}
	if other.OnRotate != nil {
		c.OnRotate = other.OnRotate
	}
	return c
}

// Gesture is one recognized gesture, as passed to a Callbacks built by
// CallbacksFunc.
type Gesture struct {
	Kind Kind

	// Point is set for tap, double tap and long press.
	Point Point

	// Value is the scale for pinch and the angle delta for rotate.
	Value float64
}

// CallbacksFunc returns Callbacks that route every gesture kind to fn.
func CallbacksFunc(fn func(g Gesture)) Callbacks {
	point := func(k Kind) func(Point) {
		return func(p Point) { fn(Gesture{Kind: k, Point: p}) }
	}
	plain := func(k Kind) func() {
		return func() { fn(Gesture{Kind: k}) }
	}
	value := func(k Kind) func(float64) {
		return func(v float64) { fn(Gesture{Kind: k, Value: v}) }
	}
	return Callbacks{
		OnTap:        point(KindTap),
		OnDoubleTap:  point(KindDoubleTap),
		OnLongPress:  point(KindLongPress),
		OnSwipeLeft:  plain(KindSwipeLeft),
		OnSwipeRight: plain(KindSwipeRight),
		OnSwipeUp:    plain(KindSwipeUp),
		OnSwipeDown:  plain(KindSwipeDown),
		OnPinchZoom:  value(KindPinch),
		OnRotate:     value(KindRotate),
	}
}

// Call invokes the handler for g.Kind and reports whether one was set.
func (c Callbacks) Call(g Gesture) bool {
	e, ok := c.emit(g)
	if ok {
		e.fire()
	}
	return ok
}

// emission is a callback bound to its arguments, invoked after the
// recognizer's lock is released.
type emission struct {
	kind Kind
	fire func()
}

// emit builds the emission for g against c. It returns false if c has no
// handler for g.Kind.
func (c Callbacks) emit(g Gesture) (emission, bool) {
	var fire func()
	switch g.Kind {
	case KindTap:
		if h := c.OnTap; h != nil {
			fire = func() { h(g.Point) }
		}
	case KindDoubleTap:
		if h := c.OnDoubleTap; h != nil {
			fire = func() { h(g.Point) }
		}
	case KindLongPress:
		if h := c.OnLongPress; h != nil {
			fire = func() { h(g.Point) }
		}
	case KindSwipeLeft:
		fire = c.OnSwipeLeft
	case KindSwipeRight:
		fire = c.OnSwipeRight
	case KindSwipeUp:
		fire = c.OnSwipeUp
	case KindSwipeDown:
		fire = c.OnSwipeDown
	case KindPinch:
		if h := c.OnPinchZoom; h != nil {
			fire = func() { h(g.Value) }
		}
	case KindRotate:
		if h := c.OnRotate; h != nil {
			fire = func() { h(g.Value) }
		}
	}
	if fire == nil {
		return emission{}, false
	}
	return emission{kind: g.Kind, fire: fire}, true
}
