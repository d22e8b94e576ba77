package gesture

import "math"

// classify decides what a completed single-touch interaction was. It returns
// KindTap for tap candidates (the caller resolves double taps), one of the
// swipe kinds, or KindNone. NaN coordinates fail every comparison and yield
// KindNone.
func classify(start, end Point, cfg Config) Kind {
	distance := start.Distance(end)
	duration := end.Time.Sub(start.Time)

	if distance < cfg.TapThreshold && duration < cfg.TapMaxDuration {
		return KindTap
	}
	if distance > cfg.SwipeThreshold {
		return swipeDirection(end.X-start.X, end.Y-start.Y)
	}
	return KindNone
}

// swipeDirection picks the swipe along the axis with the larger displacement.
// Equal displacement counts as horizontal. Y grows downward.
func swipeDirection(dx, dy float64) Kind {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return KindSwipeRight
		}
		return KindSwipeLeft
	}
	if dy > 0 {
		return KindSwipeDown
	}
	return KindSwipeUp
}
