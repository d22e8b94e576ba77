package gesture

import (
	"math"
	"sort"
)

// baseline is the distance and angle between two contacts at the moment the
// second one landed.
type baseline struct {
	// a and b are the contact IDs, a < b. The angle is measured from a to b.
	a, b int

	distance float64
	angle    float64
}

// captureBaseline measures the two active contacts. It returns false unless
// exactly two contacts are active.
func captureBaseline(touches map[int]Point) (baseline, bool) {
	if len(touches) != 2 {
		return baseline{}, false
	}
	ids := make([]int, 0, 2)
	for id := range touches {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pa, pb := touches[ids[0]], touches[ids[1]]
	return baseline{
		a:        ids[0],
		b:        ids[1],
		distance: pa.Distance(pb),
		angle:    pa.Angle(pb),
	}, true
}

// rebind points b at the two active contacts, keeping the captured distance
// and angle. It returns false unless exactly two contacts are active.
func (b baseline) rebind(touches map[int]Point) (baseline, bool) {
	next, ok := captureBaseline(touches)
	if !ok {
		return b, false
	}
	b.a, b.b = next.a, next.b
	return b, true
}

// measure returns the current distance and angle of the baseline's contacts.
// It returns false if either contact is no longer active.
func (b baseline) measure(touches map[int]Point) (distance, angle float64, ok bool) {
	pa, okA := touches[b.a]
	pb, okB := touches[b.b]
	if !okA || !okB {
		return 0, 0, false
	}
	return pa.Distance(pb), pa.Angle(pb), true
}

// evaluate returns the pinch and rotate gestures for the current positions.
// Either, both or neither may qualify. A zero-length baseline never reports a
// pinch, since no scale can be derived from it.
func (b baseline) evaluate(touches map[int]Point, cfg Config) []Gesture {
	distance, angle, ok := b.measure(touches)
	if !ok {
		return nil
	}

	var out []Gesture
	if b.distance > 0 && math.Abs(distance-b.distance) > cfg.PinchThreshold {
		out = append(out, Gesture{Kind: KindPinch, Value: distance / b.distance})
	}
	if delta := angle - b.angle; math.Abs(delta) > cfg.RotateThreshold {
		out = append(out, Gesture{Kind: KindRotate, Value: delta})
	}
	return out
}
