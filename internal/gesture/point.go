package gesture

import (
	"math"
	"time"
)

// Point is one finger's position at one instant.
type Point struct {
	X    float64
	Y    float64
	Time time.Time
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Angle returns the angle in radians of the line from p to other, measured
// from the positive X axis, in the range [-Pi, Pi].
func (p Point) Angle(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Contact is a single touch contact carried by an event.
type Contact struct {
	// ID is assigned by the input source. It is stable while the finger is
	// down and may be reused after release.
	ID int

	X float64
	Y float64
}

// point stamps the contact's position with t.
func (c Contact) point(t time.Time) Point {
	return Point{X: c.X, Y: c.Y, Time: t}
}
