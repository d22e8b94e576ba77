// Package clock abstracts time for the gesture recognizer.
//
// The recognizer needs two things from time: the current instant (to stamp
// events that arrive without one) and cancellable deferred callbacks (the
// long-press timer and the double-tap expiry). Real returns a Scheduler backed
// by the time package; Virtual is advanced by hand and is used for tests and
// trace replay.
package clock

import "time"

// Timer is a pending deferred callback.
type Timer interface {
	// Stop prevents the callback from firing. It returns false if the
	// callback already fired or the timer was already stopped.
	Stop() bool
}

// Scheduler provides the current time and deferred callbacks.
type Scheduler interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc calls f after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Real returns a Scheduler backed by the wall clock.
func Real() Scheduler {
	return realScheduler{}
}

type realScheduler struct{}

// Now implements Scheduler.
func (realScheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Scheduler.
func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
