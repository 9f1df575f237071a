package app

import "time"

// Clock abstracts wall time so the pause gate is testable without
// real waits.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
