// Package clock provides an injectable time source so segmentation logic
// that depends on "now" stays deterministic under test.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake returns a fixed instant.
type Fake struct {
	Instant time.Time
}

func (f Fake) Now() time.Time { return f.Instant }
