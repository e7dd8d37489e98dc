package booking

import "time"

// Clock supplies the current instant. Injected so expiry and cutoff checks
// are testable with a fixed time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
