package service

import "time"

// Clock supplies "now" to the rules; tests pin it.
type Clock func() time.Time

func SystemClock() Clock {
	return time.Now
}
