package services

import (
	"time"

	"github.com/arnold/habits-api/internal/dateutil"
)

// Clock supplies the current instant. Tests pin it to a fixed date.
type Clock func() time.Time

// UTCClock is the production clock.
func UTCClock() time.Time {
	return time.Now().UTC()
}

func (c Clock) now() time.Time {
	if c == nil {
		return UTCClock()
	}
	return c()
}

// today is the UTC calendar date of the clock's instant.
func (c Clock) today() string {
	return dateutil.Format(c.now().UTC())
}
