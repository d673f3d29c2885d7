package adapters

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// SystemClock reports the wall clock in the application time zone.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock creates a clock for loc. A nil loc means UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// Now returns the current time in the configured location.
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

var _ adapter.Clock = (*SystemClock)(nil)
