package adapter

import "time"

// Clock returns the current instant in the application time zone.
type Clock interface {
	Now() time.Time
}
