// Package trigger exposes cron schedules through the fire-time contract a
// job scheduler consumes: given the previous fire time, compute the next.
package trigger

import (
	"time"
)

// Trigger is the Triggers interface.
// Triggers are the 'mechanism' by which occurrence times are computed;
// they never execute anything themselves.
type Trigger interface {

	// NextFireTime returns the next time at which the Trigger is scheduled to fire.
	NextFireTime(prev time.Time) (time.Time, error)

	// Description returns a Trigger description.
	Description() string
}
