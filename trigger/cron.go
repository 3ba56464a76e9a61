package trigger

import (
	"fmt"
	"time"

	"github.com/quintans/cronseq/cron"
)

// CronTrigger computes fire times from a five-field cron expression,
// implementing the trigger.Trigger interface.
type CronTrigger struct {
	expr     string
	schedule *cron.Schedule
}

// NewCronTrigger returns a new CronTrigger.
func NewCronTrigger(expr string) (*CronTrigger, error) {
	schedule, err := cron.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cron expression: %w", err)
	}

	return &CronTrigger{expr: expr, schedule: schedule}, nil
}

// NextFireTime returns the first occurrence strictly after prev.
func (ct *CronTrigger) NextFireTime(prev time.Time) (time.Time, error) {
	return ct.schedule.Upcoming(cron.WithStartTime(prev)).Next()
}

// FirstDelay returns how long until the trigger fires for the first time,
// measured from now.
func (ct *CronTrigger) FirstDelay() (time.Duration, error) {
	now := time.Now()
	next, err := ct.schedule.Upcoming(cron.WithStartTime(now)).Next()
	if err != nil {
		return 0, err
	}
	return next.Sub(now), nil
}

// Description returns a CronTrigger description.
func (ct *CronTrigger) Description() string {
	return fmt.Sprintf("CronTrigger %q.", ct.expr)
}
