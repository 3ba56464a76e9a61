package cron

import (
	"fmt"
	"time"
)

// DefaultSearchHorizon bounds how far past the cursor a single advance will
// search before giving up with ErrUnsatisfiable. Ten years is enough for any
// satisfiable five-field expression short of pathological day-of-month plus
// weekday combinations; those callers can widen it with WithSearchHorizon.
const DefaultSearchHorizon = 10 * 366 * 24 * time.Hour

// Sequence is the unbounded forward-only stream of occurrences of one
// Schedule. It owns a single mutable cursor and is meant for exclusive use
// by one consumer; it is not safe for concurrent advancement.
type Sequence struct {
	schedule *Schedule
	cursor   time.Time
	horizon  time.Duration
	started  bool
}

// Option configures a Sequence at construction.
type Option func(*Sequence)

// WithStartTime sets the reference time the sequence advances from. The
// default is the current time. Seconds and sub-second components are
// truncated; the start time itself is never returned as an occurrence.
func WithStartTime(t time.Time) Option {
	return func(q *Sequence) {
		q.cursor = t
	}
}

// WithSearchHorizon overrides DefaultSearchHorizon for this sequence.
func WithSearchHorizon(d time.Duration) Option {
	return func(q *Sequence) {
		q.horizon = d
	}
}

// Upcoming positions a new Sequence on the schedule.
func (s *Schedule) Upcoming(opts ...Option) *Sequence {
	q := &Sequence{
		schedule: s,
		cursor:   time.Now(),
		horizon:  DefaultSearchHorizon,
	}
	for _, o := range opts {
		o(q)
	}
	q.cursor = truncateToMinute(q.cursor)
	return q
}

// Next advances the cursor to the next occurrence and returns it. The
// search starts one minute past the cursor and skips forward field by
// field: a month mismatch jumps to the first day of the following month,
// a weekday or day-of-month mismatch to the start of the next day, an
// hour mismatch to the top of the next hour, a minute mismatch by one
// minute. All jumps use calendar arithmetic, so month ends, leap years
// and year boundaries roll over correctly.
//
// If no occurrence exists within the search horizon (the schedule is
// unsatisfiable, e.g. day 31 of a month set without 31-day months, or a
// field resolved to an empty set), Next returns ErrUnsatisfiable.
func (q *Sequence) Next() (time.Time, error) {
	c := q.cursor.Add(time.Minute)
	deadline := c.Add(q.horizon)
	for {
		if c.After(deadline) {
			return time.Time{}, fmt.Errorf("gave up after %s: %w", q.horizon, ErrUnsatisfiable)
		}
		switch {
		case !q.schedule.month.contains(int(c.Month())):
			c = time.Date(c.Year(), c.Month()+1, 1, 0, 0, 0, 0, c.Location())
		case !q.schedule.weekday.contains(isoWeekday(c)):
			c = time.Date(c.Year(), c.Month(), c.Day()+1, 0, 0, 0, 0, c.Location())
		case !q.schedule.day.contains(c.Day()):
			c = time.Date(c.Year(), c.Month(), c.Day()+1, 0, 0, 0, 0, c.Location())
		case !q.schedule.hour.contains(c.Hour()):
			c = time.Date(c.Year(), c.Month(), c.Day(), c.Hour()+1, 0, 0, 0, c.Location())
		case !q.schedule.minute.contains(c.Minute()):
			c = c.Add(time.Minute)
		default:
			q.cursor = c
			q.started = true
			return c, nil
		}
	}
}

// Current returns the occurrence the sequence is positioned at. Calling it
// before the first successful Next is a usage error and returns
// ErrNotStarted.
func (q *Sequence) Current() (time.Time, error) {
	if !q.started {
		return time.Time{}, ErrNotStarted
	}
	return q.cursor, nil
}
