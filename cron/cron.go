// Package cron parses five-field cron expressions and computes the
// occurrences at which they fire, as an unbounded forward-only sequence
// of timestamps. It does not execute anything: the consumer owns
// scheduling and dispatch, this package only answers "when".
package cron

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidExpression reports a cron expression that does not conform
	// to the five-field grammar or contains a field the parser cannot
	// interpret.
	ErrInvalidExpression = errors.New("invalid cron expression")
	// ErrNotStarted reports a read of the current occurrence before any
	// occurrence was computed.
	ErrNotStarted = errors.New("no occurrence computed yet")
	// ErrUnsatisfiable reports that no occurrence was found within the
	// sequence search horizon.
	ErrUnsatisfiable = errors.New("no occurrence within the search horizon")
)

// fieldShape is the per-field grammar: a wildcard, a wildcard step, or a
// comma list of numbers and inclusive ranges. Bounds are checked separately
// against each field's legal range.
var fieldShape = regexp.MustCompile(`^(\*|\*/\d+|\d+(?:-\d+)?(?:,\d+(?:-\d+)?)*)$`)

// Parse validates expr against the cron grammar and assembles a Schedule.
// expr holds five whitespace separated fields in the fixed order
// minute, hour, day-of-month, month, weekday.
func Parse(expr string) (*Schedule, error) {
	fields, err := splitExpression(expr)
	if err != nil {
		return nil, err
	}
	return newSchedule(
		Spec(fields[0]),
		Spec(fields[1]),
		Spec(fields[2]),
		Spec(fields[3]),
		Spec(fields[4]),
	)
}

// MustParse is like Parse but panics if the expression is malformed.
// It simplifies initialization of package variables holding schedules.
func MustParse(expr string) *Schedule {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// New parses expr and positions a Sequence on it. It is shorthand for
// Parse followed by Schedule.Upcoming.
func New(expr string, opts ...Option) (*Sequence, error) {
	s, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return s.Upcoming(opts...), nil
}

// splitExpression applies the fixed-format grammar validation that guards
// the field parser: exactly five fields, each matching fieldShape, with
// every numeric literal inside its field's legal range.
func splitExpression(expr string) ([]string, error) {
	fields := strings.Fields(expr)
	if len(fields) != len(fieldRanges) {
		return nil, fmt.Errorf("expected 5 fields in %q, got %d: %w", expr, len(fields), ErrInvalidExpression)
	}
	for i, field := range fields {
		if !fieldShape.MatchString(field) {
			return nil, fmt.Errorf("malformed %s field %q: %w", fieldRanges[i].name, field, ErrInvalidExpression)
		}
		if err := checkBounds(field, fieldRanges[i]); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

// checkBounds verifies every literal number of a grammar-valid field against
// the field's legal range. Step divisors are not values and are skipped;
// values a step generates beyond the range are pruned at assembly instead.
func checkBounds(field string, r fieldRange) error {
	if field == "*" || strings.HasPrefix(field, "*/") {
		return nil
	}
	for _, part := range strings.Split(field, ",") {
		for _, lit := range strings.Split(part, "-") {
			v, err := strconv.Atoi(lit)
			if err != nil {
				return fmt.Errorf("malformed %s field %q: %w", r.name, field, ErrInvalidExpression)
			}
			if v < r.min || v > r.max {
				return fmt.Errorf("%s value %d out of range %d-%d: %w", r.name, v, r.min, r.max, ErrInvalidExpression)
			}
		}
	}
	return nil
}

// truncateToMinute drops seconds and sub-second components, keeping the
// wall clock fields intact in t's location.
func truncateToMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
