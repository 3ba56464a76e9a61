package cron

import (
	"sort"
	"time"
)

type fieldRange struct {
	name string
	min  int
	max  int
}

// fieldRanges are the legal value ranges, in expression order. Weekday
// accepts both 0 and 7 for Sunday; 0 is normalized to 7 before storage.
var fieldRanges = []fieldRange{
	{"minute", 0, 59},
	{"hour", 0, 23},
	{"day-of-month", 1, 31},
	{"month", 1, 12},
	{"weekday", 0, 7},
}

// fieldSet is a normalized field constraint: either "matches everything"
// or a deduplicated ascending sequence of in-range values.
type fieldSet struct {
	any    bool
	values []int
}

func (f fieldSet) contains(v int) bool {
	if f.any {
		return true
	}
	for _, x := range f.values {
		if x == v {
			return true
		}
	}
	return false
}

// Schedule is the immutable aggregate of the five normalized field sets
// derived from one cron expression. Use Parse to build one from text, or
// NewSchedule to build one from explicit field constraints.
type Schedule struct {
	minute  fieldSet
	hour    fieldSet
	day     fieldSet
	month   fieldSet
	weekday fieldSet
}

// NewSchedule assembles a Schedule from per-field constraints. Each
// constraint is resolved, filtered to the field's legal range and
// deduplicated; the weekday field additionally maps 0 to 7 first.
// Range filtering happens here, not in the field parser, so a constraint
// may legally resolve to an empty set: such a schedule never fires.
func NewSchedule(minute, hour, day, month, weekday Field) (*Schedule, error) {
	return newSchedule(minute, hour, day, month, weekday)
}

func newSchedule(minute, hour, day, month, weekday Field) (*Schedule, error) {
	s := &Schedule{}
	for i, a := range []struct {
		field  Field
		target *fieldSet
	}{
		{minute, &s.minute},
		{hour, &s.hour},
		{day, &s.day},
		{month, &s.month},
		{weekday, &s.weekday},
	} {
		fs, err := assemble(a.field, fieldRanges[i])
		if err != nil {
			return nil, err
		}
		*a.target = fs
	}
	return s, nil
}

func assemble(f Field, r fieldRange) (fieldSet, error) {
	vs, constrained, err := f.resolve()
	if err != nil {
		return fieldSet{}, err
	}
	if !constrained {
		return fieldSet{any: true}, nil
	}

	set := map[int]struct{}{}
	for _, v := range vs {
		if r.name == "weekday" && v == 0 {
			v = 7
		}
		if v < r.min || v > r.max {
			continue
		}
		set[v] = struct{}{}
	}
	kept := make([]int, 0, len(set))
	for v := range set {
		kept = append(kept, v)
	}
	sort.Ints(kept)
	return fieldSet{values: kept}, nil
}

// Matches reports whether all five field constraints hold at t.
// Day-of-month and weekday are independent AND conditions: when both are
// constrained, t must satisfy both, unlike POSIX cron's OR.
func (s *Schedule) Matches(t time.Time) bool {
	return s.minute.contains(t.Minute()) &&
		s.hour.contains(t.Hour()) &&
		s.day.contains(t.Day()) &&
		s.month.contains(int(t.Month())) &&
		s.weekday.contains(isoWeekday(t))
}

// isoWeekday maps time.Weekday (Sunday=0) to the stored convention where
// Sunday is 7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
