package cron_test

import (
	"testing"
	"time"

	"github.com/quintans/cronseq/cron"
	"github.com/stretchr/testify/require"
)

func TestSequenceMonthlyMidnight(t *testing.T) {
	start := time.Date(2021, time.January, 15, 10, 30, 0, 0, time.UTC)
	seq, err := cron.New("0 0 1 * *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.February, 1, 0, 0, 0, 0, time.UTC), next)

	next, err = seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), next)
}

func TestSequenceQuarterHour(t *testing.T) {
	start := time.Date(2021, time.January, 1, 0, 5, 0, 0, time.UTC)
	seq, err := cron.New("*/15 * * * *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.January, 1, 0, 15, 0, 0, time.UTC), next)

	next, err = seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.January, 1, 0, 30, 0, 0, time.UTC), next)
}

func TestSequenceSkipsWeekend(t *testing.T) {
	// Friday 10:00; the weekday window 1-5 already passed for the week.
	friday := time.Date(2021, time.January, 15, 10, 0, 0, 0, time.UTC)
	require.Equal(t, time.Friday, friday.Weekday())

	seq, err := cron.New("0 9 * * 1-5", cron.WithStartTime(friday))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.January, 18, 9, 0, 0, 0, time.UTC), next)
	require.Equal(t, time.Monday, next.Weekday())
}

func TestSequenceNeverReturnsStartTime(t *testing.T) {
	// The start time matches the schedule exactly; the first occurrence
	// must still be strictly after it.
	start := time.Date(2021, time.January, 15, 10, 30, 0, 0, time.UTC)
	seq, err := cron.New("30 10 * * *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.January, 16, 10, 30, 0, 0, time.UTC), next)
}

func TestSequenceTruncatesStartToMinute(t *testing.T) {
	start := time.Date(2021, time.January, 1, 10, 30, 45, 123456789, time.UTC)
	seq, err := cron.New("*/15 * * * *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2021, time.January, 1, 10, 45, 0, 0, time.UTC), next)
}

func TestSequenceStrictlyIncreasingWholeMinutes(t *testing.T) {
	start := time.Date(2021, time.February, 26, 23, 50, 0, 0, time.UTC)
	seq, err := cron.New("*/20 6-8 * * *", cron.WithStartTime(start))
	require.NoError(t, err)

	prev := start
	for i := 0; i < 50; i++ {
		next, err := seq.Next()
		require.NoError(t, err)
		require.True(t, next.After(prev), "occurrence %d not after %s", i, prev)
		require.Zero(t, next.Second())
		require.Zero(t, next.Nanosecond())
		prev = next
	}
}

func TestSequenceLeapYearRollover(t *testing.T) {
	start := time.Date(2020, time.February, 28, 12, 0, 0, 0, time.UTC)
	seq, err := cron.New("0 0 29 2 *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), next)

	next, err = seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), next)
}

func TestSequenceYearBoundary(t *testing.T) {
	start := time.Date(2021, time.December, 31, 23, 50, 0, 0, time.UTC)
	seq, err := cron.New("0 0 1 1 *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)
	require.Equal(t, time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC), next)
}

func TestSequenceCurrentBeforeNext(t *testing.T) {
	seq, err := cron.New("* * * * *")
	require.NoError(t, err)

	_, err = seq.Current()
	require.ErrorIs(t, err, cron.ErrNotStarted)
}

func TestSequenceCurrentTracksLastOccurrence(t *testing.T) {
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	seq, err := cron.New("*/10 * * * *", cron.WithStartTime(start))
	require.NoError(t, err)

	next, err := seq.Next()
	require.NoError(t, err)

	current, err := seq.Current()
	require.NoError(t, err)
	require.Equal(t, next, current)

	_, err = seq.Next()
	require.NoError(t, err)
	current, err = seq.Current()
	require.NoError(t, err)
	require.True(t, current.After(next))
}

func TestSequenceUnsatisfiableSchedule(t *testing.T) {
	// February never has a 31st; a bounded horizon turns the otherwise
	// endless search into an error.
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	seq, err := cron.New("0 0 31 2 *",
		cron.WithStartTime(start),
		cron.WithSearchHorizon(400*24*time.Hour),
	)
	require.NoError(t, err)

	_, err = seq.Next()
	require.ErrorIs(t, err, cron.ErrUnsatisfiable)
}
