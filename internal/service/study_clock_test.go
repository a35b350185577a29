package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudyClockDayIdx(t *testing.T) {
	clock, err := NewStudyClock("2026-01-10", "UTC")
	require.NoError(t, err)

	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 1, 10, 0, 0, 1, 0, time.UTC), 0},
		{time.Date(2026, 1, 10, 23, 59, 59, 0, time.UTC), 0},
		{time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(2026, 1, 13, 6, 30, 0, 0, time.UTC), 3},
		{time.Date(2026, 1, 9, 18, 0, 0, 0, time.UTC), -1},
	}

	for _, tc := range cases {
		clock.Now = func() time.Time { return tc.now }
		assert.Equal(t, tc.want, clock.CurrentDayIdx(), "at %s", tc.now)
	}
}

func TestStudyClockTimezoneBoundary(t *testing.T) {
	clock, err := NewStudyClock("2026-01-10", "America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on Jan 11 is still 21:00 Jan 10 in New York.
	clock.Now = func() time.Time {
		return time.Date(2026, 1, 11, 2, 0, 0, 0, time.UTC)
	}
	assert.Equal(t, 0, clock.CurrentDayIdx())
}

func TestStudyClockRejectsBadInput(t *testing.T) {
	_, err := NewStudyClock("10.01.2026", "UTC")
	assert.Error(t, err)

	_, err = NewStudyClock("2026-01-10", "Not/AZone")
	assert.Error(t, err)
}
