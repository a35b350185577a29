package service

import (
	"fmt"
	"time"
)

// StudyClock derives the logical study day index from the configured start
// date. Day 0 is the start date itself, in the study's timezone; calendar
// midnight rolls the index over, independent of when the process started.
type StudyClock struct {
	epoch time.Time
	loc   *time.Location

	// Now is swappable in tests.
	Now func() time.Time
}

func NewStudyClock(startDate, timezone string) (*StudyClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid study timezone %q: %w", timezone, err)
	}

	epoch, err := time.ParseInLocation("2006-01-02", startDate, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid study start date %q: %w", startDate, err)
	}

	return &StudyClock{
		epoch: epoch,
		loc:   loc,
		Now:   time.Now,
	}, nil
}

// CurrentDayIdx returns the number of whole calendar days elapsed since the
// study epoch. Negative before the study starts.
func (c *StudyClock) CurrentDayIdx() int {
	now := c.Now().In(c.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	return int(today.Sub(c.epoch).Hours() / 24)
}
