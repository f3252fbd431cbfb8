package service

import (
	"time"

	"github.com/ViniDeiro/daily-icu/internal/clock"
	"github.com/ViniDeiro/daily-icu/internal/domain"
)

// DayState classifies a day record relative to the current wall clock.
type DayState string

const (
	// DayCurrent means the record's date is today: edits are free.
	DayCurrent DayState = "CURRENT"
	// DayRetroactive means the record's date is a past calendar day:
	// edits require an explicit override.
	DayRetroactive DayState = "RETROACTIVE"
)

// StateOf computes the day's state from the wall clock. The state is
// never stored: a day created just before midnight becomes retroactive
// the moment the date rolls over.
func StateOf(dayDate, now time.Time) DayState {
	if clock.SameCalendarDay(dayDate, now) {
		return DayCurrent
	}
	return DayRetroactive
}

// AuthorizeWrite is the write-boundary check for day edits. It returns
// nil when the day is current or the caller asked to override, and
// domain.ErrRetroBlocked otherwise.
func AuthorizeWrite(dayDate time.Time, override bool, now time.Time) error {
	if override || StateOf(dayDate, now) == DayCurrent {
		return nil
	}
	return domain.ErrRetroBlocked
}
