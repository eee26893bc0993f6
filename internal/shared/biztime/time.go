// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC; the business timezone is only used for
// date boundaries in activity-log range queries and report filters.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone location, initializing with the
// default if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// EndOfDayUTC returns the end of day (23:59:59.999999999) in business timezone, converted to UTC.
func EndOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	endOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 23, 59, 59, 999999999, Location())
	return endOfDay.UTC()
}

// ParseDateInBizTimezone parses a date string (YYYY-MM-DD) as business timezone
// midnight, then returns the UTC equivalent.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}
