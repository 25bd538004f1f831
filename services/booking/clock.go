// File: services/booking/clock.go
package booking

import (
	"fmt"
	"time"

	"reservekit/config"
)

// DateLayout is the only accepted booking date format.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD date string strictly: lexical shape and
// calendar validity. time.Parse normalizes overflow (2024-13-40 becomes a
// real date), so the round trip back to string is the validity check.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %q", dateStr)
	}
	if t.Format(DateLayout) != dateStr {
		return time.Time{}, fmt.Errorf("not a valid calendar date: %q", dateStr)
	}
	return t, nil
}

// WeekdayOf returns the configured weekday index of the given date in the
// service's timezone. The day boundary is the service's local midnight, not
// UTC: a date string names the same wall-clock day everywhere, so the date
// is re-anchored in the service zone before the weekday is read.
func WeekdayOf(date time.Time, timezone string) (int, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, fmt.Errorf("unrecognized timezone %q: %w", timezone, err)
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), 12, 0, 0, 0, loc)
	return weekdayIndex(local.Weekday()), nil
}

// weekdayIndex maps Go's time.Weekday onto the wire day_of_week convention.
// Default is 0=Sunday..6=Saturday; WEEK_START=monday shifts to 0=Monday.
func weekdayIndex(wd time.Weekday) int {
	if config.AppConfig.WeekStart == "monday" {
		return (int(wd) + 6) % 7
	}
	return int(wd)
}
