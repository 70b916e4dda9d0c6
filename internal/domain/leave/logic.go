package leave

import (
	"errors"
	"time"
)

// MidnightUTC drops the time-of-day and zone so day arithmetic cannot drift
// across timezones or DST boundaries.
func MidnightUTC(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CalculateDays returns the inclusive day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	start = MidnightUTC(start)
	end = MidnightUTC(end)
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}
