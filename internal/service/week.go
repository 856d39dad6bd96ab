package service

import "time"

// ResolveWeek maps an arbitrary reference date to the canonical Monday-Sunday
// window containing it. Dates are treated as calendar dates in UTC; the
// reference's time of day is discarded. Both the planner and the shopping
// list derive their ranges through this single function so the two surfaces
// can never disagree about week boundaries.
func ResolveWeek(reference time.Time) (start, end time.Time) {
	ref := TruncateToDate(reference)

	offset := 1 - int(ref.Weekday())
	if ref.Weekday() == time.Sunday {
		offset = -6
	}

	start = ref.AddDate(0, 0, offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// TruncateToDate drops the time-of-day component, yielding midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
