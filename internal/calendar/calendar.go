package calendar

import "time"

// Holidays is an immutable set of non-working dates, keyed by UTC midnight.
// It is loaded once from configuration and passed explicitly into every
// calendar function; there is no package-level holiday state.
type Holidays map[time.Time]struct{}

// NewHolidays normalizes the given dates to UTC midnight and builds a set.
func NewHolidays(dates []time.Time) Holidays {
	h := make(Holidays, len(dates))
	for _, d := range dates {
		h[Normalize(d)] = struct{}{}
	}
	return h
}

// Contains reports whether the date is a holiday.
func (h Holidays) Contains(d time.Time) bool {
	_, ok := h[Normalize(d)]
	return ok
}

// Normalize truncates a date to UTC midnight so comparisons ignore the
// time-of-day and zone the caller happened to carry.
func Normalize(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether d is a weekday that is not a holiday.
func IsBusinessDay(d time.Time, holidays Holidays) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !holidays.Contains(d)
}

// CountBusinessDays counts business days in the closed interval [start, end],
// including both endpoints when they are business days. Returns 0 when end is
// before start.
func CountBusinessDays(start, end time.Time, holidays Holidays) int {
	start, end = Normalize(start), Normalize(end)
	if end.Before(start) {
		return 0
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsBusinessDay(d, holidays) {
			count++
		}
	}
	return count
}

// AddBusinessDays walks forward from start until n business days have been
// counted, counting start itself when it is a business day, and returns the
// date of the n-th one. n = 0 returns start unchanged.
func AddBusinessDays(start time.Time, n int, holidays Holidays) time.Time {
	d := Normalize(start)
	if n <= 0 {
		return d
	}
	counted := 0
	for {
		if IsBusinessDay(d, holidays) {
			counted++
			if counted == n {
				return d
			}
		}
		d = d.AddDate(0, 0, 1)
	}
}

// SubtractBusinessDays is the backward counterpart of AddBusinessDays:
// it walks back from end until n business days have been counted, counting
// end itself when it is a business day.
func SubtractBusinessDays(end time.Time, n int, holidays Holidays) time.Time {
	d := Normalize(end)
	if n <= 0 {
		return d
	}
	counted := 0
	for {
		if IsBusinessDay(d, holidays) {
			counted++
			if counted == n {
				return d
			}
		}
		d = d.AddDate(0, 0, -1)
	}
}
