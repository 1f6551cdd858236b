package calendar

import "time"

// NextOccurrence returns the first date on or after now's day that falls on
// month/day. February 29 resolves to March 1 in non-leap years.
func NextOccurrence(month time.Month, day int, now time.Time) time.Time {
	today := StartOfDay(now)
	candidate := occurrenceIn(today.Year(), month, day, now.Location())
	if candidate.Before(today) {
		candidate = occurrenceIn(today.Year()+1, month, day, now.Location())
	}
	return candidate
}

func occurrenceIn(year int, month time.Month, day int, loc *time.Location) time.Time {
	if month == time.February && day == 29 && !IsLeap(year) {
		return time.Date(year, time.March, 1, 0, 0, 0, 0, loc)
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
