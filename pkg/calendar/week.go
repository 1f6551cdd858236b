package calendar

import "time"

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekBounds returns Monday 00:00:00 and Sunday 23:59:59 of the week
// containing t, in t's location.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}
