package calendar

import (
	"fmt"
	"time"
)

const (
	ShortDate    = "Jan 02, 2006"
	LogTimestamp = "Jan 02, 2006 3:04 PM"
)

func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// MonthDay formats t as "January 5th".
func MonthDay(t time.Time) string {
	return t.Month().String() + " " + Ordinal(t.Day())
}

// ShortMonthDay formats t as "Jan 5th".
func ShortMonthDay(t time.Time) string {
	return t.Format("Jan") + " " + Ordinal(t.Day())
}

// WeekdayMonthDay formats t as "Monday (Jan 8th)".
func WeekdayMonthDay(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Weekday(), ShortMonthDay(t))
}
