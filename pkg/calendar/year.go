package calendar

import (
	"time"

	"github.com/iota-uz/officelife/pkg/constants"
)

// Day is one generated calendar entry. Dates are UTC midnights.
type Day struct {
	Date     time.Time
	IsWorked bool
}

func (d Day) DayOfWeek() int { return int(d.Date.Weekday()) }
func (d Day) DayOfYear() int { return d.Date.YearDay() }
func (d Day) Key() string    { return d.Date.Format(constants.DateFormat) }

// Overrides forces the worked flag of specific dates, keyed by YYYY-MM-DD.
type Overrides map[string]bool

func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysIn(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

func IsWorkingWeekday(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// GenerateYear returns one entry per day of year. Weekends are not worked
// unless overrides say otherwise.
func GenerateYear(year int, overrides Overrides) []Day {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := DaysIn(year)
	days := make([]Day, 0, n)
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i)
		worked := IsWorkingWeekday(date.Weekday())
		if v, ok := overrides[date.Format(constants.DateFormat)]; ok {
			worked = v
		}
		days = append(days, Day{Date: date, IsWorked: worked})
	}
	return days
}

func WorkedDays(days []Day) int {
	total := 0
	for _, d := range days {
		if d.IsWorked {
			total++
		}
	}
	return total
}
