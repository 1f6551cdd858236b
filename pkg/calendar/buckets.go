package calendar

import (
	"sort"
	"time"
)

type DayBucket struct {
	Date  time.Time
	Count int
}

type MonthBucket struct {
	Month time.Month
	Count int
}

// DailyBuckets counts events per day of year, one bucket per day.
func DailyBuckets(year int, events []time.Time) []DayBucket {
	counts := make(map[int]int)
	for _, e := range events {
		if e.Year() == year {
			counts[e.YearDay()]++
		}
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := DaysIn(year)
	out := make([]DayBucket, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DayBucket{Date: start.AddDate(0, 0, i), Count: counts[i+1]})
	}
	return out
}

// MonthlyBuckets counts events per month of year, always twelve buckets.
func MonthlyBuckets(year int, events []time.Time) []MonthBucket {
	var counts [12]int
	for _, e := range events {
		if e.Year() == year {
			counts[e.Month()-1]++
		}
	}
	out := make([]MonthBucket, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, MonthBucket{Month: m, Count: counts[m-1]})
	}
	return out
}

// DistinctYears returns the years present in events, ascending.
func DistinctYears(events []time.Time) []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, e := range events {
		if _, ok := seen[e.Year()]; ok {
			continue
		}
		seen[e.Year()] = struct{}{}
		years = append(years, e.Year())
	}
	sort.Ints(years)
	return years
}
