package calendar

import (
	"time"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimals displayed aggregates are rounded to.
const Precision = 3

type Sample struct {
	At    time.Time
	Value float64
}

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func Yesterday(now time.Time) Window {
	today := StartOfDay(now)
	return Window{Start: today.AddDate(0, 0, -1), End: today}
}

// TrailingWeek covers the seven full days before now's day.
func TrailingWeek(now time.Time) Window {
	today := StartOfDay(now)
	return Window{Start: today.AddDate(0, 0, -7), End: today}
}

func PreviousMonth(now time.Time) Window {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: first.AddDate(0, -1, 0), End: first}
}

type Aggregate struct {
	Average decimal.Decimal
	Percent int
	Samples int
}

func (a Aggregate) Empty() bool { return a.Samples == 0 }

func (a Aggregate) AverageFloat() float64 {
	f, _ := a.Average.Float64()
	return f
}

// Mean averages the samples inside w, rounded to Precision decimals. Percent
// is the rounded average expressed against scale. An empty window yields the
// zero Aggregate.
func Mean(samples []Sample, w Window, scale int) Aggregate {
	sum := decimal.Zero
	n := 0
	for _, s := range samples {
		if !w.Contains(s.At) {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(s.Value))
		n++
	}
	if n == 0 {
		return Aggregate{Average: decimal.Zero}
	}
	avg := sum.Div(decimal.NewFromInt(int64(n))).Round(Precision)
	percent := 0
	if scale > 0 {
		percent = int(avg.Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(scale))).
			Round(0).
			IntPart())
	}
	return Aggregate{Average: avg, Percent: percent, Samples: n}
}
