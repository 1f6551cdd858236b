package calendar

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Engine binds the pure date functions to an injected clock and location.
type Engine struct {
	clock clockwork.Clock
	loc   *time.Location
}

func NewEngine(clock clockwork.Clock, loc *time.Location) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{clock: clock, loc: loc}
}

func (e *Engine) Clock() clockwork.Clock   { return e.clock }
func (e *Engine) Location() *time.Location { return e.loc }

func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

func (e *Engine) Today() time.Time {
	return StartOfDay(e.Now())
}

func (e *Engine) CurrentWeek() (time.Time, time.Time) {
	return WeekBounds(e.Now())
}

func (e *Engine) NextWeek() (time.Time, time.Time) {
	return WeekBounds(e.Today().AddDate(0, 0, 7))
}

func (e *Engine) NextOccurrence(month time.Month, day int) time.Time {
	return NextOccurrence(month, day, e.Now())
}

// RollingWindows returns the yesterday, trailing-week and previous-month
// windows relative to now.
func (e *Engine) RollingWindows() (Window, Window, Window) {
	now := e.Now()
	return Yesterday(now), TrailingWeek(now), PreviousMonth(now)
}
