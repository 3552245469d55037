package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// ShiftWindow is the barber's working hours for a day
type ShiftWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// LunchWindow is a sub-interval of the shift excluded from slot generation
type LunchWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// SlotConfig holds the session length and the pause after each session
type SlotConfig struct {
	SessionDurationMinutes      int
	BreakBetweenSessionsMinutes int
}

// StepMinutes returns the distance between two consecutive slot starts
func (c SlotConfig) StepMinutes() int {
	return c.SessionDurationMinutes + c.BreakBetweenSessionsMinutes
}

// DayBounds returns the first and last millisecond of the date's calendar day in loc
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
