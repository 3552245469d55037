package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberService/pkg/types"
)

// AgendaConfig is a barber's working agenda used to derive the day's slots
type AgendaConfig struct {
	ID                          int64
	BarberID                    int64
	WorkStart                   types.TimeString
	WorkEnd                     types.TimeString
	LunchStart                  *types.TimeString
	LunchEnd                    *types.TimeString
	SessionDurationMinutes      int
	BreakBetweenSessionsMinutes int
	WorkingDays                 []time.Weekday
	MinBookingNoticeMinutes     int
	AdvanceBookingDays          int // 0 = unlimited
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// DefaultAgendaConfig returns the agenda used when a barber has none stored
func DefaultAgendaConfig(barberID int64) *AgendaConfig {
	lunchStart := types.TimeString(DefaultLunchStart)
	lunchEnd := types.TimeString(DefaultLunchEnd)

	return &AgendaConfig{
		BarberID:                    barberID,
		WorkStart:                   types.TimeString(DefaultWorkStart),
		WorkEnd:                     types.TimeString(DefaultWorkEnd),
		LunchStart:                  &lunchStart,
		LunchEnd:                    &lunchEnd,
		SessionDurationMinutes:      DefaultSessionDurationMinutes,
		BreakBetweenSessionsMinutes: DefaultBreakBetweenSessionsMinutes,
		WorkingDays:                 append([]time.Weekday(nil), DefaultWorkingDays...),
		MinBookingNoticeMinutes:     DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:          DefaultAdvanceBookingDays,
	}
}

// IsWorkingDay returns true if the barber works on the given weekday
func (c *AgendaConfig) IsWorkingDay(day time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// ShiftFor returns the shift window for the date, ok=false if the barber is off that day
func (c *AgendaConfig) ShiftFor(date time.Time) (ShiftWindow, bool) {
	if !c.IsWorkingDay(date.Weekday()) {
		return ShiftWindow{}, false
	}
	return ShiftWindow{Start: c.WorkStart, End: c.WorkEnd}, true
}

// Lunch returns the lunch window or nil if it is not configured
func (c *AgendaConfig) Lunch() *LunchWindow {
	if c.LunchStart == nil || c.LunchEnd == nil {
		return nil
	}
	return &LunchWindow{Start: *c.LunchStart, End: *c.LunchEnd}
}

// SlotConfig returns the session/break settings
func (c *AgendaConfig) SlotConfig() SlotConfig {
	return SlotConfig{
		SessionDurationMinutes:      c.SessionDurationMinutes,
		BreakBetweenSessionsMinutes: c.BreakBetweenSessionsMinutes,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (c *AgendaConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
