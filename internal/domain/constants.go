package domain

import "time"

// Default agenda values
const (
	DefaultWorkStart                   = "09:00"
	DefaultWorkEnd                     = "18:00"
	DefaultLunchStart                  = "12:00"
	DefaultLunchEnd                    = "13:00"
	DefaultSessionDurationMinutes      = 30
	DefaultBreakBetweenSessionsMinutes = 0
	DefaultMinBookingNoticeMinutes     = 0
	DefaultAdvanceBookingDays          = 0 // 0 = unlimited
)

// DefaultWorkingDays понедельник - суббота
var DefaultWorkingDays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
}

// Business validation constants
const (
	MinSessionDurationMinutes = 5
	MaxSessionDurationMinutes = 480 // 8 hours
	MaxBreakBetweenSessions   = 240
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365 // 1 year
	MinBookingNoticeMinutes   = 0
	MaxBookingNoticeMinutes   = 10080 // 1 week
	MaxNotesLength            = 500
	MaxRejectionReasonLength  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
