package domain

import "time"

// Default booking policy values
const (
	DefaultCancellationWindowHours = 24
	DefaultAdvanceBookingDays      = 30
	DefaultInitialStatus           = StatusConfirmed
)

// Business validation constants
const (
	MinAdvanceBookingDays = 1   // today is never bookable, the window starts tomorrow
	MaxAdvanceBookingDays = 365 // 1 year
	MaxNotesLength        = 500
	DefaultPageLimit      = 10
	MaxPageLimit          = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultClosedWeekdays are the weekdays the salon never accepts bookings on.
// A fixed business rule, distinct from per-date closures.
var DefaultClosedWeekdays = []time.Weekday{time.Sunday}

// InactiveStatuses lists statuses that no longer occupy a slot
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses lists statuses that occupy a slot or are part of history
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
