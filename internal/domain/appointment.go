package domain

import (
	"time"

	"github.com/m04kA/RBeauty-BookingClient/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a booked salon appointment
type Appointment struct {
	ID        string
	ClientID  string
	ServiceID string

	Date      time.Time // calendar day, no time component
	StartTime types.TimeString
	EndTime   types.TimeString // StartTime + service duration, fixed at creation
	Status    AppointmentStatus

	// Denormalized service data for history: captured at booking time,
	// later service edits never change past appointments
	ServiceName     string
	Price           float64
	DurationMinutes int

	Notes     *string
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// CanBeCancelled returns true if the appointment status allows cancellation
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// StartsAt returns the appointment start as a point in time on its date
func (a *Appointment) StartsAt() (time.Time, error) {
	return a.StartTime.On(a.Date)
}

// WithinCancellationWindow reports whether the time remaining until the start
// exceeds the given cancellation window
func (a *Appointment) WithinCancellationWindow(now time.Time, window time.Duration) (bool, error) {
	start, err := a.StartsAt()
	if err != nil {
		return false, err
	}
	return now.Before(start.Add(-window)), nil
}
