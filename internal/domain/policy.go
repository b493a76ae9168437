package domain

import "time"

// BookingPolicy holds the business rules governing booking and cancellation.
// Whether new appointments start as pending or confirmed differs per backend
// deployment, so it is explicit configuration, never assumed.
type BookingPolicy struct {
	InitialStatus      AppointmentStatus
	CancellationWindow time.Duration
	AdvanceBookingDays int
	ClosedWeekdays     []time.Weekday
	ClosedDates        []time.Time // specific closed days, truncated to midnight
}

// DefaultBookingPolicy returns the observed default policy:
// confirmed on creation, 24h cancellation window, 30-day horizon, closed on Sundays
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		InitialStatus:      DefaultInitialStatus,
		CancellationWindow: DefaultCancellationWindowHours * time.Hour,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		ClosedWeekdays:     DefaultClosedWeekdays,
	}
}

// IsClosed reports whether the salon does not accept bookings on the given date
func (p BookingPolicy) IsClosed(date time.Time) bool {
	for _, wd := range p.ClosedWeekdays {
		if date.Weekday() == wd {
			return true
		}
	}
	for _, closed := range p.ClosedDates {
		if sameDay(date, closed) {
			return true
		}
	}
	return false
}

// WithinHorizon reports whether the date falls inside the bookable window:
// tomorrow through now + AdvanceBookingDays
func (p BookingPolicy) WithinHorizon(date, now time.Time) bool {
	today := truncateToDay(now)
	d := truncateToDay(date)

	if !d.After(today) {
		return false
	}
	return !d.After(today.AddDate(0, 0, p.AdvanceBookingDays))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
