package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingPolicy_IsClosed(t *testing.T) {
	policy := BookingPolicy{
		ClosedWeekdays: []time.Weekday{time.Sunday},
		ClosedDates:    []time.Time{time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)},
	}

	// 2026-09-13 is a Sunday, 2026-09-14 a Monday
	assert.True(t, policy.IsClosed(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)))
	assert.False(t, policy.IsClosed(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)))

	// Specific closed date, regardless of weekday (a Friday)
	assert.True(t, policy.IsClosed(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	assert.False(t, policy.IsClosed(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)))
}

func TestBookingPolicy_WithinHorizon(t *testing.T) {
	policy := BookingPolicy{AdvanceBookingDays: 30}
	now := time.Date(2026, 9, 14, 15, 45, 0, 0, time.UTC)

	day := func(offset int) time.Time {
		return time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "yesterday", date: day(-1), want: false},
		{name: "today is not bookable", date: day(0), want: false},
		{name: "tomorrow", date: day(1), want: true},
		{name: "mid window", date: day(15), want: true},
		{name: "last day of window", date: day(30), want: true},
		{name: "one past the window", date: day(31), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.WithinHorizon(tt.date, now))
		})
	}
}

func TestBookingPolicy_WithinHorizon_IgnoresTimeOfDay(t *testing.T) {
	policy := BookingPolicy{AdvanceBookingDays: 30}
	now := time.Date(2026, 9, 14, 23, 59, 0, 0, time.UTC)

	// Tomorrow early morning is still within the window even late at night
	tomorrow := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, policy.WithinHorizon(tomorrow, now))
}

func TestDefaultBookingPolicy(t *testing.T) {
	policy := DefaultBookingPolicy()

	assert.Equal(t, StatusConfirmed, policy.InitialStatus)
	assert.Equal(t, 24*time.Hour, policy.CancellationWindow)
	assert.Equal(t, 30, policy.AdvanceBookingDays)
	assert.Equal(t, []time.Weekday{time.Sunday}, policy.ClosedWeekdays)
}
