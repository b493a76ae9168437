package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat is the wall-clock format used across the module (HH:MM)
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeString is returned when a string does not match HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfRange is returned when time arithmetic leaves the 00:00-23:59 range
	ErrTimeOutOfRange = errors.New("time out of range")
)

// TimeString represents a local wall-clock time of day without a date,
// serialized as "HH:MM" (e.g. "09:30")
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String returns the "HH:MM" representation
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero returns true if the value is empty
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value matches the "HH:MM" format
func (ts TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return nil
}

// Minutes returns the number of minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	t, err := time.Parse(TimeFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, ts)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Results past midnight are rejected, a booking never crosses the day boundary.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s + %dm", ErrTimeOutOfRange, ts, minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether ts is strictly earlier than other
func (ts TimeString) IsBefore(other TimeString) bool {
	return string(ts) < string(other)
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return string(ts) > string(other)
}

// On anchors the wall-clock time to the given calendar day in the day's location
func (ts TimeString) On(date time.Time) (time.Time, error) {
	total, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, date.Location()), nil
}
