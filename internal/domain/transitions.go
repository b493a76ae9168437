package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStatus is returned when a status string is not a known appointment status
	ErrUnknownStatus = errors.New("unknown appointment status")
)

// allowedTransitions is the appointment lifecycle state machine:
// pending -> confirmed -> completed, with cancelled and no_show reachable
// only from an active state. Terminal states have no outgoing edges.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransition reports whether the lifecycle permits moving from one status to another
func CanTransition(from, to AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus validates and converts a status string
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}
