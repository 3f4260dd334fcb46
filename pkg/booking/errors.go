package booking

import (
	"errors"
	"fmt"
	"time"

	"carrental/pkg/models"
)

var (
	ErrCarNotFound         = errors.New("car not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ValidationError reports malformed booking input (bad dates, unknown enum
// values). It is safe to surface to clients.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConflictError is returned when a requested interval overlaps a blocking
// reservation. It carries the blocking range so the client can show it.
type ConflictError struct {
	Start time.Time
	End   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("car is already reserved from %s to %s",
		e.Start.Format(DateFormat), e.End.Format(DateFormat))
}

// InvalidTransitionError reports a status change the state machine forbids.
type InvalidTransitionError struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change reservation status from %s to %s", e.From, e.To)
}
