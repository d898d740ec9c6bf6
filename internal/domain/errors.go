package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for the failure kinds surfaced by the core. Callers match
// with errors.Is; the richer typed errors below wrap these and carry the
// offending identifiers for user-facing messages.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidRange        = errors.New("end date must be after start date")
	ErrResourceUnavailable = errors.New("car is not available")
	ErrBookingConflict     = errors.New("booking time overlaps")
	ErrInvalidTransition   = errors.New("invalid status transition")

	ErrDuplicateLicensePlate = errors.New("license plate already exists")
	ErrDuplicateEmail        = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
)

// NotFoundError reports a missing entity by kind ("user", "car", "booking")
// and id.
type NotFoundError struct {
	Kind string
	ID   int32
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InvalidRangeError carries the rejected date range.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range [%s, %s): end date must be after start date",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// UnavailableError reports a car that is not in AVAILABLE state at booking
// time.
type UnavailableError struct {
	CarID  int32
	Status CarStatus
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("car %d is not available (status %s)", e.CarID, e.Status)
}

func (e *UnavailableError) Unwrap() error { return ErrResourceUnavailable }

// ConflictError reports an overlapping reservation on the same car.
type ConflictError struct {
	CarID             int32
	ConflictingBookID int32
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking time overlaps with booking %d on car %d", e.ConflictingBookID, e.CarID)
}

func (e *ConflictError) Unwrap() error { return ErrBookingConflict }

// TransitionError reports a rejected booking status transition.
type TransitionError struct {
	BookingID int32
	From      BookingStatus
	To        BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("booking %d: cannot transition from %s to %s", e.BookingID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
