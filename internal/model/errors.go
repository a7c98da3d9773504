package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets a missing class or
// student. Repositories return it directly so callers can errors.Is it.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed input (duration, date, time) before any
// conflict checking happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError signals that a candidate class overlaps an existing
// non-cancelled class on the same date. With is the occupying record.
type ConflictError struct {
	With *ClassSchedule
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time conflict with class %d at %s %s (%d min)",
		e.With.ID, e.With.ClassDate, e.With.StartTime, e.With.DurationMinutes)
}

// TransitionError signals a mark-status attempt the status machine forbids.
type TransitionError struct {
	From ClassStatus
	To   ClassStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition class status from %q to %q", e.From, e.To)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsTransition(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
