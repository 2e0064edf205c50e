package domain

import (
	"errors"
	"fmt"
)

// NotFoundError reports a referenced entity or relation that does not exist.
// Msg, when set, is the caller-facing text; otherwise it is derived from Resource.
type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// CapacityExceededError is returned when an enrollment would overflow a trip.
type CapacityExceededError struct {
	Msg string
	Err error
}

func (e CapacityExceededError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "capacity exceeded"
}

func (e CapacityExceededError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

var (
	ErrClientNotFound       = NotFoundError{Resource: "client", Msg: "Client not found"}
	ErrTripNotFound         = NotFoundError{Resource: "trip", Msg: "Trip not found"}
	ErrNoTripsFound         = NotFoundError{Resource: "trip", Msg: "No trips found"}
	ErrRegistrationNotFound = NotFoundError{Resource: "registration", Msg: "Registration not found"}
	ErrTooManyParticipants  = CapacityExceededError{Msg: "Too many participants"}
)

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsCapacityExceeded(err error) bool {
	var target CapacityExceededError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}
