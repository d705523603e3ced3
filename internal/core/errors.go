package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden operation")
)

var (
	// ErrInvalidProfile is returned when a rating profile violates an input
	// invariant. Profiles are rejected, never clamped.
	ErrInvalidProfile = fmt.Errorf("%w: invalid rating profile", ErrValidation)

	// ErrNumbersExhausted is returned when policy number generation keeps
	// colliding with already issued numbers. It signals a near-saturated
	// suffix space rather than a transient failure, so it is surfaced to the
	// caller instead of being retried indefinitely.
	ErrNumbersExhausted = fmt.Errorf("%w: policy number space exhausted", ErrConflict)

	ErrAlreadyCancelled = fmt.Errorf("%w: policy is already cancelled", ErrInvalidState)
	ErrMissingReason    = fmt.Errorf("%w: cancellation reason is required", ErrValidation)
)
