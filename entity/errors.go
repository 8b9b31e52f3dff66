package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrAlreadyTicketed     = errors.New("reservation already ticketed")
	ErrTicketingInProgress = errors.New("ticketing already in progress")
)

// ValidationError is a local precondition failure. It never reaches the
// network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// TransportError is a network failure or timeout on an aggregator call.
// Budget is the timeout that applied, so callers can show "timed out after N".
type TransportError struct {
	Endpoint string
	Budget   time.Duration
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure after %s: %s", e.Endpoint, e.Budget, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SupplierError is a structured failure returned by the aggregator.
type SupplierError struct {
	Endpoint   string
	StatusCode int
	Code       int
	Message    string
}

func (e *SupplierError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: supplier rejected request: %s", e.Endpoint, e.Message)
	}
	return fmt.Sprintf("%s: supplier returned status %d", e.Endpoint, e.StatusCode)
}

// PartialFailure is the fare-rules side of a confirmation failing while the
// mandatory quote succeeded. Non-fatal; the confirmation remains usable.
type PartialFailure struct {
	Err error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("fare rules unavailable: %s", e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }

// TicketingFailure wraps a failed ticket call. The reservation stays valid
// and retryable.
type TicketingFailure struct {
	Family SupplierFamily
	Err    error
}

func (e *TicketingFailure) Error() string {
	return fmt.Sprintf("ticketing via %s failed: %s", e.Family, e.Err)
}

func (e *TicketingFailure) Unwrap() error { return e.Err }
