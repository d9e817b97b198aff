package errs

import (
	"errors"
	"fmt"
)

// Dispatch error kinds. Every kind is a definitive outcome of the current
// state; none of them is retried internally.
var (
	ErrInvalidCoordinate  = errors.New("invalid coordinate")
	ErrMissingCoordinates = errors.New("missing coordinates")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrInvalidState       = errors.New("invalid state")
	ErrAlreadyAssigned    = errors.New("already assigned")
	ErrCourierUnavailable = errors.New("courier unavailable")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrStorage            = errors.New("storage error")
)

// DispatchError carries one of the dispatch error kinds together with the
// subject it refers to and an optional underlying cause.
//
// Both Kind and Cause take part in errors.Is / errors.As matching:
//
//	err := errs.NewStorageError("update courier", pgErr)
//	errors.Is(err, errs.ErrStorage) // true
//	errors.Is(err, pgErr)           // true
type DispatchError struct {
	Kind    error
	Subject string
	Detail  string
	Cause   error
}

func (e *DispatchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Subject)
	if e.Detail != "" {
		msg += ", " + e.Detail
	}
	return withCause(msg, e.Cause)
}

func (e *DispatchError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// NewInvalidCoordinateError reports a NaN, infinite or out of range coordinate.
func NewInvalidCoordinateError(paramName string, value float64) *DispatchError {
	return &DispatchError{
		Kind:    ErrInvalidCoordinate,
		Subject: paramName,
		Detail:  fmt.Sprintf("got %v", value),
	}
}

// NewMissingCoordinatesError reports that subject has no known location.
func NewMissingCoordinatesError(subject string) *DispatchError {
	return &DispatchError{Kind: ErrMissingCoordinates, Subject: subject}
}

// NewInvalidTransitionError reports a state machine request outside of the allowed values.
func NewInvalidTransitionError(subject string, from, to fmt.Stringer) *DispatchError {
	return &DispatchError{
		Kind:    ErrInvalidTransition,
		Subject: subject,
		Detail:  fmt.Sprintf("%s -> %s", from, to),
	}
}

// NewInvalidStateError reports an operation that the current state does not permit.
func NewInvalidStateError(subject, detail string) *DispatchError {
	return &DispatchError{Kind: ErrInvalidState, Subject: subject, Detail: detail}
}

// NewAlreadyAssignedError reports an order that already has a courier.
func NewAlreadyAssignedError(orderID fmt.Stringer) *DispatchError {
	return &DispatchError{Kind: ErrAlreadyAssigned, Subject: "order " + orderID.String()}
}

// NewCourierUnavailableError reports a courier that cannot take new orders.
func NewCourierUnavailableError(courierID fmt.Stringer, reason string) *DispatchError {
	return &DispatchError{Kind: ErrCourierUnavailable, Subject: "courier " + courierID.String(), Detail: reason}
}

// NewInvalidOrderStatusError reports an order status transition dispatch is not allowed to make.
func NewInvalidOrderStatusError(from, to fmt.Stringer) *DispatchError {
	return &DispatchError{
		Kind:    ErrInvalidOrderStatus,
		Subject: "order status",
		Detail:  fmt.Sprintf("%s -> %s", from, to),
	}
}

// NewStorageError wraps a persistence failure so that callers can classify it
// without depending on the driver.
func NewStorageError(operation string, cause error) *DispatchError {
	return &DispatchError{Kind: ErrStorage, Subject: operation, Cause: cause}
}
