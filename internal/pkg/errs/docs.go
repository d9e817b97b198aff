// Package errs provides the error types shared by the dispatch service.
//
// Two groups live here:
//   - generic validation families (ObjectNotFoundError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ValueIsRequiredError), each with a sentinel,
//     constructors with and without cause, and Unwrap to the sentinel;
//   - the dispatch taxonomy (ErrInvalidCoordinate, ErrMissingCoordinates,
//     ErrInvalidTransition, ErrInvalidState, ErrAlreadyAssigned,
//     ErrCourierUnavailable, ErrInvalidOrderStatus, ErrStorage) carried by
//     DispatchError.
//
// Callers classify errors with errors.Is against the sentinels; the HTTP
// adapter maps them to status codes in one place.
package errs
