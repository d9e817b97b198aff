package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the courier availability state.
//
// State transitions:
//
//	Available ──assign (load 0)──> EnRoute ──load back to 0──> Available
//	    any ──SetStatus──> Available | EnRoute | Busy | OffDuty
//
// Only Available and EnRoute couriers accept new orders.
type Status int

const (
	// Unknown is the zero value and never a valid state.
	Unknown Status = iota
	// Available couriers are idle and can be assigned.
	Available
	// EnRoute couriers carry at least one order and can still be assigned.
	EnRoute
	// Busy couriers are working but must not receive new orders.
	Busy
	// OffDuty couriers are out of shift.
	OffDuty
)

// Wire labels, shared with the storefront and the admin panel.
var statusLabels = map[Status]string{
	Available: "Disponible",
	EnRoute:   "En camino",
	Busy:      "Ocupado",
	OffDuty:   "Fuera de servicio",
}

// Statuses returns every valid status in declaration order.
func Statuses() []Status {
	return []Status{Available, EnRoute, Busy, OffDuty}
}

// ParseStatus maps a wire label back to its Status.
//
// Returns:
//   - Status: the matching status
//   - error: errs.ErrInvalidTransition when label is not one of the four values
//
// Example:
//
//	s, err := courier.ParseStatus("Fuera de servicio") // courier.OffDuty
func ParseStatus(label string) (Status, error) {
	for s, l := range statusLabels {
		if l == label {
			return s, nil
		}
	}
	return Unknown, errs.NewInvalidTransitionError("courier status", Unknown, rawLabel(label))
}

// Validate reports whether s is one of the four declared states.
func (s Status) Validate() error {
	if _, ok := statusLabels[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire label, or "Unknown".
func (s Status) String() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// AcceptsAssignments reports whether a courier in this state may take a new order.
func (s Status) AcceptsAssignments() bool {
	return s == Available || s == EnRoute
}

type rawLabel string

func (r rawLabel) String() string { return fmt.Sprintf("%q", string(r)) }
