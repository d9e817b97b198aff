package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status mirrors the order lifecycle owned by the order service. Dispatch
// only ever moves an order between Pending and OnTheWay; the other values
// are carried so the projection can hold whatever the order service reports.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending orders wait for a courier.
	Pending

	// InPreparation orders are being cooked.
	InPreparation

	// OnTheWay orders have a courier assigned.
	OnTheWay

	// Delivered is final.
	Delivered

	// Cancelled is final.
	Cancelled
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown has no wire label
	return map[Status]string{
		Pending:       "Pendiente",
		InPreparation: "En preparación",
		OnTheWay:      "En camino",
		Delivered:     "Entregado",
		Cancelled:     "Cancelado",
	}
}

// ParseStatus maps a wire label ("Pendiente", "En camino", ...) to its Status.
func ParseStatus(label string) (Status, error) {
	for s, l := range getStatusStrings() {
		if l == label {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", label))
}

// Validate checks if the Status value is one of the declared states.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire label of the status, or "Unknown".
//
// Example:
//
//	fmt.Println(order.OnTheWay) // Output: "En camino"
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateCanHaveCourier validates the consistency between order status and courier assignment.
//
// Business Rules:
//   - Pending and InPreparation orders must not have a courier assigned
//   - OnTheWay orders must have a courier assigned
//   - Delivered and Cancelled orders may keep the courier they had
//
// Parameters:
//   - courier: whether the order has a courier assigned
//
// Returns:
//   - error: validation error if status and courier assignment are inconsistent
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && (s == Pending || s == InPreparation) {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && s == OnTheWay {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}
