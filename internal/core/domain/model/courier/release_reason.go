package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ReleaseReason tells why a courier stops carrying an order.
type ReleaseReason string

const (
	// ReleaseCompleted means the order was delivered.
	ReleaseCompleted ReleaseReason = "completed"
	// ReleaseCancelled means the order was cancelled while assigned.
	ReleaseCancelled ReleaseReason = "cancelled"
)

// Validate accepts only the declared reasons.
func (r ReleaseReason) Validate() error {
	switch r {
	case ReleaseCompleted, ReleaseCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("release reason", fmt.Errorf("%q is not a valid reason", string(r)))
	}
}
