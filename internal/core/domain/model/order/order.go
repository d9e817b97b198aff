package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the dispatch projection of an order owned by the order service.
// It keeps only what dispatch needs: the drop-off point, the lifecycle status
// and the assignment stamps.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - The assigned courier is set if and only if the assignment time is set
//   - An OnTheWay order always has a courier
//   - The drop-off point is optional; without it the order cannot be ranked
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// dropoff is the delivery address point (nil when not geocoded)
	dropoff *kernel.Location

	// status is the lifecycle state reported by the order service
	status Status

	// assignedCourierID is the assigned courier's ID (nil if unassigned)
	assignedCourierID *kernel.UUID

	// estimatedDeliveryMinutes is the ETA computed at assignment time
	estimatedDeliveryMinutes *int

	// assignedAt is when the courier was assigned
	assignedAt *time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// Snapshot is the persisted state of an order projection.
type Snapshot struct {
	ID                       kernel.UUID
	Dropoff                  *kernel.Location
	Status                   Status
	AssignedCourierID        *kernel.UUID
	EstimatedDeliveryMinutes *int
	AssignedAt               *time.Time
}

// NewOrder creates a Pending, unassigned order projection.
//
// Parameters:
//   - id: identifier issued by the order service
//   - dropoff: delivery point, nil when the address has no coordinates
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: validation error if any parameter is invalid
//
// Example:
//
//	loc, _ := kernel.NewLocation(40.05, -73.05)
//	o, err := order.NewOrder(orderID, &loc)
func NewOrder(id kernel.UUID, dropoff *kernel.Location) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDropoff(dropoff),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order projection from persistent storage and
// rejects rows that break the assignment invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(s.ID),
		order.setDropoff(s.Dropoff),
		order.setStatus(s.Status),
		order.setAssignment(s.AssignedCourierID, s.AssignedAt, s.EstimatedDeliveryMinutes),
	); err != nil {
		return nil, err
	}

	if err := order.status.ValidateCanHaveCourier(order.assignedCourierID != nil); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Dropoff returns a copy of the delivery point, or nil.
func (o *Order) Dropoff() *kernel.Location {
	if o.dropoff == nil {
		return nil
	}
	loc := *o.dropoff
	return &loc
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedCourierID returns the assigned courier's ID, or nil.
func (o *Order) AssignedCourierID() *kernel.UUID {
	return o.assignedCourierID
}

// EstimatedDeliveryMinutes returns the ETA stamped at assignment, or nil.
func (o *Order) EstimatedDeliveryMinutes() *int {
	return o.estimatedDeliveryMinutes
}

// AssignedAt returns the assignment time, or nil.
func (o *Order) AssignedAt() *time.Time {
	return o.assignedAt
}

// IsAssigned reports whether a courier is stamped on the order.
func (o *Order) IsAssigned() bool {
	return o.assignedCourierID != nil
}

// Snapshot returns the persistable state of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                       o.id,
		Dropoff:                  o.Dropoff(),
		Status:                   o.status,
		AssignedCourierID:        o.assignedCourierID,
		EstimatedDeliveryMinutes: o.estimatedDeliveryMinutes,
		AssignedAt:               o.assignedAt,
	}
}

// Assign stamps the courier, the assignment time and the optional ETA.
// The status itself is moved by the status ledger.
//
// Returns:
//   - nil on success
//   - errs.ErrAlreadyAssigned if a courier is already stamped
//
// Example:
//
//	eta := 14
//	if err := o.Assign(courierID, time.Now(), &eta); err != nil {
//	    return err
//	}
func (o *Order) Assign(courierID kernel.UUID, at time.Time, etaMinutes *int) error {
	if o.assignedCourierID != nil {
		return errs.NewAlreadyAssignedError(o.id)
	}
	if err := courierID.Validate(); err != nil {
		return err
	}

	o.assignedCourierID = &courierID
	o.assignedAt = &at
	o.estimatedDeliveryMinutes = etaMinutes
	return nil
}

// Unassign clears the assignment stamps and returns the courier that held
// the order.
//
// Returns:
//   - kernel.UUID: the previously assigned courier
//   - error: errs.ErrInvalidState if the order is not assigned
func (o *Order) Unassign() (kernel.UUID, error) {
	if o.assignedCourierID == nil {
		return kernel.UUID{}, errs.NewInvalidStateError("order "+o.id.String(), "order is not assigned")
	}

	courierID := *o.assignedCourierID
	o.assignedCourierID = nil
	o.assignedAt = nil
	o.estimatedDeliveryMinutes = nil
	return courierID, nil
}

// ChangeStatus sets a new lifecycle status. Which transitions dispatch may
// perform is decided by the status ledger, not here.
func (o *Order) ChangeStatus(status Status) error {
	return o.setStatus(status)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDropoff(dropoff *kernel.Location) error {
	if dropoff == nil {
		o.dropoff = nil
		return nil
	}
	if err := dropoff.Validate(); err != nil {
		return err
	}
	loc := *dropoff
	o.dropoff = &loc
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setAssignment(courierID *kernel.UUID, at *time.Time, etaMinutes *int) error {
	if (courierID == nil) != (at == nil) {
		return errs.NewInvalidStateError("order assignment", "courier and assignment time must be set together")
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if etaMinutes != nil && *etaMinutes < 0 {
		return errs.NewValueIsOutOfRangeError("estimated delivery minutes", *etaMinutes, 0, "+Inf")
	}

	o.assignedCourierID = courierID
	o.assignedAt = at
	o.estimatedDeliveryMinutes = etaMinutes
	return nil
}
