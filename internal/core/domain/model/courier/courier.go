package courier

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Rating bounds.
const (
	MinRating = 0.0
	MaxRating = 5.0
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier is the aggregate root of the courier registry. It owns the
// availability state machine and the active order counter ("load") that the
// dispatch scorer and the assignment handler rely on.
//
// Business rules:
//   - A new courier is Available, active, unrated and carries no orders
//   - Location is optional; a courier without one is never ranked
//   - Load never goes negative
//   - When load returns to zero an EnRoute courier becomes Available again
//   - Couriers are never deleted, only deactivated
//
// Example usage:
//
//	c, err := courier.NewCourier(kernel.NewUUID(), "Lucía")
//	if err != nil {
//	    return err
//	}
//	loc, _ := kernel.NewLocation(40.4168, -3.7038)
//	c.UpdateLocation(loc, time.Now())
type Courier struct {
	id                 kernel.UUID
	name               string
	status             Status
	location           *kernel.Location
	rating             float64
	activeOrders       int
	totalDeliveries    int
	isActive           bool
	lastLocationUpdate *time.Time
	guard              guard.ConstructorGuard
}

// Snapshot is the persisted state of a courier, as read back by repositories.
type Snapshot struct {
	ID                 kernel.UUID
	Name               string
	Status             Status
	Location           *kernel.Location
	Rating             float64
	ActiveOrders       int
	TotalDeliveries    int
	IsActive           bool
	LastLocationUpdate *time.Time
}

// NewCourier registers a courier that starts Available with no location.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (must be non-blank)
//
// Returns:
//   - *Courier: the new courier
//   - error: joined validation errors
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	courier := &Courier{
		status:   Available,
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persistent storage.
// Every field is checked so that a corrupted row cannot produce an aggregate
// that violates the courier invariants.
//
// Returns:
//   - *Courier: restored aggregate
//   - error: joined validation errors
func RestoreCourier(s Snapshot) (*Courier, error) {
	courier := &Courier{
		isActive:           s.IsActive,
		lastLocationUpdate: s.LastLocationUpdate,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(s.ID),
		courier.setName(s.Name),
		courier.setStatus(s.Status),
		courier.setLocation(s.Location),
		courier.setRating(s.Rating),
		courier.setActiveOrders(s.ActiveOrders),
		courier.setTotalDeliveries(s.TotalDeliveries),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// Validate checks that the Courier was built by NewCourier or RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the display name.
func (c *Courier) Name() string {
	return c.name
}

// Status returns the current availability state.
func (c *Courier) Status() Status {
	return c.status
}

// Location returns the last reported position, or nil when none is known.
// The returned value is a copy.
func (c *Courier) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// Rating returns the courier rating in [0, 5].
func (c *Courier) Rating() float64 {
	return c.rating
}

// ActiveOrders returns the number of orders currently carried.
func (c *Courier) ActiveOrders() int {
	return c.activeOrders
}

// TotalDeliveries returns the number of completed deliveries.
func (c *Courier) TotalDeliveries() int {
	return c.totalDeliveries
}

// IsActive reports whether the courier account is enabled.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// LastLocationUpdate returns when the location was last reported, or nil.
func (c *Courier) LastLocationUpdate() *time.Time {
	return c.lastLocationUpdate
}

// Snapshot returns the persistable state of the courier.
func (c *Courier) Snapshot() Snapshot {
	return Snapshot{
		ID:                 c.id,
		Name:               c.name,
		Status:             c.status,
		Location:           c.Location(),
		Rating:             c.rating,
		ActiveOrders:       c.activeOrders,
		TotalDeliveries:    c.totalDeliveries,
		IsActive:           c.isActive,
		LastLocationUpdate: c.lastLocationUpdate,
	}
}

// UpdateLocation overwrites the courier position and stamps the update time.
// Concurrent updates are resolved by the caller; the last write wins.
func (c *Courier) UpdateLocation(location kernel.Location, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	c.lastLocationUpdate = &at
	return nil
}

// SetStatus forces the courier into one of the four states. Manual overrides
// are allowed from any state, but the value itself must be valid.
//
// Returns:
//   - error: errs.ErrInvalidTransition for Unknown or out of range values
//
// Example:
//
//	if err := c.SetStatus(courier.OffDuty); err != nil {
//	    return err
//	}
func (c *Courier) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return errs.NewInvalidTransitionError("courier "+c.id.String(), c.status, status)
	}

	c.status = status
	return nil
}

// CanAcceptAssignment returns nil when the courier may receive a new order,
// otherwise a CourierUnavailable error explaining why.
func (c *Courier) CanAcceptAssignment() error {
	if !c.isActive {
		return errs.NewCourierUnavailableError(c.id, "courier is deactivated")
	}
	if !c.status.AcceptsAssignments() {
		return errs.NewCourierUnavailableError(c.id, fmt.Sprintf("status is %s", c.status))
	}
	return nil
}

// IncrementLoad records one more carried order. An Available courier moves
// to EnRoute.
func (c *Courier) IncrementLoad() {
	c.activeOrders++
	if c.status == Available {
		c.status = EnRoute
	}
}

// DecrementLoad records one order less. Reaching zero while EnRoute moves
// the courier back to Available.
//
// Returns:
//   - error: errs.ErrInvalidState when the courier carries no orders
func (c *Courier) DecrementLoad() error {
	if c.activeOrders == 0 {
		return errs.NewInvalidStateError("courier "+c.id.String(), "active order count is already zero")
	}

	c.activeOrders--
	if c.activeOrders == 0 && c.status == EnRoute {
		c.status = Available
	}
	return nil
}

// Release frees the load of one order. A completed delivery also counts
// towards TotalDeliveries.
func (c *Courier) Release(reason ReleaseReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	if err := c.DecrementLoad(); err != nil {
		return err
	}
	if reason == ReleaseCompleted {
		c.totalDeliveries++
	}
	return nil
}

// Deactivate disables the courier. Deactivated couriers are never listed as
// available and cannot be assigned.
func (c *Courier) Deactivate() {
	c.isActive = false
}

// Activate enables a previously deactivated courier.
func (c *Courier) Activate() {
	c.isActive = true
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *Courier) setLocation(location *kernel.Location) error {
	if location == nil {
		c.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}

	loc := *location
	c.location = &loc
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return errs.NewValueIsOutOfRangeError("rating", rating, MinRating, MaxRating)
	}

	c.rating = rating
	return nil
}

func (c *Courier) setActiveOrders(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("active orders", n, 0, math.MaxInt)
	}

	c.activeOrders = n
	return nil
}

func (c *Courier) setTotalDeliveries(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("total deliveries", n, 0, math.MaxInt)
	}

	c.totalDeliveries = n
	return nil
}
