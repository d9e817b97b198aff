package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location is a WGS84 point.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Candidate is one ranked courier.
type Candidate struct {
	CourierID    openapi_types.UUID `json:"courierId"`
	Name         string             `json:"name"`
	Status       string             `json:"status"`
	DistanceKm   float64            `json:"distanceKm"`
	ETAMinutes   int                `json:"etaMinutes"`
	Rating       float64            `json:"rating"`
	ActiveOrders int                `json:"activeOrders"`
	Score        float64            `json:"score"`
}

// Ranking is the FindBestCourier response.
type Ranking struct {
	OrderID    openapi_types.UUID `json:"orderId"`
	Candidates []Candidate        `json:"candidates"`
}

// AssignRequest is the body of POST /dispatch/assign.
type AssignRequest struct {
	OrderID   openapi_types.UUID `json:"orderId"`
	CourierID openapi_types.UUID `json:"courierId"`
}

// CourierSummary identifies the assigned courier.
type CourierSummary struct {
	ID     openapi_types.UUID `json:"id"`
	Name   string             `json:"name"`
	Rating float64            `json:"rating"`
}

// AssignedOrder is the Assign response.
type AssignedOrder struct {
	OrderID                  openapi_types.UUID `json:"orderId"`
	Courier                  CourierSummary     `json:"courier"`
	EstimatedDeliveryMinutes *int               `json:"estimatedDeliveryMinutes"`
	AssignedAt               time.Time          `json:"assignedAt"`
}

// UnassignRequest is the body of POST /dispatch/unassign.
type UnassignRequest struct {
	OrderID openapi_types.UUID `json:"orderId"`
}

// Courier is the registry view of a courier.
type Courier struct {
	ID              openapi_types.UUID `json:"id"`
	Name            string             `json:"name"`
	Status          string             `json:"status"`
	CurrentLocation *Location          `json:"currentLocation"`
	Rating          float64            `json:"rating"`
	ActiveOrders    int                `json:"activeOrders"`
	TotalDeliveries int                `json:"totalDeliveries"`
	IsActive        bool               `json:"isActive"`
	LastUpdate      *time.Time         `json:"lastUpdate"`
}

// StatusRequest is the body of PUT /courier/{id}/status.
type StatusRequest struct {
	Status string `json:"status"`
}

// CourierLocation is the last reported position of a courier.
type CourierLocation struct {
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// ReleaseRequest is the body of POST /courier/{id}/release.
type ReleaseRequest struct {
	OrderID openapi_types.UUID `json:"orderId"`
	Reason  string             `json:"reason"`
}

// ActiveRequest is the body of PUT /courier/{id}/active.
type ActiveRequest struct {
	Active bool `json:"active"`
}

// NewCourier is the body of POST /couriers.
type NewCourier struct {
	Name string `json:"name"`
}

// CreatedCourier is the POST /couriers response.
type CreatedCourier struct {
	ID openapi_types.UUID `json:"id"`
}

// NewOrder is the body of POST /orders.
type NewOrder struct {
	OrderID openapi_types.UUID `json:"orderId"`
	Lat     *float64           `json:"lat"`
	Lon     *float64           `json:"lon"`
}

// PendingOrder is one row of GET /orders/pending.
type PendingOrder struct {
	ID        openapi_types.UUID `json:"id"`
	Dropoff   *Location          `json:"dropoff"`
	CreatedAt time.Time          `json:"createdAt"`
}

// StatusTransition is one entry of an order's dispatch history.
type StatusTransition struct {
	From  string    `json:"from"`
	To    string    `json:"to"`
	Event string    `json:"event"`
	At    time.Time `json:"at"`
}

// OrderTransitions is the GET /orders/{id}/transitions response.
type OrderTransitions struct {
	OrderID     openapi_types.UUID `json:"orderId"`
	Status      string             `json:"status"`
	Transitions []StatusTransition `json:"transitions"`
}

func toLocation(l *kernel.Location) *Location {
	if l == nil {
		return nil
	}
	return &Location{Lat: l.Latitude(), Lon: l.Longitude()}
}

func toRanking(r queries.FindBestCourierQueryResponse) Ranking {
	candidates := make([]Candidate, len(r.Candidates))
	for i, c := range r.Candidates {
		candidates[i] = Candidate{
			CourierID:    c.CourierID.Bytes(),
			Name:         c.Name,
			Status:       c.Status.String(),
			DistanceKm:   c.DistanceKm,
			ETAMinutes:   c.ETAMinutes,
			Rating:       c.Rating,
			ActiveOrders: c.ActiveOrders,
			Score:        c.Score,
		}
	}
	return Ranking{OrderID: r.OrderID.Bytes(), Candidates: candidates}
}

func toAssignedOrder(a services.Assignment) AssignedOrder {
	return AssignedOrder{
		OrderID: a.OrderID.Bytes(),
		Courier: CourierSummary{
			ID:     a.CourierID.Bytes(),
			Name:   a.Name,
			Rating: a.Rating,
		},
		EstimatedDeliveryMinutes: a.ETAMinutes,
		AssignedAt:               a.AssignedAt,
	}
}

func toCourier(c *courier.Courier) Courier {
	return Courier{
		ID:              c.ID().Bytes(),
		Name:            c.Name(),
		Status:          c.Status().String(),
		CurrentLocation: toLocation(c.Location()),
		Rating:          c.Rating(),
		ActiveOrders:    c.ActiveOrders(),
		TotalDeliveries: c.TotalDeliveries(),
		IsActive:        c.IsActive(),
		LastUpdate:      c.LastLocationUpdate(),
	}
}

func toCourierFromReadModel(c queries.GetAllCouriersQueryResponse) Courier {
	return Courier{
		ID:              c.ID.Bytes(),
		Name:            c.Name,
		Status:          c.Status.String(),
		CurrentLocation: toLocation(c.Location),
		Rating:          c.Rating,
		ActiveOrders:    c.ActiveOrders,
		TotalDeliveries: c.TotalDeliveries,
		IsActive:        c.IsActive,
		LastUpdate:      c.LastLocationUpdate,
	}
}

func toOrderTransitions(r queries.GetOrderTransitionsQueryResponse) OrderTransitions {
	transitions := make([]StatusTransition, len(r.Transitions))
	for i, t := range r.Transitions {
		transitions[i] = StatusTransition{
			From:  t.From.String(),
			To:    t.To.String(),
			Event: t.Event,
			At:    t.At,
		}
	}
	return OrderTransitions{OrderID: r.OrderID.Bytes(), Status: r.Status.String(), Transitions: transitions}
}
