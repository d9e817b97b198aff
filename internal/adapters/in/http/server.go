// Package http exposes the dispatch use cases over a JSON API under /api/v1.
package http

import (
	"context"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case contracts consumed by the server.
type (
	BestCourierFinder interface {
		Handle(ctx context.Context, query queries.FindBestCourierQuery) (queries.FindBestCourierQueryResponse, error)
	}
	CourierAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignCourierCommand) (services.Assignment, error)
	}
	CourierUnassigner interface {
		Handle(ctx context.Context, cmd commands.UnassignCourierCommand) error
	}
	CourierStatusSetter interface {
		Handle(ctx context.Context, cmd commands.SetCourierStatusCommand) (*courier.Courier, error)
	}
	CourierLocationUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) error
	}
	CourierLocationReader interface {
		Handle(ctx context.Context, query queries.GetCourierLocationQuery) (queries.GetCourierLocationQueryResponse, error)
	}
	CourierReleaser interface {
		Handle(ctx context.Context, cmd commands.ReleaseCourierCommand) (*courier.Courier, error)
	}
	CourierActivator interface {
		Handle(ctx context.Context, cmd commands.SetCourierActiveCommand) (*courier.Courier, error)
	}
	CouriersLister interface {
		Handle(ctx context.Context, query queries.GetAllCouriersQuery) ([]queries.GetAllCouriersQueryResponse, error)
	}
	CourierCreator interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) error
	}
	OrderRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterOrderCommand) error
	}
	PendingOrdersLister interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
	}
	OrderTransitionsReader interface {
		Handle(ctx context.Context, query queries.GetOrderTransitionsQuery) (queries.GetOrderTransitionsQueryResponse, error)
	}
)

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	FindBestCourier       BestCourierFinder
	AssignCourier         CourierAssigner
	UnassignCourier       CourierUnassigner
	SetCourierStatus      CourierStatusSetter
	UpdateCourierLocation CourierLocationUpdater
	GetCourierLocation    CourierLocationReader
	ReleaseCourier        CourierReleaser
	SetCourierActive      CourierActivator
	GetAllCouriers        CouriersLister
	CreateCourier         CourierCreator
	RegisterOrder         OrderRegistrar
	GetPendingOrders      PendingOrdersLister
	GetOrderTransitions   OrderTransitionsReader
}

// Server translates HTTP requests into commands and queries. Every handler
// returns its error to echo, NewErrorHandler renders it.
type Server struct {
	h Handlers
}

// NewServer creates the server.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// FindBestCourier handles GET /api/v1/dispatch/best/{orderId}.
func (s *Server) FindBestCourier(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return err
	}

	query, err := queries.NewFindBestCourierQuery(orderID)
	if err != nil {
		return err
	}

	ranking, err := s.h.FindBestCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRanking(ranking))
}

// AssignCourier handles POST /api/v1/dispatch/assign.
func (s *Server) AssignCourier(c echo.Context) error {
	var req AssignRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := bodyUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}
	courierID, err := bodyUUID("courierId", req.CourierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	if err != nil {
		return err
	}

	assignment, err := s.h.AssignCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAssignedOrder(assignment))
}

// UnassignCourier handles POST /api/v1/dispatch/unassign.
func (s *Server) UnassignCourier(c echo.Context) error {
	var req UnassignRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := bodyUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnassignCourierCommand(orderID)
	if err != nil {
		return err
	}

	if err = s.h.UnassignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// SetCourierStatus handles PUT /api/v1/courier/{id}/status.
func (s *Server) SetCourierStatus(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req StatusRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetCourierStatusCommand(courierID, req.Status)
	if err != nil {
		return err
	}

	updated, err := s.h.SetCourierStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourier(updated))
}

// UpdateCourierLocation handles PUT /api/v1/courier/{id}/location.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req Location
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, req.Lat, req.Lon)
	if err != nil {
		return err
	}

	if err = s.h.UpdateCourierLocation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCourierLocation handles GET /api/v1/courier/{id}/location.
func (s *Server) GetCourierLocation(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetCourierLocationQuery(courierID)
	if err != nil {
		return err
	}

	location, err := s.h.GetCourierLocation.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CourierLocation{
		Lat:        location.Location.Latitude(),
		Lon:        location.Location.Longitude(),
		LastUpdate: location.UpdatedAt,
	})
}

// ReleaseCourier handles POST /api/v1/courier/{id}/release.
func (s *Server) ReleaseCourier(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ReleaseRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := bodyUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewReleaseCourierCommand(courierID, orderID, req.Reason)
	if err != nil {
		return err
	}

	released, err := s.h.ReleaseCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourier(released))
}

// SetCourierActive handles PUT /api/v1/courier/{id}/active.
func (s *Server) SetCourierActive(c echo.Context) error {
	courierID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req ActiveRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSetCourierActiveCommand(courierID, req.Active)
	if err != nil {
		return err
	}

	updated, err := s.h.SetCourierActive.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourier(updated))
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	couriers, err := s.h.GetAllCouriers.Handle(c.Request().Context(), queries.NewGetAllCouriersQuery())
	if err != nil {
		return err
	}

	response := make([]Courier, len(couriers))
	for i, item := range couriers {
		response[i] = toCourierFromReadModel(item)
	}

	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var req NewCourier
	if err := bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateCourierCommand(req.Name)
	if err != nil {
		return err
	}

	if err = s.h.CreateCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedCourier{ID: cmd.CourierID().Bytes()})
}

// RegisterOrder handles POST /api/v1/orders.
func (s *Server) RegisterOrder(c echo.Context) error {
	var req NewOrder
	if err := bindBody(c, &req); err != nil {
		return err
	}

	orderID, err := bodyUUID("orderId", req.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterOrderCommand(orderID, req.Lat, req.Lon)
	if err != nil {
		return err
	}

	if err = s.h.RegisterOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusCreated)
}

// GetPendingOrders handles GET /api/v1/orders/pending.
func (s *Server) GetPendingOrders(c echo.Context) error {
	orders, err := s.h.GetPendingOrders.Handle(c.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]PendingOrder, len(orders))
	for i, o := range orders {
		response[i] = PendingOrder{
			ID:        o.ID.Bytes(),
			Dropoff:   toLocation(o.Dropoff),
			CreatedAt: o.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, response)
}

// GetOrderTransitions handles GET /api/v1/orders/{id}/transitions.
func (s *Server) GetOrderTransitions(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	query, err := queries.NewGetOrderTransitionsQuery(orderID)
	if err != nil {
		return err
	}

	history, err := s.h.GetOrderTransitions.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toOrderTransitions(history))
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	return bodyUUID(name, id)
}

func bodyUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	result, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return result, nil
}

func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}
