package http

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Server    *Server
	Doc       *openapi3.T
	JWTSecret string
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the API, /health, /metrics and
// /swagger/*.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	validate, err := NewRequestValidator(cfg.Doc)
	if err != nil {
		return nil, err
	}
	admin := NewAdminAuth(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(requestLogger(cfg.Logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	s := cfg.Server
	g := e.Group("/api/v1")
	public := func(method, path string, h echo.HandlerFunc) {
		g.Add(method, path, h, validate)
	}
	restricted := func(method, path string, h echo.HandlerFunc) {
		g.Add(method, path, h, admin, validate)
	}

	restricted(http.MethodGet, "/dispatch/best/:orderId", s.FindBestCourier)
	restricted(http.MethodPost, "/dispatch/assign", s.AssignCourier)
	restricted(http.MethodPost, "/dispatch/unassign", s.UnassignCourier)

	restricted(http.MethodPut, "/courier/:id/status", s.SetCourierStatus)
	restricted(http.MethodPut, "/courier/:id/active", s.SetCourierActive)
	public(http.MethodPut, "/courier/:id/location", s.UpdateCourierLocation)
	public(http.MethodGet, "/courier/:id/location", s.GetCourierLocation)
	restricted(http.MethodPost, "/courier/:id/release", s.ReleaseCourier)

	public(http.MethodGet, "/couriers", s.GetCouriers)
	restricted(http.MethodPost, "/couriers", s.CreateCourier)

	restricted(http.MethodPost, "/orders", s.RegisterOrder)
	public(http.MethodGet, "/orders/pending", s.GetPendingOrders)
	public(http.MethodGet, "/orders/:id/transitions", s.GetOrderTransitions)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
