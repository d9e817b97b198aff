package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var badRequestKinds = []error{
	errs.ErrValueIsInvalid,
	errs.ErrValueIsRequired,
	errs.ErrValueIsOutOfRange,
	errs.ErrInvalidCoordinate,
	errs.ErrMissingCoordinates,
	errs.ErrInvalidTransition,
	errs.ErrInvalidState,
	errs.ErrAlreadyAssigned,
	errs.ErrCourierUnavailable,
	errs.ErrInvalidOrderStatus,
}

// NewErrorHandler renders every error returned by a handler or middleware as
// an Error body. Unclassified errors are logged and hidden behind a generic
// message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, message := classify(err)
		if code >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, Error{Code: code, Message: message})
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, string) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	if errors.Is(err, errs.ErrObjectNotFound) {
		return http.StatusNotFound, err.Error()
	}

	for _, kind := range badRequestKinds {
		if errors.Is(err, kind) {
			return http.StatusBadRequest, err.Error()
		}
	}

	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
