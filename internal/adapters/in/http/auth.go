package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AdminRole is the role claim required by the administrative routes.
const AdminRole = "admin"

// NewAdminAuth verifies an HS256 bearer token and requires role=admin.
// A missing token is rejected with 401, an invalid token or a missing role
// with 403. An empty secret disables the check.
func NewAdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}

		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}

			claims := jwt.MapClaims{}
			_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token").SetInternal(err)
			}

			if role, _ := claims["role"].(string); role != AdminRole {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required").
					SetInternal(errors.New("role claim is not admin"))
			}

			return next(c)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get(echo.HeaderAuthorization), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
