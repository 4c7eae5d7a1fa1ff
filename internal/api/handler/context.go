package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/listing-api/internal/api/middleware"
)

// viewerID is the authenticated caller, or empty for anonymous requests.
func viewerID(c echo.Context) string {
	id, _ := c.Get(middleware.KeyUserID).(string)
	return id
}

// ctxClaims returns the caller identity injected by the Auth middleware. A
// missing identity means the route was mounted without Auth.
func ctxClaims(c echo.Context) (userID, role string, err error) {
	userID, _ = c.Get(middleware.KeyUserID).(string)
	role, _ = c.Get(middleware.KeyRole).(string)
	if userID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// bindAndValidate decodes the body into req and runs the struct validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
