package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estatehub/listing-api/internal/api/handler"
	"github.com/estatehub/listing-api/internal/core/domain"
	"github.com/estatehub/listing-api/internal/core/filter"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Reports every invalid field of a rejected request at once.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorBody) {
	var (
		he   *echo.HTTPError
		fe   *filter.ValidationError
		re   *handler.RequestError
		body = func(msg string) handler.ErrorBody { return handler.ErrorBody{Error: msg} }
	)
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, handler.ErrorBody{Error: "invalid search criteria", Fields: fe.Fields}
	case errors.As(err, &re):
		return http.StatusBadRequest, handler.ErrorBody{Error: "invalid request", Fields: re.Fields}
	case errors.As(err, &he):
		return he.Code, body(fmt.Sprintf("%v", he.Message))
	}

	switch {
	case errors.Is(err, domain.ErrInvalidProperty), errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, body(err.Error())
	case errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound, body("property not found")
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, body("user not found")
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, body("user already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, body("invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, body("access forbidden")
	case errors.Is(err, domain.ErrMediaDisabled):
		return http.StatusServiceUnavailable, body("image uploads are not configured")
	case errors.Is(err, domain.ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("store unavailable")
		return http.StatusServiceUnavailable, body("service temporarily unavailable")
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, body("internal server error")
}
