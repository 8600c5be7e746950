package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "linkdir/internal/errors"
)

// httpError translates a domain error into an echo HTTP error with the
// standardized response body.
func httpError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// parseID parses a path id. A malformed id is treated as not found.
func parseID(c echo.Context, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
