package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/middleware"
	"github.com/nanomedia/social-backend/internal/pagination"
	"github.com/nanomedia/social-backend/internal/services"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// statusByKind maps each service error kind to exactly one HTTP status.
var statusByKind = []struct {
	kind   error
	status int
}{
	{services.ErrInvalidOperation, http.StatusBadRequest},
	{services.ErrDuplicateRequest, http.StatusConflict},
	{services.ErrDuplicateFriendship, http.StatusConflict},
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrNotFriends, http.StatusForbidden},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrUsernameTaken, http.StatusConflict},
}

// httpError converts a service error to an echo.HTTPError. Unknown errors are logged and
// reported as 500 without their details.
func httpError(log *zap.Logger, err error) error {
	for _, m := range statusByKind {
		if errors.Is(err, m.kind) {
			return echo.NewHTTPError(m.status, err.Error())
		}
	}
	log.Error("request failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func currentUserID(c echo.Context) (uint, error) {
	id := middleware.UserID(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// bindAndValidate binds the request body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

func pageFromQuery(c echo.Context) pagination.Page {
	return pagination.Parse(c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"))
}

func paged[T any](c echo.Context, key string, result *pagination.Result[T]) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{key: result.Items},
		"meta": echo.Map{
			"currentPage":     result.Page.Number,
			"totalPages":      result.TotalPages(),
			"totalItems":      result.TotalItems,
			"itemsPerPage":    result.Page.Size,
			"hasNextPage":     result.HasNext(),
			"hasPreviousPage": result.HasPrevious(),
		},
	})
}
