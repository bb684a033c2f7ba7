package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/middleware"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// TokenRevoker invalidates an issued bearer token
type TokenRevoker interface {
	Logout(ctx context.Context, token string) error
}

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users  *services.UserService
	tokens TokenRevoker
	log    *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, tokens TokenRevoker, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, log: log}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.DELETE("/profile", h.DeleteUser)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	user, err := h.users.GetUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser deletes the authenticated user's profile and revokes the token used for the request
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.users.DeleteUser(ctx, userID); err != nil {
		return httpError(h.log, err)
	}
	if err := h.tokens.Logout(ctx, middleware.Token(c)); err != nil {
		return httpError(h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchUsers searches for users by username or email
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.users.SearchUsers(c.Request().Context(), query)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, users)
}
