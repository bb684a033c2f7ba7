package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// FollowHandler handles the follow edges behind friend requests
type FollowHandler struct {
	friendships *services.FriendshipService
	log         *zap.Logger
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(friendships *services.FriendshipService, log *zap.Logger) *FollowHandler {
	return &FollowHandler{friendships: friendships, log: log}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.GET("/followers", h.GetFollowers)
	g.GET("/following", h.GetFollowing)
	g.DELETE("/follows/:id", h.DeleteFollow)
}

// GetFollowers lists the follow edges pointing at the authenticated user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	followers, err := h.friendships.ListFollowers(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, followers)
}

// GetFollowing lists the follow edges sent by the authenticated user
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	following, err := h.friendships.ListFollowing(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, following)
}

// DeleteFollow removes a follow edge by id
func (h *FollowHandler) DeleteFollow(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	followID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friendships.RemoveFollow(c.Request().Context(), userID, followID); err != nil {
		return httpError(h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
