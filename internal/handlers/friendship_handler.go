package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// FriendshipHandler handles HTTP requests related to friend requests and friendships
type FriendshipHandler struct {
	friendships *services.FriendshipService
	log         *zap.Logger
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships *services.FriendshipService, log *zap.Logger) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships, log: log}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.POST("/friends/request/:id/accept", h.AcceptFriendRequest)
	g.GET("/friends", h.GetFriendships)
	g.DELETE("/friends/:id", h.DeleteFriend)
}

// SendFriendRequest sends a friend request from the authenticated user
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.CreateFriendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	request, err := h.friendships.SendRequest(c.Request().Context(), userID, req.ReceiverID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusCreated, request)
}

// AcceptFriendRequest accepts a friend request addressed to the authenticated user
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	requestID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	friendship, err := h.friendships.AcceptRequest(c.Request().Context(), userID, requestID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusCreated, friendship)
}

// GetFriendships lists the friendships of the authenticated user
func (h *FriendshipHandler) GetFriendships(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	friendships, err := h.friendships.ListFriendships(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, friendships)
}

// DeleteFriend removes the friendship with the user given by :id
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	friendID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friendships.RemoveFriendship(c.Request().Context(), userID, friendID); err != nil {
		return httpError(h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}
