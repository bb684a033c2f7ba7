package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// FeedHandler serves the activity feed
type FeedHandler struct {
	feed *services.FeedService
	log  *zap.Logger
}

func NewFeedHandler(feed *services.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, log: log}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns a page of posts by the authenticated user's friends
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	result, err := h.feed.GetActivityFeed(c.Request().Context(), userID, pageFromQuery(c))
	if err != nil {
		return httpError(h.log, err)
	}
	return paged(c, "posts", result)
}
