package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts *services.PostService
	log   *zap.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, log *zap.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// RegisterFileRoutes registers the public file download route
func (h *PostHandler) RegisterFileRoutes(e *echo.Echo) {
	e.GET("/file/download/:id", h.DownloadFile)
}

// CreatePost creates a post from a multipart form: a "data" part holding the JSON
// PostRequest and an optional "file" part.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.PostRequest
	if err := json.Unmarshal([]byte(c.FormValue("data")), &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post data")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var upload *services.Upload
	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid file")
		}
		defer src.Close()
		upload = &services.Upload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Content:     src,
		}
	} else if err != http.ErrMissingFile {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file")
	}

	post, err := h.posts.CreatePost(c.Request().Context(), userID, req, upload)
	if err != nil {
		return httpError(h.log, err)
	}
	h.log.Info("post created", zap.String("post", post.ID), zap.Uint("user", userID))
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.posts.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts pages through all posts
func (h *PostHandler) GetPosts(c echo.Context) error {
	result, err := h.posts.ListPosts(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return httpError(h.log, err)
	}
	return paged(c, "posts", result)
}

// GetUserPosts pages through the posts of user :id
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.posts.ListUserPosts(c.Request().Context(), userID, pageFromQuery(c))
	if err != nil {
		return httpError(h.log, err)
	}
	return paged(c, "posts", result)
}

// UpdatePost edits the title and text of the caller's post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.PostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.UpdatePost(c.Request().Context(), userID, c.Param("id"), req)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes the caller's post and its file
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.posts.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return httpError(h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DownloadFile streams the file attached to post :id
func (h *PostHandler) DownloadFile(c echo.Context) error {
	post, content, err := h.posts.DownloadFile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(h.log, err)
	}

	contentType := post.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	if post.FileName != "" {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+post.FileName+`"`)
	}
	return c.Blob(http.StatusOK, contentType, content)
}
