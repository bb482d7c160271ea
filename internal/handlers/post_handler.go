package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/facegram/backend/internal/middleware"
	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"github.com/facegram/backend/internal/services"
	"github.com/facegram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// maxAttachments limits how many files a single post may carry
const maxAttachments = 10

// PostHandler handles post and feed HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	visibilityService services.VisibilityService
	uploader          storage.Uploader
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, visibilityService services.VisibilityService, uploader storage.Uploader) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		visibilityService: visibilityService,
		uploader:          uploader,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/post", h.GetFeed)
	g.POST("/post", h.CreatePost)
	g.DELETE("/post/:id", h.DeletePost)
}

// GetFeed returns one page of the posts visible to the current account
func (h *PostHandler) GetFeed(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid page")
	}
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid size")
	}

	feed, err := h.visibilityService.Feed(c.Request().Context(), account, page, size)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, feed)
}

// CreatePost uploads the attached files to object storage and stores the post
// with the returned locators
func (h *PostHandler) CreatePost(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["file"]
	if len(files) > maxAttachments {
		files = files[:maxAttachments]
	}

	attachments := make([]models.PostAttachment, 0, len(files))
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Failed to open uploaded file")
		}
		url, err := h.uploader.Upload(c.Request().Context(), file.Filename, src, file.Size, file.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Failed to upload attachment")
		}
		attachments = append(attachments, models.PostAttachment{StoragePath: url})
	}

	post := &models.Post{
		UserID:      account.ID,
		Caption:     req.Caption,
		Attachments: attachments,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Create post success"})
}

// DeletePost soft-deletes a post owned by the current account
func (h *PostHandler) DeletePost(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if post.UserID != account.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden access")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
