package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/jobtrack/jobtrack-be/internal/api/dto"
	"github.com/jobtrack/jobtrack-be/internal/api/events"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/api/storage"
)

// PostHandler handles job post HTTP requests
type PostHandler struct {
	logger *slog.Logger
	posts  PostStore
	events *events.Publisher
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(deps *Dependencies) *PostHandler {
	return &PostHandler{
		logger: deps.Logger,
		posts:  deps.Posts,
		events: deps.Events,
	}
}

// CreatePost handles POST /api/v1/posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	userID, err := auth.UserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	id := uuid.New().String()
	if req.ID != nil {
		id = *req.ID
	}

	post := model.JobPost{
		ID:          id,
		UserID:      userID,
		Title:       req.Title,
		CompanyName: nullString(req.CompanyName),
		Location:    nullString(req.Location),
		SourceType:  nullString(req.SourceType),
		SourceURL:   nullString(req.SourceURL),
		RawText:     req.RawText,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.posts.CreatePost(c.Request.Context(), &post); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
	)
	h.events.Emit(c.Request.Context(), events.TypePostCreated, userID, post.ID, "")

	c.JSON(http.StatusCreated, gin.H{"post": dto.FromPost(&post)})
}

// ListPosts handles GET /api/v1/posts
// Returns every post owned by the caller, newest first.
func (h *PostHandler) ListPosts(c *gin.Context) {
	userID, err := auth.UserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	posts, err := h.posts.ListPosts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := make([]dto.PostDTO, len(posts))
	for i := range posts {
		response[i] = dto.FromPost(&posts[i])
	}

	c.JSON(http.StatusOK, dto.ListPostsResponse{Posts: response})
}

// UpdatePost handles PATCH /api/v1/posts/:post_id
// Applies a partial patch: only fields present in the body are written.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("post_id")

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	userID, err := auth.UserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	patch := storage.PostPatch{
		Title:       req.Title,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		SourceType:  req.SourceType,
		SourceURL:   req.SourceURL,
		RawText:     req.RawText,
	}

	// An empty patch is a read: return the current row without writing.
	if patch.IsEmpty() {
		post, err := h.posts.GetPostByID(c.Request.Context(), postID, userID)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"post": dto.FromPost(post)})
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), postID, userID, patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job post updated",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)
	h.events.Emit(c.Request.Context(), events.TypePostUpdated, userID, postID, "")

	c.JSON(http.StatusOK, gin.H{"post": dto.FromPost(post)})
}

// DeletePost handles DELETE /api/v1/posts/:post_id
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("post_id")

	userID, err := auth.UserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	post, err := h.posts.DeletePost(c.Request.Context(), postID, userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job post deleted",
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)
	h.events.Emit(c.Request.Context(), events.TypePostDeleted, userID, postID, "")

	c.JSON(http.StatusOK, gin.H{"post": dto.FromPost(post)})
}
