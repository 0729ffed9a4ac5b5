package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/events"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/internal/api/storage"
)

// PostStore is the owner-scoped job post repository used by handlers.
type PostStore interface {
	CreatePost(ctx context.Context, post *model.JobPost) error
	GetPostByID(ctx context.Context, id, userID string) (*model.JobPost, error)
	ListPosts(ctx context.Context, userID string) ([]model.JobPost, error)
	UpdatePost(ctx context.Context, id, userID string, patch storage.PostPatch) (*model.JobPost, error)
	DeletePost(ctx context.Context, id, userID string) (*model.JobPost, error)
}

// SkillStore is the skill repository. None of its methods check ownership;
// handlers verify the parent post first, every time.
type SkillStore interface {
	GetSkillByID(ctx context.Context, id string) (*model.JobSkill, error)
	InsertSkill(ctx context.Context, skill *model.JobSkill) error
	ReplaceSkill(ctx context.Context, skill *model.JobSkill) (*model.JobSkill, error)
	DeleteSkill(ctx context.Context, id, jobPostID string) (*model.JobSkill, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger *slog.Logger
	Posts  PostStore
	Skills SkillStore
	Events *events.Publisher
}

// respondError maps a domain error to its HTTP status. Both not-found kinds
// are reported identically whether the row is missing or owned by someone
// else.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "You must be signed in to perform this action",
		})
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Job post not found",
		})
	case errors.Is(err, domain.ErrSkillNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Job skill not found",
		})
	default:
		logger.Error("Storage operation failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
