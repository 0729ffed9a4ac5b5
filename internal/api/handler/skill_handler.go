package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/dto"
	"github.com/jobtrack/jobtrack-be/internal/api/events"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
)

// SkillHandler handles job skill HTTP requests. Skills are only reachable
// through their parent post: every operation re-checks post ownership
// against the caller before touching a skill row.
type SkillHandler struct {
	logger *slog.Logger
	posts  PostStore
	skills SkillStore
	events *events.Publisher
}

// NewSkillHandler creates a new SkillHandler instance
func NewSkillHandler(deps *Dependencies) *SkillHandler {
	return &SkillHandler{
		logger: deps.Logger,
		posts:  deps.Posts,
		skills: deps.Skills,
		events: deps.Events,
	}
}

// SaveSkill handles PUT /api/v1/posts/:post_id/skills
// Inserts a new skill when the body carries no id, otherwise fully replaces
// the mutable fields of the identified skill.
func (h *SkillHandler) SaveSkill(c *gin.Context) {
	postID := c.Param("post_id")

	var req dto.SaveSkillRequest
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

	// Ownership is re-derived from the parent post on every call, for the
	// update path as much as the insert path.
	if _, err := h.posts.GetPostByID(c.Request.Context(), postID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	skill := model.JobSkill{
		JobPostID:  postID,
		Name:       req.Name,
		Category:   nullString(req.Category),
		Importance: nullInt(req.Importance),
		CreatedAt:  time.Now().UTC(),
	}

	if req.ID == nil {
		skill.ID = uuid.New().String()

		if err := h.skills.InsertSkill(c.Request.Context(), &skill); err != nil {
			respondError(c, h.logger, err)
			return
		}

		h.logger.Info("Job skill created",
			slog.String("skill_id", skill.ID),
			slog.String("post_id", postID),
		)
		h.events.Emit(c.Request.Context(), events.TypeSkillSaved, userID, postID, skill.ID)

		c.JSON(http.StatusCreated, gin.H{"skill": dto.FromSkill(&skill)})
		return
	}

	existing, err := h.skills.GetSkillByID(c.Request.Context(), *req.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// A skill id reused against a different post is treated as missing,
	// even when the caller owns both posts.
	if existing.JobPostID != postID {
		respondError(c, h.logger, domain.ErrSkillNotFound)
		return
	}

	skill.ID = existing.ID
	updated, err := h.skills.ReplaceSkill(c.Request.Context(), &skill)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job skill updated",
		slog.String("skill_id", updated.ID),
		slog.String("post_id", postID),
	)
	h.events.Emit(c.Request.Context(), events.TypeSkillSaved, userID, postID, updated.ID)

	c.JSON(http.StatusOK, gin.H{"skill": dto.FromSkill(updated)})
}

// DeleteSkill handles DELETE /api/v1/posts/:post_id/skills/:skill_id
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	postID := c.Param("post_id")
	skillID := c.Param("skill_id")

	userID, err := auth.UserID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if _, err := h.posts.GetPostByID(c.Request.Context(), postID, userID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	skill, err := h.skills.DeleteSkill(c.Request.Context(), skillID, postID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job skill deleted",
		slog.String("skill_id", skillID),
		slog.String("post_id", postID),
	)
	h.events.Emit(c.Request.Context(), events.TypeSkillDeleted, userID, postID, skillID)

	c.JSON(http.StatusOK, gin.H{"skill": dto.FromSkill(skill)})
}
