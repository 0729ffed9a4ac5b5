package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-be/internal/api/auth"
	"github.com/jobtrack/jobtrack-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())
	r.Use(auth.Middleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobtrack-api-service",
		})
	})

	postHandler := handler.NewPostHandler(deps)
	skillHandler := handler.NewSkillHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			// POST /api/v1/posts - Create a job post
			posts.POST("", postHandler.CreatePost)

			// GET /api/v1/posts - List the caller's job posts
			posts.GET("", postHandler.ListPosts)

			// PATCH /api/v1/posts/:post_id - Patch a job post
			posts.PATCH("/:post_id", postHandler.UpdatePost)

			// DELETE /api/v1/posts/:post_id - Delete a job post
			posts.DELETE("/:post_id", postHandler.DeletePost)

			// PUT /api/v1/posts/:post_id/skills - Create or replace a skill
			posts.PUT("/:post_id/skills", skillHandler.SaveSkill)

			// DELETE /api/v1/posts/:post_id/skills/:skill_id - Delete a skill
			posts.DELETE("/:post_id/skills/:skill_id", skillHandler.DeleteSkill)
		}
	}

	return r
}
