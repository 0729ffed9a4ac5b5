package dto

import (
	"time"

	"github.com/jobtrack/jobtrack-be/internal/api/model"
)

// SaveSkillRequest creates a skill when ID is absent and fully replaces the
// mutable fields of an existing skill when ID is present.
type SaveSkillRequest struct {
	ID         *string `json:"id" binding:"omitnil,min=1"`
	Name       string  `json:"name" binding:"required"`
	Category   *string `json:"category"`
	Importance *int    `json:"importance"`
}

type SkillDTO struct {
	ID         string  `json:"id"`
	JobPostID  string  `json:"job_post_id"`
	Name       string  `json:"name"`
	Category   *string `json:"category"`
	Importance *int    `json:"importance"`
	CreatedAt  string  `json:"created_at"`
}

func FromSkill(skill *model.JobSkill) SkillDTO {
	var importance *int
	if skill.Importance.Valid {
		v := int(skill.Importance.Int64)
		importance = &v
	}

	return SkillDTO{
		ID:         skill.ID,
		JobPostID:  skill.JobPostID,
		Name:       skill.Name,
		Category:   nullableString(skill.Category.Valid, skill.Category.String),
		Importance: importance,
		CreatedAt:  skill.CreatedAt.Format(time.RFC3339),
	}
}
