package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
)

const skillColumns = "id, job_post_id, name, category, importance, created_at"

// GetSkillByID loads a skill without an ownership filter. Callers must have
// already verified the parent post against the caller identity; the handler
// additionally rejects a job_post_id mismatch before any write.
func (s *Storage) GetSkillByID(ctx context.Context, id string) (*model.JobSkill, error) {
	var skill model.JobSkill
	query := `
		SELECT ` + skillColumns + `
		FROM job_skills
		WHERE id = $1
	`

	err := s.db.GetContext(ctx, &skill, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to get job skill: %w", err)
	}

	return &skill, nil
}

func (s *Storage) InsertSkill(ctx context.Context, skill *model.JobSkill) error {
	query := `
		INSERT INTO job_skills (
			id, job_post_id, name, category, importance, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		skill.ID,
		skill.JobPostID,
		skill.Name,
		skill.Category,
		skill.Importance,
		skill.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert job skill: %w", err)
	}

	return nil
}

// ReplaceSkill overwrites every mutable field of an existing skill, including
// created_at. Unlike post updates this is a full replace, not a patch.
func (s *Storage) ReplaceSkill(ctx context.Context, skill *model.JobSkill) (*model.JobSkill, error) {
	query := `
		UPDATE job_skills
		SET name = $1, category = $2, importance = $3, created_at = $4
		WHERE id = $5 AND job_post_id = $6
		RETURNING ` + skillColumns

	var updated model.JobSkill
	err := s.db.GetContext(
		ctx,
		&updated,
		query,
		skill.Name,
		skill.Category,
		skill.Importance,
		skill.CreatedAt,
		skill.ID,
		skill.JobPostID,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to replace job skill: %w", err)
	}

	return &updated, nil
}

// DeleteSkill removes a skill scoped to its parent post and returns the
// deleted row.
func (s *Storage) DeleteSkill(ctx context.Context, id, jobPostID string) (*model.JobSkill, error) {
	query := `
		DELETE FROM job_skills
		WHERE id = $1 AND job_post_id = $2
		RETURNING ` + skillColumns

	var skill model.JobSkill
	err := s.db.GetContext(ctx, &skill, query, id, jobPostID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSkillNotFound
		}
		return nil, fmt.Errorf("failed to delete job skill: %w", err)
	}

	return &skill, nil
}
