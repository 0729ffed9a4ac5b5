package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
	"github.com/jobtrack/jobtrack-be/internal/api/model"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
)

const postColumns = "id, user_id, title, company_name, location, source_type, source_url, raw_text, created_at"

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

// PostPatch describes a partial update of a job post. A nil field is left
// untouched; a non-nil field overwrites, even with an empty string.
type PostPatch struct {
	Title       *string
	CompanyName *string
	Location    *string
	SourceType  *string
	SourceURL   *string
	RawText     *string
}

// IsEmpty reports whether the patch would change nothing. Callers must not
// pass an empty patch to UpdatePost.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.CompanyName == nil &&
		p.Location == nil &&
		p.SourceType == nil &&
		p.SourceURL == nil &&
		p.RawText == nil
}

func (s *Storage) CreatePost(ctx context.Context, post *model.JobPost) error {
	query := `
		INSERT INTO job_posts (
			id, user_id, title, company_name,
			location, source_type, source_url, raw_text, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.UserID,
		post.Title,
		post.CompanyName,
		post.Location,
		post.SourceType,
		post.SourceURL,
		post.RawText,
		post.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job post: %w", err)
	}

	return nil
}

// GetPostByID loads a post filtered by both id and owner. A post that exists
// under another owner comes back as ErrPostNotFound, same as a missing one.
func (s *Storage) GetPostByID(ctx context.Context, id, userID string) (*model.JobPost, error) {
	var post model.JobPost
	query := `
		SELECT ` + postColumns + `
		FROM job_posts
		WHERE id = $1 AND user_id = $2
	`

	err := s.db.GetContext(ctx, &post, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get job post: %w", err)
	}

	return &post, nil
}

func (s *Storage) ListPosts(ctx context.Context, userID string) ([]model.JobPost, error) {
	query := `
		SELECT ` + postColumns + `
		FROM job_posts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var posts []model.JobPost
	err := s.db.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job posts: %w", err)
	}

	return posts, nil
}

// buildUpdatePostQuery assembles the SET clause from the non-nil patch
// fields, with id and owner as the trailing arguments.
func buildUpdatePostQuery(id, userID string, patch PostPatch) (string, []interface{}) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.CompanyName != nil {
		set("company_name", *patch.CompanyName)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.SourceType != nil {
		set("source_type", *patch.SourceType)
	}
	if patch.SourceURL != nil {
		set("source_url", *patch.SourceURL)
	}
	if patch.RawText != nil {
		set("raw_text", *patch.RawText)
	}

	query := fmt.Sprintf(`
		UPDATE job_posts
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING `+postColumns,
		strings.Join(sets, ", "), argIdx, argIdx+1,
	)
	args = append(args, id, userID)

	return query, args
}

// UpdatePost applies the non-nil patch fields in a single owner-scoped
// statement and returns the resulting row.
func (s *Storage) UpdatePost(ctx context.Context, id, userID string, patch PostPatch) (*model.JobPost, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("empty patch for job post %s", id)
	}

	query, args := buildUpdatePostQuery(id, userID, patch)

	var post model.JobPost
	err := s.db.GetContext(ctx, &post, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update job post: %w", err)
	}

	return &post, nil
}

// DeletePost removes an owner-scoped post and returns the deleted row.
func (s *Storage) DeletePost(ctx context.Context, id, userID string) (*model.JobPost, error) {
	query := `
		DELETE FROM job_posts
		WHERE id = $1 AND user_id = $2
		RETURNING ` + postColumns

	var post model.JobPost
	err := s.db.GetContext(ctx, &post, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to delete job post: %w", err)
	}

	return &post, nil
}
