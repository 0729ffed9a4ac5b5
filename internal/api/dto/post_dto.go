package dto

import (
	"time"

	"github.com/jobtrack/jobtrack-be/internal/api/model"
)

type CreatePostRequest struct {
	ID          *string `json:"id" binding:"omitnil,min=1"`
	Title       string  `json:"title" binding:"required"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	SourceType  *string `json:"source_type"`
	SourceURL   *string `json:"source_url"`
	RawText     string  `json:"raw_text" binding:"required"`
}

// UpdatePostRequest is a partial patch: nil means "leave the stored value
// alone", a non-nil pointer (including one to an empty string) overwrites.
type UpdatePostRequest struct {
	Title       *string `json:"title" binding:"omitnil,min=1"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	SourceType  *string `json:"source_type"`
	SourceURL   *string `json:"source_url"`
	RawText     *string `json:"raw_text"`
}

type PostDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Title       string  `json:"title"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	SourceType  *string `json:"source_type"`
	SourceURL   *string `json:"source_url"`
	RawText     string  `json:"raw_text"`
	CreatedAt   string  `json:"created_at"`
}

type ListPostsResponse struct {
	Posts []PostDTO `json:"posts"`
}

func FromPost(post *model.JobPost) PostDTO {
	return PostDTO{
		ID:          post.ID,
		UserID:      post.UserID,
		Title:       post.Title,
		CompanyName: nullableString(post.CompanyName.Valid, post.CompanyName.String),
		Location:    nullableString(post.Location.Valid, post.Location.String),
		SourceType:  nullableString(post.SourceType.Valid, post.SourceType.String),
		SourceURL:   nullableString(post.SourceURL.Valid, post.SourceURL.String),
		RawText:     post.RawText,
		CreatedAt:   post.CreatedAt.Format(time.RFC3339),
	}
}

func nullableString(valid bool, value string) *string {
	if !valid {
		return nil
	}
	return &value
}
