package model

import (
	"database/sql"
	"time"
)

type JobPost struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	CompanyName sql.NullString `db:"company_name"`
	Location    sql.NullString `db:"location"`
	SourceType  sql.NullString `db:"source_type"`
	SourceURL   sql.NullString `db:"source_url"`
	RawText     string         `db:"raw_text"`
	CreatedAt   time.Time      `db:"created_at"`
}

type JobSkill struct {
	ID         string         `db:"id"`
	JobPostID  string         `db:"job_post_id"`
	Name       string         `db:"name"`
	Category   sql.NullString `db:"category"`
	Importance sql.NullInt64  `db:"importance"`
	CreatedAt  time.Time      `db:"created_at"`
}
