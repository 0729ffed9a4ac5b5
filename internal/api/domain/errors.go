package domain

import (
	"errors"
)

var (
	ErrUnauthorized = errors.New("no authenticated user")

	// Deliberately returned both when a row is missing and when it exists
	// under another owner, so callers cannot probe for other users' data.
	ErrPostNotFound  = errors.New("job post not found")
	ErrSkillNotFound = errors.New("job skill not found")
)
