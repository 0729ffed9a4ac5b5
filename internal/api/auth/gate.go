package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-be/internal/api/domain"
)

// HeaderUserID carries the opaque user id resolved by the upstream
// authenticating proxy. This service never validates credentials itself.
const HeaderUserID = "X-User-ID"

const identityKey = "auth.user_id"

// Middleware copies the caller identity from the request header into the
// request context. It never rejects: missing identity is surfaced by UserID
// at the point an operation actually requires a caller.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(HeaderUserID); id != "" {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// UserID returns the authenticated caller's identity, or ErrUnauthorized if
// the request carries none. Every handler calls this before touching storage.
func UserID(c *gin.Context) (string, error) {
	id := c.GetString(identityKey)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}
