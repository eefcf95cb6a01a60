package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller identity, supplied by the upstream gateway.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "userID"

// Identity extracts the caller's user id from the request header and stores
// it on the context. Requests without the header pass through; handlers that
// require an identity reject them via GetUserID.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(userIDKey, id)
			}
		}
		c.Next()
	}
}

// GetUserID returns the caller's user id set by Identity.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
