package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

// Identity captures the caller-supplied user identity from the X-User-Id
// header. There is no authentication behind this yet; handlers treat it as
// a claimed identity and still require one to be present in the request.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader("X-User-Id")); id != "" {
			c.Set(userIDKey, id)
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Identity.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
