package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"minsu-content-backend/internal/auth"
)

// SessionKey is the gin context key the validated session is stored under.
const SessionKey = "admin_session"

// Auth validates the Bearer token on every privileged request. Signature and
// expiry are checked each time; a token is never trusted for merely existing.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		sess, err := auth.ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// Session returns the validated session set by Auth, or nil.
func Session(c *gin.Context) *auth.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*auth.Session)
	return sess
}
