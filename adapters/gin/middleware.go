// Package todogin adapts the todo service and the bearer-token verifier to
// gin handlers and middleware.
package todogin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alfredasare/cloud-dev-final-project/auth"
)

const userIDKey = "auth.user_id"

// RateLimiter gates requests per named bucket and caller key.
type RateLimiter interface {
	AllowNamed(bucket, key string) (bool, error)
}

// AuthRequired verifies the Authorization header and stores the token's
// subject in the gin context. Any verification failure yields 401; the
// specific error is only logged.
func AuthRequired(verifier *auth.Verifier, log *logrus.Logger) gin.HandlerFunc {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		claims, err := verifier.VerifyToken(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			log.WithError(err).Warn("request not authorized")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userIDKey, auth.Subject(claims))
		c.Next()
	}
}

// UserID returns the authenticated caller's id set by AuthRequired.
func UserID(c *gin.Context) string {
	v, _ := c.Get(userIDKey)
	s, _ := v.(string)
	return s
}

// RateLimit gates the request through the named bucket, keyed by the
// authenticated user. A nil limiter allows everything.
func RateLimit(rl RateLimiter, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil {
			c.Next()
			return
		}
		ok, err := rl.AllowNamed(bucket, UserID(c))
		if err != nil || !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too_many_requests"})
			return
		}
		c.Next()
	}
}

// CORS mirrors the gateway's permissive cross-origin policy.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
