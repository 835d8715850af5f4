package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devfolio/devfolio-backend/internal/logger"
)

type AdminMiddleware struct {
	log   *logger.Logger
	token string
}

func NewAdminMiddleware(log *logger.Logger, token string) *AdminMiddleware {
	middlewareLogger := log.With("Middleware", "AdminMiddleware")
	return &AdminMiddleware{log: middlewareLogger, token: token}
}

// RequireAdmin gates admin routes behind a static bearer token. When no
// token is configured the routes stay closed rather than open.
func (am *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if am.token == "" {
			am.log.Warn("Admin endpoint hit with no ADMIN_API_TOKEN configured")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin endpoints are not configured"})
			return
		}
		presented := extractBearerToken(c)
		if presented == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(presented), []byte(am.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
