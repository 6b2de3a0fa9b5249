package middleware

import (
	"net/http"
	"strings"

	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireRole for downstream handlers.
const (
	CtxUserID = "authUserId"
	CtxRole   = "authRole"
	CtxName   = "authName"
)

// RequireRole guards a route group behind a Bearer token carrying the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.unauthorized", "message": "missing bearer token"},
			})
			return
		}

		claims, err := utils.ParseAuthToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "error.invalidToken", "message": "invalid or expired token"},
			})
			return
		}

		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"code": "error.forbidden", "message": "insufficient role"},
			})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxName, claims.Name)
		c.Next()
	}
}

// AuthUserID returns the authenticated user's id set by RequireRole.
func AuthUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
