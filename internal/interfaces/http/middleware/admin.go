package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired rejects requests whose JWT claims do not carry the admin
// role. It must run after JWTAuthMiddleware on the same route group.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			return
		}

		c.Next()
	}
}
