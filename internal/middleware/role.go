package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ManagerMiddleware admits managers and administrators. It must run after AuthMiddleware.
func ManagerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found in context (AuthMiddleware must run first)"})
			return
		}
		if !identity.IsManager() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: Manager or Admin role required"})
			return
		}
		c.Set("userRole", identity.Role)
		c.Next()
	}
}
