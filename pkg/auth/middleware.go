package auth

import (
	"net/http"
	"strings"

	"carrental/pkg/models"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved Principal on the gin context for downstream handlers.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		principal, err := ParseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole guards admin-only routes. Runs after RequireAuth.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok || principal.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the Principal set by RequireAuth.
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*Principal)
	return principal, ok
}

// SetPrincipal injects a Principal directly, used by tests that call
// handlers without the middleware chain.
func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(principalKey, p)
}
