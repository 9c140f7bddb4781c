package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"restaurant-catalog/internal/shared/response"
)

// RequireRoles lets the request through when the token carries any of roles.
// Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	denied := "Access denied: requires one of " + strings.Join(roles, ", ")

	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			response.Unauthorized(c, "Authentication required: no credentials")
			return
		}

		if !claims.HasAnyRole(roles...) {
			response.Forbidden(c, denied)
			return
		}

		c.Next()
	}
}
