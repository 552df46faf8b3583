package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/officeeats/cafeteria-app/utils"
)

// RequireRole guards a route group behind one of the allowed roles.
// Must run after AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("role not found in context"))
			c.Abort()
			return
		}

		role, _ := roleInterface.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, errors.New("you do not have permission"))
		c.Abort()
	}
}
