package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/utils"
)

// RequireRoles aborts unless the authenticated user has one of the given
// roles. Admins pass every staff-level gate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		role, _ := userRole.(string)
		if role == models.RoleAdmin || role == models.RoleSuperAdmin {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, fmt.Sprintf("%s access required", roles[0]))
		c.Abort()
	}
}
