package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asset-verification-portal/pkg/utils"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RoleMiddleware("admin")
}

// AssetManagersOnly guards registry and campaign mutations.
func AssetManagersOnly() gin.HandlerFunc {
	return RoleMiddleware("admin", "admin_manager", "it_manager", "assetManager")
}

// ManagersOnly guards reporting and review surfaces.
func ManagersOnly() gin.HandlerFunc {
	return RoleMiddleware("admin", "admin_manager", "it_manager", "assetManager", "hr_manager", "finance")
}
