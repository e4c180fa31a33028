package middleware

import (
	"net/http"

	"manager_system/internal/model"
	"manager_system/internal/policy"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles
func RoleMiddleware(allowedRoles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found in token, ensure JWT middleware runs first"})
			return
		}

		userRole, ok := roleVal.(model.Role)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid role type in token"})
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			return
		}

		c.Next()
	}
}

// MinRoleMiddleware admits the given role and everything above it.
func MinRoleMiddleware(minRole model.Role) gin.HandlerFunc {
	var allowed []model.Role
	for _, r := range model.Roles {
		if r.AtLeast(minRole) {
			allowed = append(allowed, r)
		}
	}
	return RoleMiddleware(allowed...)
}

// RequireOperation admits callers whose role the policy table allows op.
func RequireOperation(op policy.Operation) gin.HandlerFunc {
	minRole, ok := policy.MinimumRole(op)
	if !ok {
		return RoleMiddleware()
	}
	return MinRoleMiddleware(minRole)
}

// AdminMiddleware admits ADMIN and SUPER_ADMIN.
func AdminMiddleware() gin.HandlerFunc {
	return MinRoleMiddleware(model.RoleAdmin)
}

// SuperAdminMiddleware admits SUPER_ADMIN only.
func SuperAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleSuperAdmin)
}
