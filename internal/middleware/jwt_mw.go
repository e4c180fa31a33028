package middleware

import (
	"errors"
	"net/http"
	"strings"

	"manager_system/internal/model"
	"manager_system/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthIdentityKey = "authIdentity"
	AuthUserKey     = "authUser"
	AuthRoleKey     = "authRole"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// JWTAuthMiddleware verifies the access token and attaches the caller's
// Identity to the request.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		claims, err := jwtUtil.VerifyAccess(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, utils.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if !claims.Role.Valid() || claims.CompanyID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		identity := claims.Identity()
		c.Set(AuthIdentityKey, identity)
		c.Set(AuthUserKey, identity.UserID)
		c.Set(AuthRoleKey, identity.Role)

		c.Next()
	}
}

// IdentityFrom returns the Identity set by JWTAuthMiddleware.
func IdentityFrom(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(AuthIdentityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}
