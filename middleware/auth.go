package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelcms/response"
	"travelcms/services"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

// AuthMiddleware requires a valid bearer token and, when roles are given,
// one of those roles.
func AuthMiddleware(tokens *services.TokenService, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			response.Unauthorized(c)
			return
		}

		info, err := tokens.ParseToken(strings.TrimSpace(authHeader[len("Bearer "):]))
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		if len(roles) > 0 && !hasRole(info.Role, roles) {
			response.Forbidden(c)
			return
		}

		c.Set(ctxUserID, info.UserId)
		c.Set(ctxUserRole, info.Role)
		c.Next()
	}
}

// RoleMiddleware narrows an authenticated route to the given roles.
func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxUserRole)
		if !exists {
			response.Unauthorized(c)
			return
		}
		if !hasRole(role.(string), roles) {
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// CurrentUserID returns the id set by AuthMiddleware.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ctxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
