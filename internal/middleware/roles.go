package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sahayak/sahayak-backend/internal/common"
	"github.com/sahayak/sahayak-backend/internal/domain"
)

// RequireAdmin checks that the authenticated user has the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != domain.RoleAdmin {
			common.ErrorResponse(c, http.StatusForbidden, "Admin access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireContributor checks that the authenticated user may submit subjects
// (contributors and admins; readers are browse-only)
func RequireContributor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role != domain.RoleContributor && role != domain.RoleAdmin {
			common.ErrorResponse(c, http.StatusForbidden, "Contributor access required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
