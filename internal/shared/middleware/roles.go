package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
)

var ErrForbidden = apperror.Forbidden("AUTH_FORBIDDEN", "Access denied: insufficient role")

// RequireRoles cho phép request đi tiếp chỉ khi role nằm trong allowed.
// Phải đặt sau AuthMiddleware.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" || !slices.Contains(allowed, role) {
			response.AbortWithError(c, ErrForbidden)
			return
		}
		c.Next()
	}
}
