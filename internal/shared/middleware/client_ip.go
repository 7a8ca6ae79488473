package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/utils"
)

type clientIPKey struct{}

const ContextKeyClientIP = "client_ip"

// ClientIPMiddleware resolves the caller IP once and exposes it on both the
// gin context and the request context, so services can log it.
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := utils.ClientIP(c.Request)

		c.Set(ContextKeyClientIP, ip)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), clientIPKey{}, ip))

		c.Next()
	}
}

// ClientIPFrom prefers the resolved IP and falls back to gin's view
func ClientIPFrom(c *gin.Context) string {
	if ip := c.GetString(ContextKeyClientIP); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// GetClientIPFromContext trả về "" nếu middleware chưa chạy
func GetClientIPFromContext(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
