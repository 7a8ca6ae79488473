package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/response"
	"library-backend/pkg/jwt"
)

// Context keys set by AuthMiddleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
	ContextKeyClaims = "claims"
)

var (
	ErrMissingToken = apperror.Unauthorized("AUTH_MISSING_TOKEN", "Missing authorization header")
	ErrBadHeader    = apperror.Unauthorized("AUTH_BAD_HEADER", "Invalid authorization header format")
	ErrInvalidToken = apperror.Unauthorized("AUTH_INVALID_TOKEN", "Invalid or expired token")
	ErrTokenRevoked = apperror.Unauthorized("AUTH_TOKEN_REVOKED", "Token has been revoked")
)

// TokenValidator parses and verifies an access token
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// RevocationChecker reports whether a token id was revoked by logout
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware xác thực Bearer JWT và set identity vào context.
// revocations có thể nil; lỗi khi kiểm tra revocation được log và bỏ qua.
func AuthMiddleware(tokens TokenValidator, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, ErrMissingToken)
			return
		}

		// 2. Extract token từ "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.AbortWithError(c, ErrBadHeader)
			return
		}

		// 3. Verify và parse JWT
		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("token rejected")
			response.AbortWithError(c, ErrInvalidToken)
			return
		}

		// 4. Token đã logout?
		if revocations != nil && claims.ID != "" {
			revoked, err := revocations.IsTokenRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				log.Warn().Err(err).Msg("revocation check failed, allowing token")
			} else if revoked {
				response.AbortWithError(c, ErrTokenRevoked)
				return
			}
		}

		// 5. Set identity vào context
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)
		c.Set(ContextKeyClaims, claims)

		c.Next()
	}
}

// GetUserID trả về user id đã xác thực
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// GetRole trả về role của user đã xác thực, "" nếu chưa auth
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

// GetClaims trả về claims của token hiện tại
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}
