package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/service"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

// AuthHandler xử lý /v1/auth/*
type AuthHandler struct {
	service service.Service
}

func NewAuthHandler(svc service.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Register xử lý POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	u, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// Login xử lý POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err))
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Logout xử lý POST /auth/logout, token hiện tại bị revoke
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Error(c, middleware.ErrMissingToken)
		return
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	if err := h.service.Logout(c.Request.Context(), claims.ID, expiresAt); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me xử lý GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, middleware.ErrMissingToken)
		return
	}

	u, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}
