package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/cache"
)

const (
	failedLoginKeyPrefix = "login_failed:"
	revokedKeyPrefix     = "revoked:"
)

// TokenIssuer ký access token cho một identity
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email, role string) (string, time.Time, error)
}

// Service định nghĩa business logic cho auth
type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	// Logout revokes the token identified by tokenID until it expires
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	Me(ctx context.Context, userID int64) (*model.User, error)
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Config điều khiển throttling và bcrypt cost
type Config struct {
	MaxFailedLogins int
	LockoutWindow   time.Duration
	BcryptCost      int
}

type userService struct {
	repo   repository.Repository
	tokens TokenIssuer
	store  cache.Cache
	cfg    Config
	now    func() time.Time

	// dummyHash được so sánh khi email không tồn tại để hai nhánh tốn thời gian như nhau
	dummyHash []byte
}

var _ middleware.RevocationChecker = (*userService)(nil)

func NewService(repo repository.Repository, tokens TokenIssuer, store cache.Cache, cfg Config) (Service, error) {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("library-dummy-password"), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init dummy hash: %w", err)
	}

	return &userService{
		repo:      repo,
		tokens:    tokens,
		store:     store,
		cfg:       cfg,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

// ========================================
// REGISTER
// ========================================

func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	email := model.NormalizeEmail(req.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, model.ErrEmailAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Storage vẫn có thể trả Conflict nếu hai request đăng ký cùng lúc
	created, err := s.repo.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

// ========================================
// LOGIN
// ========================================

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation(err)
	}

	email := model.NormalizeEmail(req.Email)
	ip := middleware.GetClientIPFromContext(ctx)

	if err := s.checkLockout(ctx, email); err != nil {
		log.Warn().Str("ip", ip).Msg("login blocked: too many failed attempts")
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash := s.dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil || u == nil {
		s.recordFailure(ctx, email)
		log.Info().Str("ip", ip).Msg("login failed")
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(u.ID, u.Email, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.clearFailures(ctx, email)
	log.Info().Int64("user_id", u.ID).Str("ip", ip).Msg("login succeeded")

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        u,
	}, nil
}

// checkLockout: Redis lỗi thì cho qua (degrade open), chỉ log warning
func (s *userService) checkLockout(ctx context.Context, email string) error {
	key := failedLoginKeyPrefix + email

	var attempts int64
	found, err := s.store.Get(ctx, key, &attempts)
	if err != nil {
		log.Warn().Err(err).Msg("login throttle unavailable")
		return nil
	}
	if !found || attempts < int64(s.cfg.MaxFailedLogins) {
		return nil
	}

	ttl, err := s.store.TTL(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("login throttle unavailable")
		return nil
	}
	if ttl <= 0 {
		// Counter mất expiry (Expire trước đó lỗi): gắn lại window và cho qua
		s.ensureExpiry(ctx, key)
		return nil
	}
	minutes := int(math.Ceil(ttl.Minutes()))
	return model.ErrTooManyAttempts.WithMessage("Too many login attempts, please try again in %d minute(s)", minutes)
}

func (s *userService) recordFailure(ctx context.Context, email string) {
	key := failedLoginKeyPrefix + email

	attempts, err := s.store.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("record failed login")
		return
	}
	if attempts == 1 {
		if err := s.store.Expire(ctx, key, s.cfg.LockoutWindow); err != nil {
			log.Warn().Err(err).Msg("set failed login expiry")
		}
		return
	}
	// Attempt đầu có thể đã không set được expiry
	if ttl, err := s.store.TTL(ctx, key); err == nil && ttl < 0 {
		s.ensureExpiry(ctx, key)
	}
}

func (s *userService) ensureExpiry(ctx context.Context, key string) {
	if err := s.store.Expire(ctx, key, s.cfg.LockoutWindow); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("set failed login expiry")
	}
}

func (s *userService) clearFailures(ctx context.Context, email string) {
	if err := s.store.Delete(ctx, failedLoginKeyPrefix+email); err != nil {
		log.Warn().Err(err).Msg("clear failed logins")
	}
}

// ========================================
// SESSION
// ========================================

func (s *userService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.store.Set(ctx, revokedKeyPrefix+tokenID, true, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *userService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.store.Exists(ctx, revokedKeyPrefix+tokenID)
}

func (s *userService) Me(ctx context.Context, userID int64) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}
