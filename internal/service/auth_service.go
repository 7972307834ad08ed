package service

import (
	"context"
	"time"

	"github.com/smart-entry/visitor-service/internal/auth"
	"github.com/smart-entry/visitor-service/internal/config"
	"github.com/smart-entry/visitor-service/internal/domain"
	"github.com/smart-entry/visitor-service/internal/repository"
	apperrors "github.com/smart-entry/visitor-service/pkg/util"
)

// AuthService authenticates kiosk and admin console operators.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// Login verifies employee credentials and issues a role-bearing token.
func (s *AuthService) Login(ctx context.Context, employeeID, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
