package auth

import (
	"context"
	"time"

	"rentora/internal/core/apperror"
	appctx "rentora/internal/core/context"
	"rentora/pkg/logger"
)

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ServiceConfig configures the single operator account.
type ServiceConfig struct {
	AdminUsername     string
	AdminPasswordHash string
}

// Service authenticates the operator account and issues tokens.
type Service struct {
	config ServiceConfig
	hasher PasswordHasher
	jwt    *JWTService
}

// NewService creates a new auth service.
func NewService(config ServiceConfig, hasher PasswordHasher, jwt *JWTService) *Service {
	return &Service{config: config, hasher: hasher, jwt: jwt}
}

// Login checks creds and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, error) {
	if s.config.AdminPasswordHash == "" {
		return nil, apperror.NewUnauthorized("login is disabled")
	}
	if creds.Username != s.config.AdminUsername {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	ok, err := s.hasher.Verify(s.config.AdminPasswordHash, creds.Password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !ok {
		logger.Info(ctx, "login rejected", "username", creds.Username)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	user := &appctx.UserContext{
		UserID:  creds.Username,
		Roles:   []string{"admin"},
		IsAdmin: true,
	}
	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "token issued", "username", creds.Username, "expires_at", expiresAt)
	return &Token{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
