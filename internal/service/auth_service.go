package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"reviewboard/internal/auth"
	"reviewboard/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	// ErrTokenInvalid is returned when a token is malformed, expired or of the wrong type.
	ErrTokenInvalid = errors.New("token is invalid or expired")
)

// AuthService issues and checks tokens.
type AuthService interface {
	Obtain(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	Verify(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Obtain authenticates a user and returns an access/refresh token pair.
func (s *authService) Obtain(ctx context.Context, username, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

// Refresh validates a refresh token and returns a new access token.
// The signed claims are authoritative; the Redis binding, when present,
// must match them. A missing binding is tolerated so a Redis flush does
// not invalidate otherwise valid tokens.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateTokenOfType(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return "", ErrTokenInvalid
	}

	if claims.ID != "" {
		storedUserID, storedUsername, storeErr := s.tokenStore.GetRefreshToken(ctx, claims.ID)
		if storeErr == nil && (storedUserID != claims.UserID || storedUsername != claims.Username) {
			return "", ErrTokenInvalid
		}
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Verify checks that a token is well formed and unexpired. Both access and
// refresh tokens verify successfully.
func (s *authService) Verify(ctx context.Context, token string) error {
	if _, err := s.jwtService.ValidateToken(token); err != nil {
		return ErrTokenInvalid
	}
	return nil
}
